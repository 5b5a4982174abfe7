// Copyright 2025 Vitalpoint Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai defines the embedding contract used by the ingestion pipeline
// and the retriever.
//
// The core packages depend only on the Embedder interface, never on a
// concrete provider. Two implementations ship with docbase:
//
//   - ai/openai: hosted embeddings via an OpenAI-compatible API (langchaingo)
//   - ai/local: a fully deterministic hashed bag-of-words embedder that
//     needs no network access
//
// ai/mock provides a test double with injectable behavior.
//
// A knowledge base is bound to exactly one embedder for its lifetime. The
// two implementations produce vectors of different dimensionality, and the
// vector store rejects mixed dimensions rather than silently computing
// meaningless similarity scores.
package ai
