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


// Package extract converts raw document bytes (HTML, PDF, plain text) into
// a title and a plain-text body ready for chunking.
//
// The extraction policy favors partial results over total failure: a failed
// network fetch yields a synthetic error body, a broken PDF page yields a
// placeholder marker, and only a document with no usable text at all is
// reported as an extraction failure.
package extract
