// Copyright 2025 Vitalpoint Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rag

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/vitalpoint/docbase/ai"
	"github.com/vitalpoint/docbase/core"
	"github.com/vitalpoint/docbase/store"
)

// DefaultTopK is how many chunks a retrieval returns when the caller does
// not say otherwise.
const DefaultTopK = 5

// contextPreamble introduces the retrieved material to the language model.
const contextPreamble = "Here is some relevant information that might help answer the query:\n\n"

// runTogetherRE matches a lowercase letter glued to an uppercase one, a
// common artifact of PDF text extraction.
var runTogetherRE = regexp.MustCompile(`([a-z])([A-Z])`)

// Retriever answers queries with a formatted context string built from the
// most similar stored chunks.
type Retriever struct {
	embedder ai.Embedder
	store    *store.VectorStore
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRetriever creates a Retriever over the given embedder and store.
func NewRetriever(embedder ai.Embedder, vectorStore *store.VectorStore, opts ...Option) *Retriever {
	r := &Retriever{
		embedder: embedder,
		store:    vectorStore,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve embeds the query, searches the store and formats the results as
// a context string. found reports whether anything relevant came back.
// Retrieval failures degrade to an empty context rather than failing the
// chat turn that triggered them.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) (contextText string, found bool, chunks []core.DocumentChunk) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryEmbedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Warn("query embedding failed", "error", err)
		return "", false, nil
	}

	results, err := r.store.Search(queryEmbedding, topK)
	if err != nil {
		r.logger.Warn("search failed", "error", err)
		return "", false, nil
	}
	if len(results) == 0 {
		return "", false, nil
	}

	chunks = make([]core.DocumentChunk, len(results))
	for i, result := range results {
		chunks[i] = result.Chunk
		chunks[i].Content = cleanExtractedText(result.Chunk.Content)
	}
	chunks = reorderForReading(chunks, topK)

	var b strings.Builder
	b.WriteString(contextPreamble)
	for i, chunk := range chunks {
		fmt.Fprintf(&b, "--- Document %d: %s ---\n%s\n\n", i+1, chunk.Title, chunk.Content)
	}
	return b.String(), true, chunks
}

// reorderForReading arranges a large result set so chunks from the same
// document sit together in their original order. Small result sets keep
// their similarity order. The returned slice is truncated to topK.
func reorderForReading(chunks []core.DocumentChunk, topK int) []core.DocumentChunk {
	if topK <= DefaultTopK || len(chunks) == 0 {
		if len(chunks) > topK {
			return chunks[:topK]
		}
		return chunks
	}

	groups := make(map[string][]core.DocumentChunk)
	var order []string
	for _, chunk := range chunks {
		if _, seen := groups[chunk.Title]; !seen {
			order = append(order, chunk.Title)
		}
		groups[chunk.Title] = append(groups[chunk.Title], chunk)
	}

	for _, title := range order {
		group := groups[title]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ChunkIndex < group[j].ChunkIndex
		})
	}

	if len(order) > 1 {
		sort.SliceStable(order, func(i, j int) bool {
			return len(groups[order[i]]) > len(groups[order[j]])
		})
	}

	reordered := make([]core.DocumentChunk, 0, len(chunks))
	for _, title := range order {
		reordered = append(reordered, groups[title]...)
	}
	if len(reordered) > topK {
		reordered = reordered[:topK]
	}
	return reordered
}

// cleanExtractedText inserts spaces into words run together by PDF or OCR
// extraction, such as "sleepQuality".
func cleanExtractedText(s string) string {
	return runTogetherRE.ReplaceAllString(s, "$1 $2")
}
