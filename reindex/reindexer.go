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

package reindex

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vitalpoint/docbase/ai"
	"github.com/vitalpoint/docbase/store"
)

// Config holds tunables for a reindexing run.
type Config struct {
	// BatchSize is the number of chunks embedded per call.
	BatchSize int

	// ReportInterval is how often progress is reported, in chunks.
	ReportInterval int

	// MaxRetries is the retry limit for a failed embedding batch.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      10,
		ReportInterval: 10,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reindexer re-embeds every chunk on disk and rebuilds the vector store.
type Reindexer struct {
	disk     *store.DiskStore
	store    *store.VectorStore
	embedder ai.Embedder
	config   *Config
	progress io.Writer
}

// NewReindexer creates a Reindexer. Progress output goes to progress,
// typically os.Stderr.
func NewReindexer(disk *store.DiskStore, vectorStore *store.VectorStore, embedder ai.Embedder, config *Config, progress io.Writer) *Reindexer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Reindexer{
		disk:     disk,
		store:    vectorStore,
		embedder: embedder,
		config:   config,
		progress: progress,
	}
}

// Run re-embeds all persisted chunks document by document. The in-memory
// store is cleared first and rebuilt as chunks are processed, so searches
// issued mid-run see a partial index. Chunk files are rewritten with their
// new embeddings as each batch completes.
func (r *Reindexer) Run(ctx context.Context) error {
	metas, err := r.disk.ListMetadata()
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	totalChunks := 0
	for _, meta := range metas {
		totalChunks += meta.TotalChunks
	}
	if totalChunks == 0 {
		fmt.Fprintf(r.progress, "No documents to reindex (0 chunks)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Reindexing %d chunks across %d documents (batch size: %d)\n",
		totalChunks, len(metas), r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, totalChunks, r.config.ReportInterval)
	tracker.Start()

	r.store.Reset()

	for _, meta := range metas {
		if err := r.reindexDocument(ctx, meta.ID, tracker); err != nil {
			return fmt.Errorf("reindex document %s: %w", meta.ID, err)
		}
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reindexing complete. Processed %d chunks in %v (%.1f chunks/sec)\n",
		totalChunks, elapsed.Round(time.Second), float64(totalChunks)/elapsed.Seconds())
	return nil
}

func (r *Reindexer) reindexDocument(ctx context.Context, documentID string, tracker *ProgressTracker) error {
	chunks, err := r.disk.LoadAllChunks(documentID)
	if err != nil {
		return err
	}

	for start := 0; start < len(chunks); start += r.config.BatchSize {
		end := start + r.config.BatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Title + " " + chunk.Content
		}

		var embeddings [][]float32
		err := RetryWithBackoff(ctx, func() error {
			var embedErr error
			embeddings, embedErr = r.embedder.EmbedTexts(ctx, texts)
			return embedErr
		}, r.config.MaxRetries, r.config.RetryDelay)
		if err != nil {
			return fmt.Errorf("embed batch at chunk %d: %w", start, err)
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("embedder returned %d vectors for %d chunks", len(embeddings), len(batch))
		}

		for i := range batch {
			updated := batch[i]
			updated.Embedding = NormalizeVector(embeddings[i])

			if err := r.disk.SaveChunk(updated); err != nil {
				return err
			}
			if err := r.store.Add(updated, updated.Embedding); err != nil {
				return err
			}
		}
		tracker.Increment(len(batch))
	}
	return nil
}
