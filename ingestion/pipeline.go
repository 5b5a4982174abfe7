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

package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vitalpoint/docbase/ai"
	"github.com/vitalpoint/docbase/core"
	"github.com/vitalpoint/docbase/extract"
	"github.com/vitalpoint/docbase/store"
)

// defaultBatchSize is how many chunks are embedded and persisted per round,
// so metadata on disk tracks progress through large documents.
const defaultBatchSize = 5

// Pipeline runs the full ingestion flow for one document at a time:
// extract, chunk, embed in batches, index in memory, persist to disk.
type Pipeline struct {
	extractor *extract.Extractor
	embedder  ai.Embedder
	store     *store.VectorStore
	disk      *store.DiskStore
	chunker   *Chunker
	log       *ProcessingLog
	batchSize int
	logger    *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline) error

// WithChunker replaces the default chunker.
func WithChunker(chunker *Chunker) PipelineOption {
	return func(p *Pipeline) error {
		if chunker != nil {
			p.chunker = chunker
		}
		return nil
	}
}

// WithBatchSize sets how many chunks are embedded per batch.
// Default is 5.
func WithBatchSize(size int) PipelineOption {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		p.batchSize = size
		return nil
	}
}

// WithProcessingLog shares an externally owned processing log.
func WithProcessingLog(log *ProcessingLog) PipelineOption {
	return func(p *Pipeline) error {
		if log != nil {
			p.log = log
		}
		return nil
	}
}

// WithPipelineLogger sets a custom logger.
// Default is slog.Default().
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) error {
		if logger != nil {
			p.logger = logger
		}
		return nil
	}
}

// NewPipeline creates a Pipeline over the given extractor, embedder and
// stores.
func NewPipeline(
	extractor *extract.Extractor,
	embedder ai.Embedder,
	vectorStore *store.VectorStore,
	diskStore *store.DiskStore,
	opts ...PipelineOption,
) (*Pipeline, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if vectorStore == nil {
		return nil, ErrStoreRequired
	}
	if diskStore == nil {
		return nil, ErrDiskStoreRequired
	}

	p := &Pipeline{
		extractor: extractor,
		embedder:  embedder,
		store:     vectorStore,
		disk:      diskStore,
		chunker:   NewChunker(),
		log:       NewProcessingLog(),
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Log returns the pipeline's processing log.
func (p *Pipeline) Log() *ProcessingLog {
	return p.log
}

// IngestFromURL fetches a page and ingests its extracted text. The document
// ID is derived from the URL so re-adding the same address overwrites the
// previous copy on disk rather than duplicating it.
func (p *Pipeline) IngestFromURL(ctx context.Context, url string) ([]core.DocumentChunk, error) {
	opID := uuid.NewString()
	p.log.Append("[%s] fetching %s", opID, url)

	title, body := p.extractor.FetchURL(ctx, url)
	docID := core.DocumentIDFromContent(url)
	return p.ingest(ctx, opID, docID, title, body, url)
}

// IngestFromFile ingests an uploaded file. The extension selects the
// extractor; when it is empty the filename suffix is used instead.
// Unsupported extensions fail before any work begins. The document ID is
// derived from the filename plus content.
func (p *Pipeline) IngestFromFile(ctx context.Context, filename string, data []byte, extension string) ([]core.DocumentChunk, error) {
	opID := uuid.NewString()

	if extension == "" {
		extension = filename
		if i := strings.LastIndex(filename, "."); i >= 0 {
			extension = filename[i+1:]
		}
	}
	kind, err := extract.KindForExtension(extension)
	if err != nil {
		p.log.Append("[%s] rejected %s: %v", opID, filename, err)
		return nil, err
	}

	p.log.Append("[%s] extracting %s", opID, filename)
	title, body, err := p.extractor.Extract(ctx, data, filename, kind)
	if err != nil {
		p.log.Append("[%s] extraction failed for %s: %v", opID, filename, err)
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}

	docID := core.DocumentIDFromContent(filename + string(data))
	source := "uploaded file: " + filename
	return p.ingest(ctx, opID, docID, title, body, source)
}

// ingest chunks the content and processes it in batches, keeping the
// on-disk metadata a step ahead of the chunk work so an interrupted run is
// visible as in_progress rather than silently half-indexed.
func (p *Pipeline) ingest(ctx context.Context, opID, docID, title, content, source string) ([]core.DocumentChunk, error) {
	if strings.TrimSpace(content) == "" {
		p.log.Append("[%s] no content extracted from %s", opID, source)
		return nil, fmt.Errorf("%w: %s", core.ErrNoContent, source)
	}

	pieces := p.chunker.Chunk(content)
	if len(pieces) == 0 {
		p.log.Append("[%s] no usable chunks in %s", opID, source)
		return nil, fmt.Errorf("%w: %s", core.ErrNoContent, source)
	}

	meta := core.DocumentMetadata{
		ID:          docID,
		Title:       title,
		Source:      source,
		TotalChunks: len(pieces),
		ChunkIDs:    make([]string, 0, len(pieces)),
		Status:      core.StatusInProgress,
		DateAdded:   time.Now().UTC(),
	}
	if err := p.disk.SaveMetadata(meta); err != nil {
		p.log.Append("[%s] failed to start document %s: %v", opID, docID, err)
		return nil, err
	}
	p.log.Append("[%s] processing %q as %d chunks", opID, title, len(pieces))

	chunks := make([]core.DocumentChunk, 0, len(pieces))
	for batchStart := 0; batchStart < len(pieces); batchStart += p.batchSize {
		batchEnd := batchStart + p.batchSize
		if batchEnd > len(pieces) {
			batchEnd = len(pieces)
		}
		batch := pieces[batchStart:batchEnd]

		embeddings, err := p.embedBatch(ctx, title, batch)
		if err != nil {
			p.log.Append("[%s] embedding failed for %q: %v", opID, title, err)
			return nil, err
		}

		for i, piece := range batch {
			index := batchStart + i
			chunk := core.DocumentChunk{
				ID:          core.ChunkID(docID, index),
				DocumentID:  docID,
				Title:       title,
				Content:     piece,
				Source:      source,
				ChunkIndex:  index,
				TotalChunks: len(pieces),
				Embedding:   embeddings[i],
			}

			if err := p.store.Add(chunk, chunk.Embedding); err != nil {
				p.log.Append("[%s] failed to index chunk %d of %q: %v", opID, index, title, err)
				return chunks, fmt.Errorf("index chunk %d of %s: %w", index, docID, err)
			}
			if err := p.disk.SaveChunk(chunk); err != nil {
				p.log.Append("[%s] failed to persist chunk %d of %q: %v", opID, index, title, err)
				return chunks, err
			}

			chunks = append(chunks, chunk)
			meta.ChunkIDs = append(meta.ChunkIDs, chunk.ID)
		}

		if err := p.disk.SaveMetadata(meta); err != nil {
			return chunks, err
		}
		p.logger.Debug("ingested batch",
			"document_id", docID,
			"chunks", len(meta.ChunkIDs),
			"total", len(pieces))
	}

	meta.Status = core.StatusComplete
	if err := p.disk.SaveMetadata(meta); err != nil {
		return chunks, err
	}
	p.log.Append("[%s] completed %q (%d chunks)", opID, title, len(chunks))
	return chunks, nil
}

// embedBatch embeds a batch of chunk contents prefixed with the document
// title. When the embedder fails the batch degrades to zero vectors of the
// store's dimension so the rest of the document still lands; with no
// dimension established yet there is nothing meaningful to store and the
// document fails instead.
func (p *Pipeline) embedBatch(ctx context.Context, title string, batch []string) ([][]float32, error) {
	texts := make([]string, len(batch))
	for i, content := range batch {
		texts[i] = title + " " + content
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err == nil && len(embeddings) == len(texts) {
		return embeddings, nil
	}
	if err == nil {
		err = fmt.Errorf("embedder returned %d vectors for %d texts", len(embeddings), len(texts))
	}

	dimension := p.store.Dimension()
	if dimension == 0 {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	p.logger.Warn("embedding failed, storing zero vectors", "error", err, "chunks", len(batch))
	embeddings = make([][]float32, len(batch))
	for i := range embeddings {
		embeddings[i] = make([]float32, dimension)
	}
	return embeddings, nil
}
