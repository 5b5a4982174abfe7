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

// Package docbase is a document knowledge base for retrieval-augmented
// chat: it ingests documents from files and URLs, chunks and embeds them,
// and serves similarity search and formatted retrieval context over the
// result.
package docbase

import (
	"context"
	"io"
	"log/slog"

	"github.com/vitalpoint/docbase/ai"
	"github.com/vitalpoint/docbase/ai/openai"
	"github.com/vitalpoint/docbase/core"
	"github.com/vitalpoint/docbase/extract"
	"github.com/vitalpoint/docbase/ingestion"
	"github.com/vitalpoint/docbase/rag"
	"github.com/vitalpoint/docbase/reindex"
	"github.com/vitalpoint/docbase/store"
)

// KnowledgeBase ties the extractor, embedder, stores, ingestion pipeline
// and retriever together over a single data directory.
type KnowledgeBase struct {
	disk      *store.DiskStore
	store     *store.VectorStore
	embedder  ai.Embedder
	pipeline  *ingestion.Pipeline
	retriever *rag.Retriever
	log       *ingestion.ProcessingLog
	logger    *slog.Logger
}

// Option configures a KnowledgeBase.
type Option func(*kbOptions)

type kbOptions struct {
	embedder  ai.Embedder
	aiConfig  *ai.Config
	chunker   *ingestion.Chunker
	threshold float32
	logger    *slog.Logger
}

// WithEmbedder supplies an embedder directly, bypassing the hosted client.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(o *kbOptions) {
		o.embedder = embedder
	}
}

// WithAIConfig configures the hosted embedding client. Ignored when an
// embedder is supplied with WithEmbedder.
func WithAIConfig(config *ai.Config) Option {
	return func(o *kbOptions) {
		o.aiConfig = config
	}
}

// WithChunker replaces the default document chunker.
func WithChunker(chunker *ingestion.Chunker) Option {
	return func(o *kbOptions) {
		o.chunker = chunker
	}
}

// WithSimilarityThreshold sets the minimum similarity for search results.
func WithSimilarityThreshold(threshold float32) Option {
	return func(o *kbOptions) {
		o.threshold = threshold
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *kbOptions) {
		o.logger = logger
	}
}

// New opens a knowledge base rooted at dataDir, creating it if needed, and
// loads every document already persisted there into the in-memory index.
func New(dataDir string, opts ...Option) (*KnowledgeBase, error) {
	options := &kbOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	embedder := options.embedder
	if embedder == nil {
		var err error
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	disk, err := store.NewDiskStore(dataDir, store.WithDiskLogger(options.logger))
	if err != nil {
		return nil, err
	}

	storeOpts := []store.Option{
		store.WithDiskFallback(disk),
		store.WithLogger(options.logger),
	}
	if options.threshold > 0 {
		storeOpts = append(storeOpts, store.WithSimilarityThreshold(options.threshold))
	}
	vectorStore := store.New(storeOpts...)

	log := ingestion.NewProcessingLog()
	pipelineOpts := []ingestion.PipelineOption{
		ingestion.WithProcessingLog(log),
		ingestion.WithPipelineLogger(options.logger),
	}
	if options.chunker != nil {
		pipelineOpts = append(pipelineOpts, ingestion.WithChunker(options.chunker))
	}
	pipeline, err := ingestion.NewPipeline(extract.New(extract.WithLogger(options.logger)), embedder, vectorStore, disk, pipelineOpts...)
	if err != nil {
		return nil, err
	}

	kb := &KnowledgeBase{
		disk:      disk,
		store:     vectorStore,
		embedder:  embedder,
		pipeline:  pipeline,
		retriever: rag.NewRetriever(embedder, vectorStore, rag.WithLogger(options.logger)),
		log:       log,
		logger:    options.logger,
	}
	if err := kb.loadPersisted(); err != nil {
		return nil, err
	}
	return kb, nil
}

// loadPersisted rebuilds the in-memory index from the chunk files on disk.
// Chunks that cannot be indexed, such as those with a stale embedding
// dimension, are skipped with a warning so one bad document does not block
// startup.
func (kb *KnowledgeBase) loadPersisted() error {
	metas, err := kb.disk.ListMetadata()
	if err != nil {
		return err
	}

	loaded := 0
	for _, meta := range metas {
		chunks, err := kb.disk.LoadAllChunks(meta.ID)
		if err != nil {
			kb.logger.Warn("skipping unreadable document", "document_id", meta.ID, "error", err)
			continue
		}
		for _, chunk := range chunks {
			if err := kb.store.Add(chunk, chunk.Embedding); err != nil {
				kb.logger.Warn("skipping unindexable chunk",
					"chunk_id", chunk.ID, "error", err)
				continue
			}
			loaded++
		}
	}
	if len(metas) > 0 {
		kb.logger.Info("loaded persisted documents", "documents", len(metas), "chunks", loaded)
	}
	return nil
}

// IngestFromURL fetches and indexes a web page.
func (kb *KnowledgeBase) IngestFromURL(ctx context.Context, url string) ([]core.DocumentChunk, error) {
	return kb.pipeline.IngestFromURL(ctx, url)
}

// IngestFromFile indexes an uploaded file. The extension selects the
// extraction format; pass "" to use the filename suffix.
func (kb *KnowledgeBase) IngestFromFile(ctx context.Context, filename string, data []byte, extension string) ([]core.DocumentChunk, error) {
	return kb.pipeline.IngestFromFile(ctx, filename, data, extension)
}

// Search returns the chunks most similar to the query, highest first.
func (kb *KnowledgeBase) Search(ctx context.Context, query string, topK int) ([]core.SearchResult, error) {
	queryEmbedding, err := kb.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}
	return kb.store.Search(queryEmbedding, topK)
}

// Retrieve builds a formatted retrieval context for the query. See
// rag.Retriever.Retrieve.
func (kb *KnowledgeBase) Retrieve(ctx context.Context, query string, topK int) (contextText string, found bool, chunks []core.DocumentChunk) {
	return kb.retriever.Retrieve(ctx, query, topK)
}

// Delete removes a document from the index and from disk. Returns the
// number of chunks removed from the in-memory index.
func (kb *KnowledgeBase) Delete(documentID string) (int, error) {
	removed := kb.store.Delete(documentID)
	if err := kb.disk.DeleteDocument(documentID); err != nil {
		return removed, err
	}
	return removed, nil
}

// Documents lists the metadata of every stored document, oldest first.
func (kb *KnowledgeBase) Documents() ([]core.DocumentMetadata, error) {
	return kb.disk.ListMetadata()
}

// Log returns recent processing activity, oldest first.
func (kb *KnowledgeBase) Log() []ingestion.LogEntry {
	return kb.log.Entries()
}

// NewReindexer creates a reindexer over this knowledge base's stores,
// using its current embedder.
func (kb *KnowledgeBase) NewReindexer(config *reindex.Config, progress io.Writer) *reindex.Reindexer {
	return reindex.NewReindexer(kb.disk, kb.store, kb.embedder, config, progress)
}
