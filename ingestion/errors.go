package ingestion

import "errors"

var (
	// ErrExtractorRequired is returned when creating a pipeline without an extractor.
	ErrExtractorRequired = errors.New("extractor is required")
	// ErrEmbedderRequired is returned when creating a pipeline without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")
	// ErrStoreRequired is returned when creating a pipeline without a vector store.
	ErrStoreRequired = errors.New("vector store is required")
	// ErrDiskStoreRequired is returned when creating a pipeline without a disk store.
	ErrDiskStoreRequired = errors.New("disk store is required")
	// ErrEmbeddingFailed is returned when a document cannot be embedded and no
	// fallback dimension is known yet.
	ErrEmbeddingFailed = errors.New("embedding failed")
)
