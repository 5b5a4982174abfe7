// Package ingestion turns raw documents into embedded, persisted chunks.
// It provides the boundary-aware Chunker, the document Pipeline and a
// rolling ProcessingLog of recent ingestion activity.
package ingestion
