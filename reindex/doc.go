// Package reindex re-embeds every persisted document chunk with the
// current embedder, rewriting the chunk files and rebuilding the in-memory
// vector store. Used after switching embedding models.
package reindex
