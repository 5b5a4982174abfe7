// Package store holds document chunks and their embeddings, serving
// cosine-similarity search over the in-memory index and persisting
// documents as JSON files on disk.
package store
