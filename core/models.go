package core

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// DocumentIDFromContent generates a deterministic document ID from content
// using BLAKE2b hashing. Identical content always produces the same ID, so
// re-ingesting an unchanged source lands in the same document directory.
func DocumentIDFromContent(content string) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}

// ChunkID builds the canonical chunk identifier "{documentID}-{chunkIndex}".
func ChunkID(documentID string, chunkIndex int) string {
	return documentID + "-" + strconv.Itoa(chunkIndex)
}

// ParseChunkID splits a chunk identifier into its document ID and chunk
// index. Returns ErrInvalidChunkID if the trailing segment is not a number.
func ParseChunkID(chunkID string) (documentID string, chunkIndex int, err error) {
	sep := strings.LastIndex(chunkID, "-")
	if sep <= 0 || sep == len(chunkID)-1 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidChunkID, chunkID)
	}
	idx, convErr := strconv.Atoi(chunkID[sep+1:])
	if convErr != nil || idx < 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidChunkID, chunkID)
	}
	return chunkID[:sep], idx, nil
}

// ProcessingStatus tracks the lifecycle of a document's ingestion.
type ProcessingStatus string

const (
	// StatusInProgress means chunk processing has started but not finished.
	// A crash mid-ingestion can leave a document in this state permanently.
	StatusInProgress ProcessingStatus = "in_progress"
	// StatusComplete means every chunk was embedded and persisted.
	StatusComplete ProcessingStatus = "complete"
)

// DocumentChunk is a bounded-size slice of a document's text, independently
// embedded and searchable. Chunks are never mutated after creation; a
// document is only ever deleted as a whole group of chunks.
type DocumentChunk struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"document_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	ChunkIndex  int       `json:"chunk_index"`
	TotalChunks int       `json:"total_chunks"`
	Embedding   []float32 `json:"embedding"`
}

// DocumentMetadata describes one ingested document. It is written with
// StatusInProgress before any chunk work begins, rewritten after each batch,
// and finalized with StatusComplete exactly once.
type DocumentMetadata struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Source      string           `json:"source"`
	TotalChunks int              `json:"total_chunks"`
	ChunkIDs    []string         `json:"chunk_ids"`
	Status      ProcessingStatus `json:"processing_status"`
	DateAdded   time.Time        `json:"date_added"`
}

// SearchResult pairs a chunk with its cosine similarity score against a
// query. The chunk is a copy; the stored original is never mutated.
type SearchResult struct {
	Chunk DocumentChunk
	Score float32
}
