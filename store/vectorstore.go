package store

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/vitalpoint/docbase/core"
)

const (
	// DefaultSimilarityThreshold is the minimum cosine similarity for a
	// chunk to count as relevant. When no chunk clears the threshold the
	// search falls back to the raw top-K so a query never comes back empty
	// purely from threshold miscalibration.
	DefaultSimilarityThreshold = 0.3

	// defaultTopK is used when a caller passes a non-positive limit.
	defaultTopK = 5

	// cosineEpsilon guards the cosine denominator against zero vectors.
	cosineEpsilon = 1e-10
)

// VectorStore is an in-memory collection of document chunks and their
// embeddings with brute-force cosine similarity search.
//
// The chunk and embedding sequences are index-aligned and guarded by a
// single lock: every mutation updates both together, so readers always
// observe len(chunks) == len(embeddings). The embedding dimension is fixed
// by the first Add; vectors of any other dimension are rejected.
type VectorStore struct {
	mu         sync.RWMutex
	chunks     []core.DocumentChunk
	embeddings [][]float32
	threshold  float32
	disk       *DiskStore
	logger     *slog.Logger
}

// Option configures a VectorStore.
type Option func(*VectorStore)

// WithSimilarityThreshold overrides DefaultSimilarityThreshold.
func WithSimilarityThreshold(threshold float32) Option {
	return func(s *VectorStore) {
		s.threshold = threshold
	}
}

// WithDiskFallback lets Get fall back to per-chunk files on disk when a
// chunk is not resident in memory.
func WithDiskFallback(disk *DiskStore) Option {
	return func(s *VectorStore) {
		s.disk = disk
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *VectorStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an empty VectorStore.
func New(opts ...Option) *VectorStore {
	s := &VectorStore{
		threshold: DefaultSimilarityThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a chunk and its embedding to the store. O(1).
// The first Add fixes the store's embedding dimension.
func (s *VectorStore) Add(chunk core.DocumentChunk, embedding []float32) error {
	if len(embedding) == 0 {
		return ErrEmptyEmbedding
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.embeddings) > 0 && len(embedding) != len(s.embeddings[0]) {
		return fmt.Errorf("%w: store has %d, got %d", ErrDimensionMismatch, len(s.embeddings[0]), len(embedding))
	}

	s.chunks = append(s.chunks, chunk)
	s.embeddings = append(s.embeddings, embedding)
	return nil
}

// Reset removes every chunk and embedding, returning the store to its
// initial empty state. The next Add establishes a fresh dimension, so a
// rebuild may switch embedding models.
func (s *VectorStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
	s.embeddings = nil
}

// Len returns the number of stored chunks.
func (s *VectorStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Dimension returns the store's embedding dimension, or 0 when empty.
func (s *VectorStore) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.embeddings) == 0 {
		return 0
	}
	return len(s.embeddings[0])
}

// Search ranks stored chunks by cosine similarity against queryEmbedding.
//
// Candidate selection prefers every chunk above the similarity threshold;
// when none clears it, the raw top-K are returned instead. Results are
// sorted by descending similarity. When topK exceeds 5, the signature of a
// document-specific query, up to 2x topK candidates are kept so a later
// reorder stage has room to regroup chunks by document; the retriever
// truncates back to topK after reordering.
//
// Scores are attached to copies; stored chunks are never mutated.
func (s *VectorStore) Search(queryEmbedding []float32, topK int) ([]core.SearchResult, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.chunks) == 0 {
		return []core.SearchResult{}, nil
	}

	if len(queryEmbedding) != len(s.embeddings[0]) {
		return nil, fmt.Errorf("%w: store has %d, query has %d", ErrDimensionMismatch, len(s.embeddings[0]), len(queryEmbedding))
	}

	similarities := make([]float32, len(s.embeddings))
	for i, embedding := range s.embeddings {
		similarities[i] = CosineSimilarity(queryEmbedding, embedding)
	}

	above := make([]int, 0, len(similarities))
	for i, sim := range similarities {
		if sim >= s.threshold {
			above = append(above, i)
		}
	}

	candidates := above
	if len(candidates) == 0 {
		// Threshold fallback: rank everything and let the limit apply.
		candidates = make([]int, len(similarities))
		for i := range candidates {
			candidates[i] = i
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return similarities[candidates[a]] > similarities[candidates[b]]
	})

	limit := topK
	if topK > defaultTopK {
		limit = 2 * topK
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]core.SearchResult, 0, len(candidates))
	for _, idx := range candidates {
		if idx >= len(s.chunks) {
			continue
		}
		results = append(results, core.SearchResult{
			Chunk: s.chunks[idx],
			Score: similarities[idx],
		})
	}

	return results, nil
}

// Get looks a chunk up by its id, first in memory, then (when a disk
// fallback is configured) in the per-chunk file located through the
// "{documentID}-{chunkIndex}" id format. Returns core.ErrNotFound on a miss.
func (s *VectorStore) Get(chunkID string) (core.DocumentChunk, error) {
	s.mu.RLock()
	for i := range s.chunks {
		if s.chunks[i].ID == chunkID {
			chunk := s.chunks[i]
			s.mu.RUnlock()
			return chunk, nil
		}
	}
	s.mu.RUnlock()

	if s.disk != nil {
		docID, chunkIndex, err := core.ParseChunkID(chunkID)
		if err == nil {
			chunk, err := s.disk.LoadChunk(docID, chunkIndex)
			if err == nil {
				return *chunk, nil
			}
		}
	}

	return core.DocumentChunk{}, fmt.Errorf("%w: chunk %q", core.ErrNotFound, chunkID)
}

// Delete removes every chunk whose id is prefixed by documentID from both
// aligned sequences and returns the number removed. Indexes are removed in
// descending order so earlier removals never shift later ones. Removing the
// on-disk document directory is the caller's responsibility.
func (s *VectorStore) Delete(documentID string) int {
	prefix := documentID + "-"

	s.mu.Lock()
	defer s.mu.Unlock()

	var doomed []int
	for i := range s.chunks {
		if strings.HasPrefix(s.chunks[i].ID, prefix) {
			doomed = append(doomed, i)
		}
	}

	for j := len(doomed) - 1; j >= 0; j-- {
		i := doomed[j]
		s.chunks = append(s.chunks[:i], s.chunks[i+1:]...)
		s.embeddings = append(s.embeddings[:i], s.embeddings[i+1:]...)
	}

	return len(doomed)
}

// CosineSimilarity computes dot(a,b) / (‖a‖·‖b‖ + ε). The epsilon keeps a
// zero vector from producing a division by zero; its similarity against
// anything is simply 0.
func CosineSimilarity(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	return float32(dot / (math.Sqrt(normA)*math.Sqrt(normB) + cosineEpsilon))
}
