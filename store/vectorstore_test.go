package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalpoint/docbase/core"
)

func chunkFixture(docID string, index, total int, title, content string) core.DocumentChunk {
	return core.DocumentChunk{
		ID:          core.ChunkID(docID, index),
		DocumentID:  docID,
		Title:       title,
		Content:     content,
		Source:      "test",
		ChunkIndex:  index,
		TotalChunks: total,
	}
}

func TestVectorStoreAdd(t *testing.T) {
	t.Run("rejects empty embedding", func(t *testing.T) {
		s := New()
		err := s.Add(chunkFixture("doc", 0, 1, "t", "c"), nil)
		require.ErrorIs(t, err, ErrEmptyEmbedding)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("rejects dimension mismatch", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Add(chunkFixture("doc", 0, 2, "t", "c"), []float32{1, 0, 0}))
		err := s.Add(chunkFixture("doc", 1, 2, "t", "c"), []float32{1, 0})
		require.ErrorIs(t, err, ErrDimensionMismatch)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("tracks dimension from first chunk", func(t *testing.T) {
		s := New()
		assert.Equal(t, 0, s.Dimension())
		require.NoError(t, s.Add(chunkFixture("doc", 0, 1, "t", "c"), []float32{1, 0, 0, 0}))
		assert.Equal(t, 4, s.Dimension())
	})
}

func TestVectorStoreSearch(t *testing.T) {
	t.Run("empty store returns no results", func(t *testing.T) {
		s := New()
		results, err := s.Search([]float32{1, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("rejects query dimension mismatch", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Add(chunkFixture("doc", 0, 1, "t", "c"), []float32{1, 0, 0}))
		_, err := s.Search([]float32{1, 0}, 5)
		require.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("orders results by descending similarity", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Add(chunkFixture("a", 0, 1, "close", "c"), []float32{1, 0}))
		require.NoError(t, s.Add(chunkFixture("b", 0, 1, "far", "c"), []float32{0, 1}))
		require.NoError(t, s.Add(chunkFixture("c", 0, 1, "middle", "c"), []float32{1, 1}))

		results, err := s.Search([]float32{1, 0}, 5)
		require.NoError(t, err)
		require.Len(t, results, 2) // "far" scores 0, below the threshold
		assert.Equal(t, "close", results[0].Chunk.Title)
		assert.Equal(t, "middle", results[1].Chunk.Title)
		assert.Greater(t, results[0].Score, results[1].Score)
	})

	t.Run("falls back to top-k when nothing clears the threshold", func(t *testing.T) {
		s := New(WithSimilarityThreshold(0.99))
		require.NoError(t, s.Add(chunkFixture("a", 0, 1, "one", "c"), []float32{1, 1}))
		require.NoError(t, s.Add(chunkFixture("b", 0, 1, "two", "c"), []float32{-1, 0}))

		results, err := s.Search([]float32{1, 0}, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "one", results[0].Chunk.Title)
	})

	t.Run("widens candidate set for large top-k", func(t *testing.T) {
		s := New()
		for i := 0; i < 20; i++ {
			c := chunkFixture("doc", i, 20, "t", "c")
			require.NoError(t, s.Add(c, []float32{1, float32(i) * 0.01}))
		}
		results, err := s.Search([]float32{1, 0}, 6)
		require.NoError(t, err)
		assert.Len(t, results, 12)
	})

	t.Run("caps at top-k for small requests", func(t *testing.T) {
		s := New()
		for i := 0; i < 10; i++ {
			c := chunkFixture("doc", i, 10, "t", "c")
			require.NoError(t, s.Add(c, []float32{1, float32(i) * 0.01}))
		}
		results, err := s.Search([]float32{1, 0}, 3)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})
}

func TestVectorStoreGet(t *testing.T) {
	t.Run("returns resident chunk", func(t *testing.T) {
		s := New()
		want := chunkFixture("doc", 0, 1, "title", "content")
		require.NoError(t, s.Add(want, []float32{1}))

		got, err := s.Get(want.ID)
		require.NoError(t, err)
		assert.Equal(t, want.Content, got.Content)
	})

	t.Run("missing chunk is not found", func(t *testing.T) {
		s := New()
		_, err := s.Get("nope-0")
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("falls back to disk", func(t *testing.T) {
		disk, err := NewDiskStore(t.TempDir())
		require.NoError(t, err)

		want := chunkFixture("abcd", 2, 3, "on disk", "persisted content")
		require.NoError(t, disk.SaveChunk(want))

		s := New(WithDiskFallback(disk))
		got, err := s.Get(want.ID)
		require.NoError(t, err)
		assert.Equal(t, "persisted content", got.Content)
	})
}

func TestVectorStoreDelete(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(chunkFixture("keep", 0, 1, "t", "c"), []float32{1, 0}))
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Add(chunkFixture("gone", i, 3, "t", "c"), []float32{0, 1}))
	}

	removed := s.Delete("gone")
	assert.Equal(t, 3, removed)
	assert.Equal(t, 1, s.Len())

	// Remaining chunk still searchable, slices stayed aligned.
	results, err := s.Search([]float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "keep", results[0].Chunk.DocumentID)

	assert.Equal(t, 0, s.Delete("gone"))
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-6)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-6)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{0, 0}), 1e-6)
}
