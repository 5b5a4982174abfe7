package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalpoint/docbase/core"
)

func TestDiskStoreMetadata(t *testing.T) {
	disk, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	meta := core.DocumentMetadata{
		ID:          "abc123",
		Title:       "Test Document",
		Source:      "https://example.com/doc",
		TotalChunks: 2,
		ChunkIDs:    []string{"abc123-0", "abc123-1"},
		Status:      core.StatusComplete,
		DateAdded:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, disk.SaveMetadata(meta))

	got, err := disk.LoadMetadata("abc123")
	require.NoError(t, err)
	assert.Equal(t, meta, *got)

	t.Run("missing document is not found", func(t *testing.T) {
		_, err := disk.LoadMetadata("missing")
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("empty id rejected", func(t *testing.T) {
		err := disk.SaveMetadata(core.DocumentMetadata{})
		require.ErrorIs(t, err, core.ErrEmptyDocumentID)
	})

	t.Run("status survives update", func(t *testing.T) {
		meta.Status = core.StatusInProgress
		require.NoError(t, disk.SaveMetadata(meta))
		got, err := disk.LoadMetadata("abc123")
		require.NoError(t, err)
		assert.Equal(t, core.StatusInProgress, got.Status)
	})
}

func TestDiskStoreChunks(t *testing.T) {
	disk, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	docID := "doc1"
	for i := 0; i < 3; i++ {
		chunk := chunkFixture(docID, i, 3, "Title", "content")
		chunk.Embedding = []float32{float32(i), 1}
		require.NoError(t, disk.SaveChunk(chunk))
	}

	t.Run("chunk files named by index", func(t *testing.T) {
		for _, name := range []string{"0.json", "1.json", "2.json"} {
			_, err := os.Stat(filepath.Join(disk.BaseDir(), docID, name))
			require.NoError(t, err)
		}
	})

	t.Run("load single chunk", func(t *testing.T) {
		chunk, err := disk.LoadChunk(docID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, chunk.ChunkIndex)
		assert.Equal(t, []float32{2, 1}, chunk.Embedding)
	})

	t.Run("missing chunk is not found", func(t *testing.T) {
		_, err := disk.LoadChunk(docID, 9)
		require.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("load all sorted by index", func(t *testing.T) {
		chunks, err := disk.LoadAllChunks(docID)
		require.NoError(t, err)
		require.Len(t, chunks, 3)
		for i, c := range chunks {
			assert.Equal(t, i, c.ChunkIndex)
		}
	})

	t.Run("corrupt chunk file skipped", func(t *testing.T) {
		path := filepath.Join(disk.BaseDir(), docID, "1.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		chunks, err := disk.LoadAllChunks(docID)
		require.NoError(t, err)
		assert.Len(t, chunks, 2)
	})

	t.Run("rejects invalid chunk", func(t *testing.T) {
		err := disk.SaveChunk(core.DocumentChunk{ID: "x-0", DocumentID: "x", ChunkIndex: 0, TotalChunks: 1})
		require.ErrorIs(t, err, core.ErrEmptyContent)
	})
}

func TestDiskStoreListAndDelete(t *testing.T) {
	disk, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	base := time.Now().UTC()
	for i, id := range []string{"docA", "docB", "docC"} {
		require.NoError(t, disk.SaveMetadata(core.DocumentMetadata{
			ID:        id,
			Title:     id,
			Source:    "test",
			Status:    core.StatusComplete,
			DateAdded: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	metas, err := disk.ListMetadata()
	require.NoError(t, err)
	require.Len(t, metas, 3)
	assert.Equal(t, "docA", metas[0].ID)
	assert.Equal(t, "docC", metas[2].ID)

	require.NoError(t, disk.DeleteDocument("docB"))
	metas, err = disk.ListMetadata()
	require.NoError(t, err)
	require.Len(t, metas, 2)

	// Deleting twice is fine.
	require.NoError(t, disk.DeleteDocument("docB"))
}
