package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validChunk() *DocumentChunk {
	return &DocumentChunk{
		ID:          ChunkID("doc1", 0),
		DocumentID:  "doc1",
		Title:       "Test Document",
		Content:     "Some chunk content.",
		Source:      "uploaded file: test.txt",
		ChunkIndex:  0,
		TotalChunks: 1,
	}
}

func TestValidateChunk(t *testing.T) {
	t.Run("valid chunk", func(t *testing.T) {
		require.NoError(t, ValidateChunk(validChunk()))
	})

	t.Run("valid chunk without embedding", func(t *testing.T) {
		chunk := validChunk()
		chunk.Embedding = nil
		require.NoError(t, ValidateChunk(chunk))
	})

	t.Run("nil chunk", func(t *testing.T) {
		err := ValidateChunk(nil)
		assert.ErrorIs(t, err, ErrInvalidChunk)
	})

	t.Run("empty document id", func(t *testing.T) {
		chunk := validChunk()
		chunk.DocumentID = ""
		err := ValidateChunk(chunk)
		assert.ErrorIs(t, err, ErrInvalidChunk)
		assert.ErrorIs(t, err, ErrEmptyDocumentID)
	})

	t.Run("empty content", func(t *testing.T) {
		chunk := validChunk()
		chunk.Content = ""
		err := ValidateChunk(chunk)
		assert.ErrorIs(t, err, ErrInvalidChunk)
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("negative chunk index", func(t *testing.T) {
		chunk := validChunk()
		chunk.ChunkIndex = -1
		err := ValidateChunk(chunk)
		assert.ErrorIs(t, err, ErrInvalidChunkIndex)
	})

	t.Run("chunk index beyond total", func(t *testing.T) {
		chunk := validChunk()
		chunk.ChunkIndex = 1
		err := ValidateChunk(chunk)
		assert.ErrorIs(t, err, ErrInvalidChunkIndex)
	})

	t.Run("id mismatch", func(t *testing.T) {
		chunk := validChunk()
		chunk.ID = "other-5"
		err := ValidateChunk(chunk)
		assert.ErrorIs(t, err, ErrInvalidChunk)
	})
}
