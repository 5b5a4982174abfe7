package local

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedText_Deterministic(t *testing.T) {
	e := NewEmbedder()
	ctx := context.Background()

	v1, err := e.EmbedText(ctx, "Regular exercise improves cardiovascular health")
	require.NoError(t, err)
	v2, err := e.EmbedText(ctx, "Regular exercise improves cardiovascular health")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Len(t, v1, Dimensions)
}

func TestEmbedText_UnitLength(t *testing.T) {
	e := NewEmbedder()

	vec, err := e.EmbedText(context.Background(), "sleep quality and mental health")
	require.NoError(t, err)

	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sumSquares), 1e-5)
}

func TestEmbedText_SimilarTextsScoreHigher(t *testing.T) {
	e := NewEmbedder()
	ctx := context.Background()

	base, err := e.EmbedText(ctx, "benefits of regular physical exercise")
	require.NoError(t, err)
	related, err := e.EmbedText(ctx, "regular exercise has many benefits")
	require.NoError(t, err)
	unrelated, err := e.EmbedText(ctx, "quarterly corporate tax filing deadlines")
	require.NoError(t, err)

	assert.Greater(t, dot(base, related), dot(base, unrelated))
}

func TestEmbedText_StopWordsOnly(t *testing.T) {
	e := NewEmbedder()

	vec, err := e.EmbedText(context.Background(), "the and of to in")
	require.NoError(t, err)

	// All tokens filtered: the zero vector comes back unnormalized.
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestEmbedText_CaseInsensitive(t *testing.T) {
	e := NewEmbedder()
	ctx := context.Background()

	lower, err := e.EmbedText(ctx, "hydration matters")
	require.NoError(t, err)
	upper, err := e.EmbedText(ctx, "HYDRATION MATTERS")
	require.NoError(t, err)

	assert.Equal(t, lower, upper)
}

func TestEmbedTexts_OrderPreserved(t *testing.T) {
	e := NewEmbedder()
	ctx := context.Background()

	texts := []string{"first text about sleep", "second text about nutrition"}
	vectors, err := e.EmbedTexts(ctx, texts)
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	single, err := e.EmbedText(ctx, texts[1])
	require.NoError(t, err)
	assert.Equal(t, single, vectors[1])
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
