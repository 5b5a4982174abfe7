package local

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"

	"github.com/vitalpoint/docbase/ai"
)

// Dimensions is the fixed dimensionality of vectors produced by this
// embedder.
const Dimensions = 128

// Embedder implements ai.Embedder with a deterministic hashed bag-of-words
// model. Tokens are lowercased, stop words removed, and each remaining term
// is hashed into one of Dimensions buckets with a log-scaled term weight.
// The resulting vector is L2-normalized.
//
// It needs no network access and identical text always yields an identical
// vector, which makes it suitable as an offline fallback and for tests.
// Its vectors are not comparable with those of any hosted embedding model.
type Embedder struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

var _ ai.Embedder = (*Embedder)(nil)

// NewEmbedder creates a deterministic local embedder.
func NewEmbedder() *Embedder {
	return &Embedder{
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`),
		stopwords:    defaultStopwords(),
	}
}

// EmbedText generates the hashed bag-of-words vector for text.
func (e *Embedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, Dimensions)

	counts := make(map[uint32]int)
	for _, token := range e.tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		counts[h.Sum32()%Dimensions]++
	}

	for bucket, count := range counts {
		// Log-scaled term weighting dampens very frequent terms.
		vec[bucket] = float32(1.0 + math.Log(float64(count)))
	}

	normalize(vec)
	return vec, nil
}

// EmbedTexts generates vectors for multiple texts.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.EmbedText(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (e *Embedder) tokenize(text string) []string {
	raw := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

func normalize(vec []float32) {
	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return
	}
	norm := float32(math.Sqrt(sumSquares))
	for i := range vec {
		vec[i] /= norm
	}
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was",
		"were", "be", "been", "being", "it", "this", "that", "these", "those",
		"from", "up", "down", "over", "under", "than", "so", "such", "into",
		"about", "between", "through", "during", "before", "after", "above",
		"below", "out", "off", "own", "same", "too", "very", "can", "will",
		"just", "not", "no", "you", "your", "they", "them", "their", "we",
		"our", "he", "she", "his", "her", "its", "i", "me", "my", "do",
		"does", "did", "have", "has", "had", "what", "which", "who", "when",
		"where", "why", "how", "all", "any", "both", "each", "few", "more",
		"most", "other", "some", "there", "here", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
