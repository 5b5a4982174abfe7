// Copyright 2025 Vitalpoint Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingestion

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxChunkSize is the maximum chunk length in bytes.
	DefaultMaxChunkSize = 1000
	// DefaultOverlap is how many bytes consecutive chunks share, so that a
	// sentence split across a boundary still appears whole in one chunk.
	DefaultOverlap = 200

	// boundaryWindow is how far back from the size limit the chunker looks
	// for a natural break before giving up and cutting mid-word.
	boundaryWindow = 200
)

var sentenceEndRE = regexp.MustCompile(`[.!?]\s`)

// Chunker splits document text into overlapping chunks, preferring to cut
// at paragraph breaks, then sentence ends, then any whitespace. Sizes are
// measured in bytes but forced cuts always land on UTF-8 rune boundaries,
// so every chunk of valid input is itself valid UTF-8.
type Chunker struct {
	maxChunkSize int
	overlap      int
}

// ChunkerOption configures a Chunker.
type ChunkerOption func(*Chunker)

// WithMaxChunkSize sets the maximum chunk length. Values below 1 are ignored.
func WithMaxChunkSize(size int) ChunkerOption {
	return func(c *Chunker) {
		if size > 0 {
			c.maxChunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks. Negative values
// are ignored.
func WithOverlap(overlap int) ChunkerOption {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// NewChunker creates a Chunker. An overlap at or above the chunk size would
// stall the scan, so it is clamped to half the chunk size.
func NewChunker(opts ...ChunkerOption) *Chunker {
	c := &Chunker{
		maxChunkSize: DefaultMaxChunkSize,
		overlap:      DefaultOverlap,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.overlap >= c.maxChunkSize {
		c.overlap = c.maxChunkSize / 2
	}
	return c
}

// Chunk splits text into chunks of at most the configured size. Text that
// already fits yields a single chunk. Whitespace-only chunks are dropped.
func (c *Chunker) Chunk(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= c.maxChunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	// The scan always advances, but a cap on iterations guards against any
	// pathological input stalling ingestion.
	maxIterations := 2 * len(text)
	for iter := 0; start < len(text) && iter < maxIterations; iter++ {
		end := start + c.maxChunkSize
		if end >= len(text) {
			end = len(text)
		} else {
			end = c.findBoundary(text, start, snapToRuneStart(text, end))
			if end <= start {
				// A chunk size smaller than the rune at start: emit the
				// whole rune rather than stalling.
				_, size := utf8.DecodeRuneInString(text[start:])
				end = start + size
			}
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end >= len(text) {
			break
		}

		next := end - c.overlap
		if next > start {
			next = snapToRuneStart(text, next)
		}
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// findBoundary looks backward from end, within the boundary window, for the
// best place to cut: a blank line, then a sentence end, then any whitespace.
// If the window holds no break at all the cut lands at end. Callers pass an
// end that is already on a rune boundary, so a boundary-free window never
// cuts a multibyte character.
func (c *Chunker) findBoundary(text string, start, end int) int {
	windowStart := snapToRuneStart(text, end-boundaryWindow)
	if windowStart < start {
		windowStart = start
	}
	window := text[windowStart:end]

	if i := strings.LastIndex(window, "\n\n"); i >= 0 {
		return windowStart + i + len("\n\n")
	}
	if matches := sentenceEndRE.FindAllStringIndex(window, -1); len(matches) > 0 {
		last := matches[len(matches)-1]
		return windowStart + last[0] + 1
	}
	if i := strings.LastIndexFunc(window, unicode.IsSpace); i > 0 {
		return windowStart + i
	}
	return end
}

// snapToRuneStart moves i back to the start of the rune it falls inside,
// so slicing text at i never splits a multibyte character.
func snapToRuneStart(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}
