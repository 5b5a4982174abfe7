// Copyright 2025 Vitalpoint Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import "fmt"

// ValidateChunk validates a DocumentChunk according to domain rules.
//
// Validation rules:
//   - DocumentID must not be empty
//   - Content must not be empty
//   - ChunkIndex must be in [0, TotalChunks)
//   - ID must equal ChunkID(DocumentID, ChunkIndex)
//
// NOT validated:
//   - Embedding (can be empty until the pipeline embeds the chunk)
func ValidateChunk(chunk *DocumentChunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.DocumentID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyDocumentID)
	}

	if chunk.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	if chunk.ChunkIndex < 0 || chunk.ChunkIndex >= chunk.TotalChunks {
		return fmt.Errorf("%w: %w: index %d of %d", ErrInvalidChunk, ErrInvalidChunkIndex, chunk.ChunkIndex, chunk.TotalChunks)
	}

	if chunk.ID != ChunkID(chunk.DocumentID, chunk.ChunkIndex) {
		return fmt.Errorf("%w: id %q does not match document %q index %d", ErrInvalidChunk, chunk.ID, chunk.DocumentID, chunk.ChunkIndex)
	}

	return nil
}
