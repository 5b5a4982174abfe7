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

import "errors"

// Domain errors
var (
	// ErrUnsupportedFormat indicates a source format the extractor cannot
	// handle. Rejected before any ingestion work begins.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrNotFound indicates a chunk or document lookup miss.
	ErrNotFound = errors.New("document not found")

	// ErrNoContent indicates extraction produced zero usable text.
	ErrNoContent = errors.New("no content extracted")

	// ErrInvalidChunk indicates a DocumentChunk failed validation.
	ErrInvalidChunk = errors.New("invalid document chunk")

	// ErrInvalidChunkID indicates a chunk identifier is malformed.
	ErrInvalidChunkID = errors.New("invalid chunk id")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyDocumentID indicates the DocumentID field is empty.
	ErrEmptyDocumentID = errors.New("document id cannot be empty")

	// ErrInvalidChunkIndex indicates ChunkIndex is negative or not below
	// TotalChunks.
	ErrInvalidChunkIndex = errors.New("chunk index out of range")
)
