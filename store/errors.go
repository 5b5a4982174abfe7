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


package store

import "errors"

var (
	// ErrDimensionMismatch indicates a vector whose dimensionality differs
	// from the store's established embedding dimension. Mixing dimensions
	// would make every similarity score meaningless, so it is rejected.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmptyEmbedding indicates an attempt to add a chunk with no vector.
	ErrEmptyEmbedding = errors.New("embedding cannot be empty")

	// ErrPersistence indicates an on-disk read or write failure. The
	// in-memory store may be ahead of disk when this is returned.
	ErrPersistence = errors.New("persistence failure")
)
