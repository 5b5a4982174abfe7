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

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/vitalpoint/docbase/core"
)

const metadataFile = "metadata.json"

// DiskStore persists documents under a base directory, one subdirectory
// per document ID. Each subdirectory holds a metadata.json plus one
// {chunkIndex}.json file per chunk.
type DiskStore struct {
	baseDir string
	logger  *slog.Logger
}

// DiskOption configures a DiskStore.
type DiskOption func(*DiskStore)

// WithDiskLogger sets the logger used for load-time diagnostics.
func WithDiskLogger(logger *slog.Logger) DiskOption {
	return func(d *DiskStore) {
		d.logger = logger
	}
}

// NewDiskStore creates the base directory if needed and returns a store
// rooted there.
func NewDiskStore(baseDir string, opts ...DiskOption) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create base directory %s: %v", ErrPersistence, baseDir, err)
	}
	d := &DiskStore{
		baseDir: baseDir,
		logger:  slog.Default().With("component", "diskstore"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// BaseDir returns the root directory documents are stored under.
func (d *DiskStore) BaseDir() string {
	return d.baseDir
}

func (d *DiskStore) documentDir(documentID string) string {
	return filepath.Join(d.baseDir, documentID)
}

func (d *DiskStore) chunkPath(documentID string, chunkIndex int) string {
	return filepath.Join(d.documentDir(documentID), strconv.Itoa(chunkIndex)+".json")
}

// SaveMetadata writes the document's metadata.json, creating the document
// directory if it does not exist yet. Writes go through a temp file and
// rename so readers never observe a partially written file.
func (d *DiskStore) SaveMetadata(meta core.DocumentMetadata) error {
	if meta.ID == "" {
		return core.ErrEmptyDocumentID
	}
	dir := d.documentDir(meta.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create document directory for %s: %v", ErrPersistence, meta.ID, err)
	}
	return d.writeJSON(filepath.Join(dir, metadataFile), meta)
}

// LoadMetadata reads a document's metadata.json. Returns core.ErrNotFound
// when the document directory or metadata file is missing.
func (d *DiskStore) LoadMetadata(documentID string) (*core.DocumentMetadata, error) {
	data, err := os.ReadFile(filepath.Join(d.documentDir(documentID), metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: document %s", core.ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("%w: read metadata for %s: %v", ErrPersistence, documentID, err)
	}
	var meta core.DocumentMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: decode metadata for %s: %v", ErrPersistence, documentID, err)
	}
	return &meta, nil
}

// SaveChunk writes a chunk to {chunkIndex}.json inside its document
// directory.
func (d *DiskStore) SaveChunk(chunk core.DocumentChunk) error {
	if err := core.ValidateChunk(&chunk); err != nil {
		return err
	}
	dir := d.documentDir(chunk.DocumentID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create document directory for %s: %v", ErrPersistence, chunk.DocumentID, err)
	}
	return d.writeJSON(d.chunkPath(chunk.DocumentID, chunk.ChunkIndex), chunk)
}

// LoadChunk reads a single chunk file. Returns core.ErrNotFound when the
// chunk file does not exist.
func (d *DiskStore) LoadChunk(documentID string, chunkIndex int) (*core.DocumentChunk, error) {
	data, err := os.ReadFile(d.chunkPath(documentID, chunkIndex))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: chunk %d of document %s", core.ErrNotFound, chunkIndex, documentID)
		}
		return nil, fmt.Errorf("%w: read chunk %d of %s: %v", ErrPersistence, chunkIndex, documentID, err)
	}
	var chunk core.DocumentChunk
	if err := json.Unmarshal(data, &chunk); err != nil {
		return nil, fmt.Errorf("%w: decode chunk %d of %s: %v", ErrPersistence, chunkIndex, documentID, err)
	}
	return &chunk, nil
}

// LoadAllChunks reads every chunk file of a document, sorted by chunk
// index. Corrupt chunk files are skipped with a warning rather than
// failing the whole document.
func (d *DiskStore) LoadAllChunks(documentID string) ([]core.DocumentChunk, error) {
	dir := d.documentDir(documentID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: document %s", core.ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("%w: read document directory for %s: %v", ErrPersistence, documentID, err)
	}

	chunks := make([]core.DocumentChunk, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == metadataFile || filepath.Ext(name) != ".json" {
			continue
		}
		index, err := strconv.Atoi(name[:len(name)-len(".json")])
		if err != nil {
			continue
		}
		chunk, err := d.LoadChunk(documentID, index)
		if err != nil {
			d.logger.Warn("skipping unreadable chunk file",
				"document_id", documentID,
				"file", name,
				"error", err)
			continue
		}
		chunks = append(chunks, *chunk)
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkIndex < chunks[j].ChunkIndex
	})
	return chunks, nil
}

// ListMetadata returns the metadata of every document on disk. Documents
// whose metadata cannot be read are skipped with a warning.
func (d *DiskStore) ListMetadata() ([]core.DocumentMetadata, error) {
	entries, err := os.ReadDir(d.baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: read base directory: %v", ErrPersistence, err)
	}

	metas := make([]core.DocumentMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := d.LoadMetadata(entry.Name())
		if err != nil {
			d.logger.Warn("skipping document with unreadable metadata",
				"document_id", entry.Name(),
				"error", err)
			continue
		}
		metas = append(metas, *meta)
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].DateAdded.Before(metas[j].DateAdded)
	})
	return metas, nil
}

// DeleteDocument removes a document's directory and everything in it.
// Deleting a document that does not exist is not an error.
func (d *DiskStore) DeleteDocument(documentID string) error {
	if documentID == "" {
		return core.ErrEmptyDocumentID
	}
	if err := os.RemoveAll(d.documentDir(documentID)); err != nil {
		return fmt.Errorf("%w: delete document %s: %v", ErrPersistence, documentID, err)
	}
	return nil
}

func (d *DiskStore) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPersistence, filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", ErrPersistence, filepath.Base(path), err)
	}
	return nil
}
