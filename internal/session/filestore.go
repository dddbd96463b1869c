// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
)

// FileStore implements Storage as one JSON file per key inside a
// directory. Writes go through a temp file plus rename so a crash
// mid-persist leaves either the old record or the new one, never a
// half-written file.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, oops.Code("STORE_INVALID_DIR").Errorf("storage directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, oops.Code("STORE_MKDIR_FAILED").With("dir", dir).Wrap(err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the storage directory.
func (f *FileStore) Dir() string {
	return f.dir
}

// path maps a key to a file path. Path separators in keys are flattened so
// a key can never escape the storage directory.
func (f *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(f.dir, safe+".json")
}

// Get returns the stored value, or (nil, nil) when the key is absent.
func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, oops.Code("STORE_READ_FAILED").With("key", key).Wrap(err)
	}
	return data, nil
}

// Set atomically stores the value under key.
func (f *FileStore) Set(_ context.Context, key string, value []byte) error {
	target := f.path(key)

	tmp, err := os.CreateTemp(f.dir, filepath.Base(target)+".tmp-*")
	if err != nil {
		return oops.Code("STORE_WRITE_FAILED").With("key", key).Wrap(err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return oops.Code("STORE_WRITE_FAILED").With("key", key).Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return oops.Code("STORE_WRITE_FAILED").With("key", key).Wrap(err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return oops.Code("STORE_WRITE_FAILED").With("key", key).Wrap(err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return oops.Code("STORE_WRITE_FAILED").With("key", key).Wrap(err)
	}
	return nil
}

// Delete removes the key. Absent keys are not an error.
func (f *FileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return oops.Code("STORE_DELETE_FAILED").With("key", key).Wrap(err)
	}
	return nil
}
