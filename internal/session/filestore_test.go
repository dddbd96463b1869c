// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TradeLens Contributors

package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelens/tradelens/internal/session"
)

func TestNewFileStore(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "state")
		store, err := session.NewFileStore(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, store.Dir())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("rejects empty directory", func(t *testing.T) {
		_, err := session.NewFileStore("")
		assert.Error(t, err)
	})
}

func TestFileStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	store, err := session.NewFileStore(t.TempDir())
	require.NoError(t, err)

	t.Run("absent key returns nil without error", func(t *testing.T) {
		data, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("round-trips a value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k", []byte(`{"v":1}`)))
		data, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"v":1}`), data)
	})

	t.Run("overwrites in place", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k", []byte("old")))
		require.NoError(t, store.Set(ctx, "k", []byte("new")))
		data, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), data)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "gone", []byte("x")))
		require.NoError(t, store.Delete(ctx, "gone"))
		require.NoError(t, store.Delete(ctx, "gone"))

		data, err := store.Get(ctx, "gone")
		require.NoError(t, err)
		assert.Nil(t, data)
	})
}

func TestFileStore_WriteHygiene(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := session.NewFileStore(dir)
	require.NoError(t, err)

	t.Run("record files are owner-only", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, session.StorageKey, []byte("secret")))

		info, err := os.Stat(filepath.Join(dir, session.StorageKey+".json"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "a", []byte("1")))
		require.NoError(t, store.Set(ctx, "a", []byte("2")))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".tmp-")
		}
	})

	t.Run("keys cannot escape the directory", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "../escape", []byte("x")))

		_, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.json"))
		assert.True(t, os.IsNotExist(err))
	})
}
