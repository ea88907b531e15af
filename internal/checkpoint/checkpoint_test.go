// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package checkpoint

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dandiviz/dandidash/internal/testable"
)

type payload struct {
	Names []string `json:"names"`
	Count int      `json:"count"`
}

func TestStore_PutGet(t *testing.T) {
	s, err := Open(t.TempDir(), "run-1")
	require.NoError(t, err)

	key := Key("assets", "000026", "draft")
	require.NoError(t, s.Put(key, payload{Names: []string{"a", "b"}, Count: 2}))

	var got payload
	ok, err := s.Get(key, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload{Names: []string{"a", "b"}, Count: 2}, got)
}

func TestStore_GetMiss(t *testing.T) {
	s, err := Open(t.TempDir(), "")
	require.NoError(t, err)

	var got payload
	ok, err := s.Get("nope", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PutOverwrites(t *testing.T) {
	s, err := Open(t.TempDir(), "")
	require.NoError(t, err)

	require.NoError(t, s.Put("k", payload{Count: 1}))
	require.NoError(t, s.Put("k", payload{Count: 2}))

	var got payload
	ok, err := s.Get("k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, got.Count)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s1, err := Open(dir, "run-1")
	require.NoError(t, err)
	require.NoError(t, s1.Put("k", payload{Count: 7}))

	s2, err := Open(dir, "run-2")
	require.NoError(t, err)
	var got payload
	ok, err := s2.Get("k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, got.Count)
}

func TestStore_ListAndClear(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, "run-1")
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	require.NoError(t, s.Put("urls-000026-draft", map[string]string{"a": "b"}))
	require.NoError(t, s.Put("assets-000026-draft", []int{1, 2, 3}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "assets-000026-draft", entries[0].Key)
	assert.Equal(t, "run-1", entries[0].RunID)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), entries[0].CreatedAt)
	assert.Equal(t, len("[1,2,3]"), entries[0].Size())

	n, err := s.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	entries, err = s.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestStore_List_SkipsCorruptEntries(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, "")
	require.NoError(t, err)
	require.NoError(t, s.Put("good", 1))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o600))

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "good", entries[0].Key)
}

func TestStore_GetCorrupt(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, "")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "k.json"), []byte("not json"), 0o600))

	var v int
	_, err = s.Get("k", &v)
	assert.Error(t, err)
}

func TestStore_PutWriteError(t *testing.T) {
	s, err := Open(t.TempDir(), "")
	require.NoError(t, err)

	orig := FS
	t.Cleanup(func() { FS = orig })
	FS = &testable.MockFileSystem{
		WriteFileFn: func(string, []byte, os.FileMode) error { return errors.New("read-only") },
	}

	err = s.Put("k", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
}

func TestOpen_EmptyDir(t *testing.T) {
	_, err := Open("", "")
	assert.Error(t, err)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "assets-000026-0.230101.1200", sanitize("assets-000026-0.230101.1200"))
	assert.Equal(t, "a_b_c", sanitize("a/b c"))
	assert.Equal(t, "_", sanitize(""))
}
