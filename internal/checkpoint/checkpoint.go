// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

// Package checkpoint is a disk-backed cache of intermediate build results.
//
// Each key is stored as one JSON file holding an envelope with the key, the
// run that wrote it and the payload. There is no eviction and no
// invalidation: callers fold everything that identifies the data (dandiset,
// version) into the key, and "dandidash cache clear" wipes the directory.
// Writers take an advisory lock on <dir>/.lock so two builds sharing a cache
// do not interleave writes.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/dandiviz/dandidash/internal/testable"
)

// FS is the file system implementation used by this package.
// Override in tests with a testable.MockFileSystem.
var FS testable.FileSystem = testable.DefaultFS

const (
	lockFile = ".lock"
	fileExt  = ".json"
)

// Entry is the on-disk envelope of one cached value.
type Entry struct {
	Key       string          `json:"key"`
	RunID     string          `json:"run_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

// Size is the payload size in bytes.
func (e Entry) Size() int { return len(e.Payload) }

// Store is a checkpoint cache rooted at a directory.
type Store struct {
	dir   string
	runID string
	lock  *flock.Flock
	now   func() time.Time
}

// Open returns a store rooted at dir, creating the directory if needed.
// runID is recorded on every entry written through this store.
func Open(dir, runID string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("checkpoint: empty cache directory")
	}
	if err := FS.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Store{
		dir:   dir,
		runID: runID,
		lock:  flock.New(filepath.Join(dir, lockFile)),
		now:   time.Now,
	}, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string { return s.dir }

// Key joins parts into a cache key.
func Key(parts ...string) string {
	return strings.Join(parts, "-")
}

// Get decodes the value stored under key into v. It reports false when the
// key is not cached.
func (s *Store) Get(key string, v any) (bool, error) {
	if err := s.lock.RLock(); err != nil {
		return false, fmt.Errorf("lock cache: %w", err)
	}
	defer s.unlock()

	e, err := s.read(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	slog.Debug("checkpoint: hit", "key", key, "bytes", e.Size(), "written_by", e.RunID)
	return true, nil
}

// Put stores v under key, replacing any previous value.
func (s *Store) Put(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	data, err := json.Marshal(Entry{
		Key:       key,
		RunID:     s.runID,
		CreatedAt: s.now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock cache: %w", err)
	}
	defer s.unlock()

	if err := FS.WriteFile(s.path(key), data, 0o600); err != nil {
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}
	slog.Debug("checkpoint: stored", "key", key, "bytes", len(payload))
	return nil
}

// List returns every cached entry sorted by key.
func (s *Store) List() ([]Entry, error) {
	if err := s.lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock cache: %w", err)
	}
	defer s.unlock()

	names, err := s.entryFiles()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		e, err := s.read(filepath.Join(s.dir, name))
		if err != nil {
			slog.Warn("checkpoint: skipping unreadable entry", "file", name, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// Clear removes every cached entry and returns how many were removed.
func (s *Store) Clear() (int, error) {
	if err := s.lock.Lock(); err != nil {
		return 0, fmt.Errorf("lock cache: %w", err)
	}
	defer s.unlock()

	names, err := s.entryFiles()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, name := range names {
		if err := FS.Remove(filepath.Join(s.dir, name)); err != nil {
			return removed, fmt.Errorf("remove %s: %w", name, err)
		}
		removed++
	}
	return removed, nil
}

func (s *Store) entryFiles() ([]string, error) {
	dirEntries, err := FS.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache directory: %w", err)
	}
	var names []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), fileExt) {
			continue
		}
		names = append(names, de.Name())
	}
	return names, nil
}

func (s *Store) read(path string) (Entry, error) {
	data, err := FS.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return e, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, sanitize(key)+fileExt)
}

func (s *Store) unlock() {
	if err := s.lock.Unlock(); err != nil {
		slog.Warn("checkpoint: unlock failed", "error", err)
	}
}

// sanitize maps a key to a safe file name.
func sanitize(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
