package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/moltbook/moltscope/pkg/model"
)

const (
	snapshotPrefix = "snapshot_"
	snapshotSuffix = ".json"
	// UTC, fixed width, so lexicographic filename order is temporal order.
	snapshotTimeLayout = "20060102T150405.000Z"
)

// FileStore persists one JSON file per snapshot. Writes go through a temp
// file and rename so a crash mid-write never corrupts a retained record.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns the store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory snapshots are stored in.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) filename(snap *model.Snapshot) string {
	return snapshotPrefix + snap.Timestamp.UTC().Format(snapshotTimeLayout) + snapshotSuffix
}

// Append implements Store.
func (s *FileStore) Append(_ context.Context, snap *model.Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, snapshotPrefix+"*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot: %w", err)
	}

	final := filepath.Join(s.dir, s.filename(snap))
	if err := os.Rename(tmp.Name(), final); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("persist snapshot %s: %w", final, err)
	}
	return nil
}

func (s *FileStore) names() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir %s: %w", s.dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || !strings.HasPrefix(n, snapshotPrefix) || !strings.HasSuffix(n, snapshotSuffix) {
			continue
		}
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// ListOrdered implements Store. A record that cannot be read or decoded fails
// the whole listing; returning a partial history would mask a storage problem.
func (s *FileStore) ListOrdered(_ context.Context) ([]model.Snapshot, error) {
	names, err := s.names()
	if err != nil {
		return nil, err
	}

	snaps := make([]model.Snapshot, 0, len(names))
	for _, n := range names {
		raw, err := os.ReadFile(filepath.Join(s.dir, n))
		if err != nil {
			return nil, fmt.Errorf("read snapshot %s: %w", n, err)
		}
		var snap model.Snapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", n, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// Len implements Store.
func (s *FileStore) Len(_ context.Context) (int, error) {
	names, err := s.names()
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// EvictOldest implements Store.
func (s *FileStore) EvictOldest(_ context.Context, max int) error {
	if max <= 0 {
		return nil
	}
	names, err := s.names()
	if err != nil {
		return err
	}
	for len(names) > max {
		victim := names[0]
		if err := os.Remove(filepath.Join(s.dir, victim)); err != nil {
			return fmt.Errorf("evict snapshot %s: %w", victim, err)
		}
		names = names[1:]
	}
	return nil
}

// Close implements Store.
func (s *FileStore) Close() error { return nil }
