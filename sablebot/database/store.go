package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store is a whole-file JSON record store: one JSON object keyed by
// stringified user id. A missing or empty file is an empty mapping; a
// malformed file is logged and treated as empty rather than failing the
// bot. All access goes through a single mutex so the periodic voice tick
// and interactive handlers never interleave a load-mutate-save cycle.
type Store[T any] struct {
	mu   sync.Mutex
	path string
}

func NewStore[T any](path string) *Store[T] {
	return &Store[T]{path: path}
}

// Path returns the backing file location.
func (s *Store[T]) Path() string {
	return s.path
}

// LoadAll reads the full record mapping.
func (s *Store[T]) LoadAll() (map[string]*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// SaveAll atomically replaces the full record mapping.
func (s *Store[T]) SaveAll(records map[string]*T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(records)
}

// Get returns one record, or (nil, false) when absent.
func (s *Store[T]) Get(id string) (*T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return nil, false, err
	}
	record, ok := records[id]
	return record, ok, nil
}

// Put writes one record, keeping every other record intact. The
// load-mutate-save cycle runs under the store lock.
func (s *Store[T]) Put(id string, record *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return err
	}
	records[id] = record
	return s.saveLocked(records)
}

func (s *Store[T]) loadLocked() (map[string]*T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]*T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return map[string]*T{}, nil
	}

	records := map[string]*T{}
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Error("Malformed store file, starting from an empty mapping",
			slog.String("type", "db"),
			slog.String("path", s.path),
			slog.Any("error", err))
		return map[string]*T{}, nil
	}
	return records, nil
}

func (s *Store[T]) saveLocked(records map[string]*T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.path, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}
	}

	// Write-then-rename so a crash mid-save never truncates the live file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
