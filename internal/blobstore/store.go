// Package blobstore persists opaque string values under string keys.
//
// Backends are fallible. Store wraps a Backend and absorbs its failures so
// callers see a get/set contract that never errors: a failed read is
// reported as absent and a failed write is logged and dropped.
package blobstore

import (
	"log/slog"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Keys used by notecard.
const (
	KeyNotes = "notes"
	KeyTheme = "theme"
)

// Backend is a key-value store that may fail.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Store is the infallible view over a Backend.
type Store struct {
	backend Backend
	logger  *slog.Logger

	mu     sync.Mutex
	hashes map[string]uint64 // xxhash of the last value seen per key
}

// New wraps backend. A nil logger discards diagnostics.
func New(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		backend: backend,
		logger:  logger,
		hashes:  make(map[string]uint64),
	}
}

// Get returns the value for key. Backend errors are logged and reported as absent.
func (s *Store) Get(key string) (string, bool) {
	v, ok, err := s.backend.Get(key)
	if err != nil {
		s.logger.Warn("blobstore: read failed", "key", key, "error", err)
		return "", false
	}

	s.mu.Lock()
	if ok {
		s.hashes[key] = xxhash.Sum64String(v)
	} else {
		delete(s.hashes, key)
	}
	s.mu.Unlock()
	return v, ok
}

// Set stores value under key. Writes of an unchanged value are skipped.
// Backend errors are logged and otherwise ignored.
func (s *Store) Set(key, value string) {
	h := xxhash.Sum64String(value)

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.hashes[key]; ok && prev == h {
		return
	}
	if err := s.backend.Set(key, value); err != nil {
		s.logger.Error("blobstore: write failed", "key", key, "bytes", len(value), "error", err)
		delete(s.hashes, key)
		return
	}
	s.hashes[key] = h
}

// Clear removes key.
func (s *Store) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hashes, key)
	if err := s.backend.Delete(key); err != nil {
		s.logger.Error("blobstore: clear failed", "key", key, "error", err)
	}
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
