// Package store persists the entry collection under named slots.
package store

import (
	"log/slog"

	"github.com/veslyn/tally/pkg/core"
)

// Backend reads and writes a whole entry collection under a slot key.
// Implementations report failures honestly; the forgiving contract the
// application relies on lives in Store.
type Backend interface {
	Load(key string) ([]core.Entry, error)
	Save(key string, entries []core.Entry) error
	Close() error
}

// Store wraps a Backend with the collection's storage contract: a load
// never fails (a missing or unreadable slot reads as empty) and save
// failures are logged and dropped, leaving in-memory state authoritative.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// New wraps a backend. A nil logger falls back to slog.Default().
func New(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: backend, logger: logger}
}

// Load reads a slot. Any failure logs and reads as an empty collection.
func (s *Store) Load(key string) []core.Entry {
	entries, err := s.backend.Load(key)
	if err != nil {
		s.logger.Error("load failed, starting empty", "key", key, "err", err)
		return nil
	}
	return entries
}

// Save writes a slot. Failures are logged and dropped; there is no retry.
func (s *Store) Save(key string, entries []core.Entry) {
	if err := s.backend.Save(key, entries); err != nil {
		s.logger.Error("save failed, keeping in-memory state", "key", key, "err", err)
	}
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
