package store

import "github.com/veslyn/tally/pkg/core"

// Memory keeps slots for the lifetime of the process only. It backs
// ephemeral runs where persistence is deliberately skipped, and tests.
type Memory struct {
	slots map[string][]core.Entry
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]core.Entry)}
}

// Load returns a copy of the slot's last saved collection.
func (m *Memory) Load(key string) ([]core.Entry, error) {
	entries, ok := m.slots[key]
	if !ok {
		return nil, nil
	}
	out := make([]core.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

// Save stores a copy of the collection under the slot key.
func (m *Memory) Save(key string, entries []core.Entry) error {
	saved := make([]core.Entry, len(entries))
	copy(saved, entries)
	m.slots[key] = saved
	return nil
}

// Close is a no-op for the memory backend.
func (m *Memory) Close() error { return nil }
