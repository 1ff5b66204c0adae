// Package journal owns the recorded entry collection.
package journal

import (
	"log/slog"
	"strings"
	"time"

	"github.com/veslyn/tally/pkg/core"
	"github.com/veslyn/tally/pkg/datefmt"
	"github.com/veslyn/tally/pkg/store"
)

// Journal is the single owner of the entry collection. It loads its slot
// once at construction, keeps newest entries at the front, and persists
// the whole collection after every mutation.
type Journal struct {
	store   *store.Store
	key     string
	logger  *slog.Logger
	entries []core.Entry
	lastID  int64
	now     func() time.Time
}

// Open loads the slot and seeds id generation past every loaded id.
func Open(st *store.Store, key string, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	j := &Journal{
		store:  st,
		key:    key,
		logger: logger,
		now:    time.Now,
	}
	j.entries = st.Load(key)
	for _, e := range j.entries {
		if e.ID > j.lastID {
			j.lastID = e.ID
		}
	}
	return j
}

// Append records one event at the current time and persists the
// collection. The id tracks the unix-millisecond timestamp but is bumped
// past the last issued id when appends land in the same millisecond, so
// ids stay unique and strictly increasing while timestamps stay truthful.
func (j *Journal) Append() core.Entry {
	ts := j.now().UnixMilli()
	id := ts
	if id <= j.lastID {
		id = j.lastID + 1
	}
	j.lastID = id
	e := core.Entry{ID: id, Timestamp: ts}
	j.entries = append([]core.Entry{e}, j.entries...)
	j.store.Save(j.key, j.entries)
	j.logger.Debug("entry recorded", "id", e.ID, "total", len(j.entries))
	return e
}

// Clear drops every entry and persists the empty collection. Asking the
// user first is the caller's job.
func (j *Journal) Clear() {
	n := len(j.entries)
	j.entries = nil
	j.store.Save(j.key, nil)
	j.logger.Info("journal cleared", "dropped", n)
}

// Entries returns a copy of the collection in sequence order, newest first.
func (j *Journal) Entries() []core.Entry {
	out := make([]core.Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len reports the number of recorded entries.
func (j *Journal) Len() int { return len(j.entries) }

// ExportText renders one line per entry, in sequence order rather than
// re-sorted. ok is false when there is nothing to export.
func (j *Journal) ExportText(f *datefmt.Formatter) (text string, ok bool) {
	if len(j.entries) == 0 {
		return "", false
	}
	lines := make([]string, len(j.entries))
	for i, e := range j.entries {
		lines[i] = f.FullDate(e.Timestamp) + " - " + f.Time(e.Timestamp)
	}
	return strings.Join(lines, "\n"), true
}
