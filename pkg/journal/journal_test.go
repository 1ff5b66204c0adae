package journal

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/veslyn/tally/pkg/core"
	"github.com/veslyn/tally/pkg/datefmt"
	"github.com/veslyn/tally/pkg/store"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 4}))
}

func testStore() *store.Store {
	return store.New(store.NewMemory(), quietLogger())
}

func testFormatter(t *testing.T) *datefmt.Formatter {
	t.Helper()
	f, err := datefmt.New("en-US", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestAppendPrepends(t *testing.T) {
	j := Open(testStore(), "entries", quietLogger())
	clock := &fakeClock{t: time.Date(2025, time.August, 25, 10, 0, 0, 0, time.UTC)}
	j.now = clock.now

	first := j.Append()
	clock.advance(time.Minute)
	second := j.Append()
	clock.advance(time.Minute)
	third := j.Append()

	got := j.Entries()
	if len(got) != 3 {
		t.Fatalf("length: got %d, want 3", len(got))
	}
	if got[0] != third || got[1] != second || got[2] != first {
		t.Errorf("sequence order wrong: %+v", got)
	}
}

func TestAppendIDEqualsTimestamp(t *testing.T) {
	j := Open(testStore(), "entries", quietLogger())
	clock := &fakeClock{t: time.Date(2025, time.August, 25, 10, 0, 0, 0, time.UTC)}
	j.now = clock.now

	for i := 0; i < 5; i++ {
		e := j.Append()
		if e.ID != e.Timestamp {
			t.Errorf("append %d: id %d != timestamp %d", i, e.ID, e.Timestamp)
		}
		clock.advance(time.Second)
	}
}

func TestAppendSameMillisecondBumpsID(t *testing.T) {
	j := Open(testStore(), "entries", quietLogger())
	clock := &fakeClock{t: time.Date(2025, time.August, 25, 10, 0, 0, 0, time.UTC)}
	j.now = clock.now

	a := j.Append()
	b := j.Append()
	c := j.Append()

	if a.Timestamp != b.Timestamp || b.Timestamp != c.Timestamp {
		t.Fatalf("timestamps should share the millisecond: %d %d %d", a.Timestamp, b.Timestamp, c.Timestamp)
	}
	if b.ID != a.ID+1 || c.ID != b.ID+1 {
		t.Errorf("ids not strictly increasing: %d %d %d", a.ID, b.ID, c.ID)
	}
}

func TestIDGenerationSeededFromLoadedEntries(t *testing.T) {
	st := testStore()
	seeded := time.Date(2025, time.August, 25, 10, 0, 0, 0, time.UTC).UnixMilli()
	st.Save("entries", []core.Entry{{ID: seeded + 500, Timestamp: seeded + 500}, {ID: seeded, Timestamp: seeded}})

	j := Open(st, "entries", quietLogger())
	clock := &fakeClock{t: time.UnixMilli(seeded + 100)} // clock behind the highest stored id
	j.now = clock.now

	e := j.Append()
	if e.ID != seeded+501 {
		t.Errorf("id: got %d, want %d", e.ID, seeded+501)
	}
	if e.Timestamp != seeded+100 {
		t.Errorf("timestamp: got %d, want %d", e.Timestamp, seeded+100)
	}
}

func TestAppendPersists(t *testing.T) {
	st := testStore()
	j := Open(st, "entries", quietLogger())
	j.Append()
	j.Append()

	reopened := Open(st, "entries", quietLogger())
	if reopened.Len() != 2 {
		t.Errorf("reopened length: got %d, want 2", reopened.Len())
	}
}

func TestClear(t *testing.T) {
	st := testStore()
	j := Open(st, "entries", quietLogger())
	j.Append()
	j.Append()
	j.Clear()

	if j.Len() != 0 {
		t.Errorf("length after clear: got %d, want 0", j.Len())
	}
	if reopened := Open(st, "entries", quietLogger()); reopened.Len() != 0 {
		t.Errorf("persisted length after clear: got %d, want 0", reopened.Len())
	}

	// Clearing an empty journal is a no-op, not a failure.
	j.Clear()
}

func TestExportText(t *testing.T) {
	st := testStore()
	mondayNoon := time.Date(2025, time.August, 25, 14, 32, 10, 0, time.UTC).UnixMilli()
	sundayNoon := time.Date(2025, time.August, 24, 12, 5, 0, 0, time.UTC).UnixMilli()
	// Stored out of timestamp order: export must NOT re-sort.
	st.Save("entries", []core.Entry{
		{ID: sundayNoon, Timestamp: sundayNoon},
		{ID: mondayNoon, Timestamp: mondayNoon},
	})

	j := Open(st, "entries", quietLogger())
	text, ok := j.ExportText(testFormatter(t))
	if !ok {
		t.Fatal("expected exportable text")
	}
	want := "Sunday, 24 August 2025 - 12:05:00\nMonday, 25 August 2025 - 14:32:10"
	if text != want {
		t.Errorf("export:\ngot  %q\nwant %q", text, want)
	}
}

func TestExportTextEmpty(t *testing.T) {
	j := Open(testStore(), "entries", quietLogger())
	if text, ok := j.ExportText(testFormatter(t)); ok || text != "" {
		t.Errorf("empty journal export: got %q %v, want \"\" false", text, ok)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	j := Open(testStore(), "entries", quietLogger())
	j.Append()

	entries := j.Entries()
	entries[0].ID = 424242
	if j.Entries()[0].ID == 424242 {
		t.Error("journal state mutated through the returned copy")
	}
}
