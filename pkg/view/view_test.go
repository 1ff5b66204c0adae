package view

import (
	"testing"
	"time"

	"github.com/veslyn/tally/pkg/core"
	"github.com/veslyn/tally/pkg/datefmt"
)

func utcFormatter(t *testing.T) *datefmt.Formatter {
	t.Helper()
	f, err := datefmt.New("en-US", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func at(t time.Time) core.Entry {
	return core.Entry{ID: t.UnixMilli(), Timestamp: t.UnixMilli()}
}

func TestGroupByDay(t *testing.T) {
	f := utcFormatter(t)
	mon9 := at(time.Date(2025, time.August, 25, 9, 0, 0, 0, time.UTC))
	mon17 := at(time.Date(2025, time.August, 25, 17, 0, 0, 0, time.UTC))
	sun12 := at(time.Date(2025, time.August, 24, 12, 0, 0, 0, time.UTC))

	// Input deliberately not in timestamp order.
	groups := GroupByDay([]core.Entry{mon9, sun12, mon17}, f)

	if len(groups) != 2 {
		t.Fatalf("groups: got %d, want 2", len(groups))
	}
	if groups[0].Key != "2025-08-25" || groups[1].Key != "2025-08-24" {
		t.Errorf("bucket order: got %q, %q", groups[0].Key, groups[1].Key)
	}
	if groups[0].Label != "Monday, 25 August 2025" {
		t.Errorf("label: got %q", groups[0].Label)
	}
	if len(groups[0].Entries) != 2 {
		t.Fatalf("monday entries: got %d, want 2", len(groups[0].Entries))
	}
	if groups[0].Entries[0] != mon17 || groups[0].Entries[1] != mon9 {
		t.Errorf("in-bucket order not newest first: %+v", groups[0].Entries)
	}
}

func TestGroupByDayOrdersByTimeNotLabel(t *testing.T) {
	f := utcFormatter(t)
	// Lexicographic label order (Friday < Monday < Saturday) disagrees
	// with chronological order here.
	fri := at(time.Date(2025, time.August, 22, 10, 0, 0, 0, time.UTC))
	sat := at(time.Date(2025, time.August, 23, 10, 0, 0, 0, time.UTC))
	mon := at(time.Date(2025, time.August, 25, 10, 0, 0, 0, time.UTC))

	groups := GroupByDay([]core.Entry{fri, mon, sat}, f)

	want := []string{"2025-08-25", "2025-08-23", "2025-08-22"}
	if len(groups) != len(want) {
		t.Fatalf("groups: got %d, want %d", len(groups), len(want))
	}
	for i, key := range want {
		if groups[i].Key != key {
			t.Errorf("bucket %d: got %q, want %q", i, groups[i].Key, key)
		}
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	if groups := GroupByDay(nil, utcFormatter(t)); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}

func TestGroupByDayUsesFormatterZone(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	f, err := datefmt.New("en-US", loc)
	if err != nil {
		t.Fatal(err)
	}
	// 23:30 UTC is already past midnight in UTC+2.
	late := at(time.Date(2025, time.August, 25, 23, 30, 0, 0, time.UTC))

	groups := GroupByDay([]core.Entry{late}, f)
	if len(groups) != 1 || groups[0].Key != "2025-08-26" {
		t.Errorf("got %+v, want single 2025-08-26 bucket", groups)
	}
}

func TestSelectDay(t *testing.T) {
	mon9 := at(time.Date(2025, time.August, 25, 9, 0, 0, 0, time.UTC))
	mon17 := at(time.Date(2025, time.August, 25, 17, 0, 0, 0, time.UTC))
	sun12 := at(time.Date(2025, time.August, 24, 12, 0, 0, 0, time.UTC))

	got := SelectDay([]core.Entry{mon9, sun12, mon17}, "2025-08-25", time.UTC)
	if len(got) != 2 {
		t.Fatalf("length: got %d, want 2", len(got))
	}
	if got[0] != mon17 || got[1] != mon9 {
		t.Errorf("order not newest first: %+v", got)
	}

	if got := SelectDay([]core.Entry{mon9}, "2025-08-24", time.UTC); len(got) != 0 {
		t.Errorf("unknown day: expected empty, got %+v", got)
	}
}
