// Package view derives display projections from the entry collection.
// Everything here is a pure function of its inputs.
package view

import (
	"sort"
	"time"

	"github.com/veslyn/tally/pkg/core"
	"github.com/veslyn/tally/pkg/datefmt"
)

// DayGroup is one calendar day's entries, newest first.
type DayGroup struct {
	Key     string       `json:"key"`
	Day     time.Time    `json:"day"`
	Label   string       `json:"label"`
	Entries []core.Entry `json:"entries"`
}

// GroupByDay partitions entries into calendar-day buckets. Entries inside
// a bucket are ordered newest first; buckets are ordered by their newest
// entry, newest bucket first. Ordering never follows the label text.
func GroupByDay(entries []core.Entry, f *datefmt.Formatter) []DayGroup {
	loc := f.Location()
	byKey := make(map[string]*DayGroup)
	var groups []*DayGroup
	for _, e := range entries {
		key := core.DayKey(e.Timestamp, loc)
		g, ok := byKey[key]
		if !ok {
			day := core.DayStart(e.Timestamp, loc)
			g = &DayGroup{Key: key, Day: day, Label: f.DayLabel(day)}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.Entries = append(g.Entries, e)
	}
	for _, g := range groups {
		sort.SliceStable(g.Entries, func(i, j int) bool {
			return g.Entries[i].Timestamp > g.Entries[j].Timestamp
		})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Entries[0].Timestamp > groups[j].Entries[0].Timestamp
	})
	out := make([]DayGroup, len(groups))
	for i, g := range groups {
		out[i] = *g
	}
	return out
}

// SelectDay returns the entries recorded on one calendar day, newest
// first. Membership depends only on the normalized day, never on stored
// order.
func SelectDay(entries []core.Entry, key string, loc *time.Location) []core.Entry {
	var out []core.Entry
	for _, e := range entries {
		if core.DayKey(e.Timestamp, loc) == key {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}
