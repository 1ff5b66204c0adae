package view

import (
	"sort"
	"time"

	"github.com/veslyn/tally/pkg/core"
	"github.com/veslyn/tally/pkg/datefmt"
)

// Bin is one chart bar: a calendar day and its entry count.
type Bin struct {
	Key   string    `json:"key"`
	Day   time.Time `json:"day"`
	Label string    `json:"label"`
	Count int       `json:"count"`
}

// Axis is the Y-axis scale for a set of bins. Ticks run top down and
// never include the zero baseline, except for the empty chart's single
// zero tick.
type Axis struct {
	Top   int   `json:"top"`
	Ticks []int `json:"ticks"`
}

// Chart bundles the bins and axis scale for one period.
type Chart struct {
	Period core.Period `json:"period"`
	Bins   []Bin       `json:"bins"`
	Axis   Axis        `json:"axis"`
}

// FilterPeriod keeps the entries inside the period's rolling window,
// measured back from now. The lower bound is inclusive; PeriodAll keeps
// everything.
func FilterPeriod(entries []core.Entry, p core.Period, now time.Time) []core.Entry {
	window, ok := p.Window()
	if !ok {
		out := make([]core.Entry, len(entries))
		copy(out, entries)
		return out
	}
	cutoff := now.Add(-window).UnixMilli()
	var out []core.Entry
	for _, e := range entries {
		if e.Timestamp >= cutoff {
			out = append(out, e)
		}
	}
	return out
}

// BuildChart counts the period's surviving entries per calendar day.
// Bins cover only days that have entries, oldest day first.
func BuildChart(entries []core.Entry, p core.Period, now time.Time, f *datefmt.Formatter) Chart {
	loc := f.Location()
	byKey := make(map[string]*Bin)
	var bins []*Bin
	maxCount := 0
	for _, e := range FilterPeriod(entries, p, now) {
		key := core.DayKey(e.Timestamp, loc)
		b, ok := byKey[key]
		if !ok {
			day := core.DayStart(e.Timestamp, loc)
			b = &Bin{Key: key, Day: day, Label: f.ShortDay(day)}
			byKey[key] = b
			bins = append(bins, b)
		}
		b.Count++
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	sort.Slice(bins, func(i, j int) bool { return bins[i].Day.Before(bins[j].Day) })
	out := make([]Bin, len(bins))
	for i, b := range bins {
		out[i] = *b
	}
	return Chart{Period: p, Bins: out, Axis: ScaleAxis(maxCount)}
}

// ScaleAxis picks the Y-axis top and tick values for a maximum bar value.
// The top is the maximum itself up to 5, else the next multiple of 5, so
// every tick lands on a whole number.
func ScaleAxis(maxValue int) Axis {
	if maxValue <= 0 {
		return Axis{Top: 0, Ticks: []int{0}}
	}
	top := maxValue
	if top > 5 {
		top = ((maxValue + 4) / 5) * 5
	}
	n := top
	if n > 5 {
		n = 5
	}
	step := top / n
	ticks := make([]int, n)
	for i := 0; i < n; i++ {
		ticks[i] = top - i*step
	}
	return Axis{Top: top, Ticks: ticks}
}
