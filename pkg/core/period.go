package core

import (
	"fmt"
	"time"
)

// Period selects how far back a chart or report looks.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// ParsePeriod validates a period name. Single-letter shorthands are accepted.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "week", "w":
		return PeriodWeek, nil
	case "month", "m":
		return PeriodMonth, nil
	case "all", "a":
		return PeriodAll, nil
	}
	return "", fmt.Errorf("invalid period %q: expected week, month, or all", s)
}

// Window returns the rolling look-back window measured from now.
// ok is false when the period does not bound time (PeriodAll).
func (p Period) Window() (d time.Duration, ok bool) {
	switch p {
	case PeriodWeek:
		return 7 * 24 * time.Hour, true
	case PeriodMonth:
		return 30 * 24 * time.Hour, true
	default:
		return 0, false
	}
}
