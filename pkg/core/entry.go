package core

import "time"

// Entry represents a single recorded event. Both fields are unix
// milliseconds; ID equals Timestamp at creation unless it was bumped to
// keep ids unique across rapid appends.
type Entry struct {
	ID        int64 `json:"id"`
	Timestamp int64 `json:"timestamp"`
}

// Time returns the entry timestamp in the given location.
func (e Entry) Time(loc *time.Location) time.Time {
	return time.UnixMilli(e.Timestamp).In(loc)
}

// Day returns the calendar-day key of the entry in the given location.
func (e Entry) Day(loc *time.Location) string {
	return DayKey(e.Timestamp, loc)
}

// DayStart normalizes a unix-millisecond timestamp to midnight of its
// calendar day in the given location.
func DayStart(tsMillis int64, loc *time.Location) time.Time {
	t := time.UnixMilli(tsMillis).In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayKey returns the sortable calendar-day key for a timestamp.
// Format: 2006-01-02
func DayKey(tsMillis int64, loc *time.Location) string {
	return DayStart(tsMillis, loc).Format(dayKeyLayout)
}

const dayKeyLayout = "2006-01-02"

// ParseDayKey parses a calendar-day key back into midnight of that day.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, key, loc)
}
