package core

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input     string
		want      Period
		wantError bool
	}{
		{"week", PeriodWeek, false},
		{"w", PeriodWeek, false},
		{"month", PeriodMonth, false},
		{"m", PeriodMonth, false},
		{"all", PeriodAll, false},
		{"a", PeriodAll, false},
		{"year", "", true},
		{"", "", true},
		{"WEEK", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error for %q: %v", tt.input, err)
				return
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPeriodWindow(t *testing.T) {
	if d, ok := PeriodWeek.Window(); !ok || d != 7*24*time.Hour {
		t.Errorf("week window: got %v %v, want 168h true", d, ok)
	}
	if d, ok := PeriodMonth.Window(); !ok || d != 30*24*time.Hour {
		t.Errorf("month window: got %v %v, want 720h true", d, ok)
	}
	if _, ok := PeriodAll.Window(); ok {
		t.Error("all window: expected unbounded")
	}
}
