package datefmt

import (
	"strings"
	"testing"
	"time"
)

// 2025-08-25 14:32:10 UTC, a Monday.
var mondayAfternoon = time.Date(2025, time.August, 25, 14, 32, 10, 0, time.UTC).UnixMilli()

func TestFullDateLocalized(t *testing.T) {
	tests := []struct {
		locale string
		wants  []string
	}{
		{"en-US", []string{"Monday", "August", "25", "2025"}},
		{"es-ES", []string{"lunes", "agosto"}},
		{"fr-FR", []string{"lundi", "août"}},
		{"de-DE", []string{"Montag", "August"}},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			f, err := New(tt.locale, time.UTC)
			if err != nil {
				t.Fatal(err)
			}
			got := f.FullDate(mondayAfternoon)
			for _, want := range tt.wants {
				if !strings.Contains(got, want) {
					t.Errorf("FullDate %q missing %q", got, want)
				}
			}
		})
	}
}

func TestTime(t *testing.T) {
	f, err := New("en-US", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Time(mondayAfternoon); got != "14:32:10" {
		t.Errorf("got %q, want %q", got, "14:32:10")
	}
}

func TestTimeRespectsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	f, err := New("en-US", loc)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Time(mondayAfternoon); got != "16:32:10" {
		t.Errorf("got %q, want %q", got, "16:32:10")
	}
}

func TestUnsupportedLocaleFallsBack(t *testing.T) {
	f, err := New("th-TH", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if f.Locale() != "en-US" {
		t.Errorf("fallback locale: got %q, want en-US", f.Locale())
	}
}

func TestRegionlessTagMatches(t *testing.T) {
	f, err := New("es", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(f.FullDate(mondayAfternoon), "agosto") {
		t.Errorf("es did not match a Spanish table: %q", f.FullDate(mondayAfternoon))
	}
}

func TestMalformedLocale(t *testing.T) {
	if _, err := New("not a locale!", time.UTC); err == nil {
		t.Error("expected error for malformed tag")
	}
}

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"lang only", map[string]string{"LANG": "es_ES.UTF-8"}, "es-ES"},
		{"lc_time wins over lang", map[string]string{"LC_TIME": "fr_FR.UTF-8", "LANG": "es_ES.UTF-8"}, "fr-FR"},
		{"lc_all wins", map[string]string{"LC_ALL": "de_DE", "LC_TIME": "fr_FR"}, "de-DE"},
		{"posix skipped", map[string]string{"LC_ALL": "C.UTF-8", "LANG": "it_IT"}, "it-IT"},
		{"empty environment", map[string]string{}, "en-US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
				t.Setenv(key, tt.env[key])
			}
			if got := DetectLocale(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortDay(t *testing.T) {
	f, err := New("en-US", time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	day := time.Date(2025, time.August, 25, 0, 0, 0, 0, time.UTC)
	if got := f.ShortDay(day); got != "25 Aug" {
		t.Errorf("got %q, want %q", got, "25 Aug")
	}
}
