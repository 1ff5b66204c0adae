package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParseValidConfig(t *testing.T) {
	yaml := `
version: 1
locale: es-ES
timezone: Europe/Madrid
storage:
  backend: sqlite
  dir: /var/lib/tally
  key: entries
chart:
  period: month
log:
  level: debug
  journal: true
`
	c, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if c.Version != 1 {
		t.Errorf("version: got %d, want 1", c.Version)
	}
	if c.Locale != "es-ES" {
		t.Errorf("locale: got %q", c.Locale)
	}
	if c.Storage.Backend != "sqlite" || c.Storage.Dir != "/var/lib/tally" {
		t.Errorf("storage: got %+v", c.Storage)
	}
	if c.Chart.Period != "month" {
		t.Errorf("period: got %q", c.Chart.Period)
	}
	if !c.Log.Journal || c.Log.Level != "debug" {
		t.Errorf("log: got %+v", c.Log)
	}
	if errs := Validate(c); len(errs) != 0 {
		t.Errorf("unexpected validation errors: %v", errs)
	}
}

func TestParseKeepsDefaultsForMissingFields(t *testing.T) {
	c, err := Parse([]byte("version: 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Storage.Backend != "file" {
		t.Errorf("backend default: got %q, want file", c.Storage.Backend)
	}
	if c.Storage.Key != "entries" {
		t.Errorf("key default: got %q, want entries", c.Storage.Key)
	}
	if c.Chart.Period != "week" {
		t.Errorf("period default: got %q, want week", c.Chart.Period)
	}
	if c.Log.Level != "info" {
		t.Errorf("level default: got %q, want info", c.Log.Level)
	}
}

func TestParseExpandsEnv(t *testing.T) {
	t.Setenv("TEST_TALLY_DIR", "/srv/tally-data")
	yaml := `
version: 1
storage:
  dir: "${TEST_TALLY_DIR}"
`
	c, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatal(err)
	}
	if c.Storage.Dir != "/srv/tally-data" {
		t.Errorf("dir interpolation: got %q", c.Storage.Dir)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("version: [not an int")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Storage.Backend != "file" || c.Version != 1 {
		t.Errorf("got %+v, want defaults", c)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tally.yaml")
	c := Default()
	c.Locale = "fr-FR"
	c.Storage.Backend = "memory"

	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Locale != "fr-FR" || got.Storage.Backend != "memory" {
		t.Errorf("round-trip: got %+v", got)
	}
}

func TestValidateVersionMustBe1(t *testing.T) {
	c := Default()
	c.Version = 2
	assertHasError(t, Validate(c), "version must be 1")
}

func TestValidateBackend(t *testing.T) {
	c := Default()
	c.Storage.Backend = "floppy"
	assertHasError(t, Validate(c), "storage.backend must be")

	c.Storage.Backend = ""
	assertHasError(t, Validate(c), "storage.backend is required")
}

func TestValidateKey(t *testing.T) {
	c := Default()
	c.Storage.Key = ""
	assertHasError(t, Validate(c), "storage.key is required")

	c.Storage.Key = "a/b"
	assertHasError(t, Validate(c), "path separators")
}

func TestValidatePeriod(t *testing.T) {
	c := Default()
	c.Chart.Period = "fortnight"
	assertHasError(t, Validate(c), "chart.period")
}

func TestValidateLevel(t *testing.T) {
	c := Default()
	c.Log.Level = "loud"
	assertHasError(t, Validate(c), "log.level must be")
}

func TestValidateLocale(t *testing.T) {
	c := Default()
	c.Locale = "not a locale!"
	assertHasError(t, Validate(c), "locale")
}

func TestValidateTimezone(t *testing.T) {
	c := Default()
	c.Timezone = "Mars/Olympus_Mons"
	assertHasError(t, Validate(c), "timezone")

	c.Timezone = "Europe/Madrid"
	if errs := Validate(c); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestFromEnvOverlays(t *testing.T) {
	t.Setenv("TALLY_LOCALE", "de-DE")
	t.Setenv("TALLY_STORAGE_BACKEND", "memory")
	t.Setenv("TALLY_CHART_PERIOD", "all")

	c := Default()
	FromEnv(c)
	if c.Locale != "de-DE" {
		t.Errorf("locale: got %q", c.Locale)
	}
	if c.Storage.Backend != "memory" {
		t.Errorf("backend: got %q", c.Storage.Backend)
	}
	if c.Chart.Period != "all" {
		t.Errorf("period: got %q", c.Chart.Period)
	}
	// Unset variables leave the file values alone.
	if c.Storage.Key != "entries" {
		t.Errorf("key: got %q, want entries", c.Storage.Key)
	}
}

func TestDataDirPrefersConfigured(t *testing.T) {
	c := Default()
	c.Storage.Dir = "/opt/tally"
	if got := c.DataDir(); got != "/opt/tally" {
		t.Errorf("got %q, want /opt/tally", got)
	}
}

func TestDefaultDataDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	if got := DefaultDataDir(); got != filepath.Join("/xdg/data", "tally") {
		t.Errorf("got %q", got)
	}
}

func assertHasError(t *testing.T, errs []error, substr string) {
	t.Helper()
	for _, e := range errs {
		if strings.Contains(e.Error(), substr) {
			return
		}
	}
	t.Errorf("expected error containing %q, got: %v", substr, errs)
}
