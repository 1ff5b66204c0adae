package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/veslyn/tally/pkg/core"
	"github.com/veslyn/tally/pkg/datefmt"
)

// Validate checks the configuration for structural correctness.
func Validate(c *Config) []error {
	var errs []error

	if c.Version != 1 {
		errs = append(errs, fmt.Errorf("version must be 1, got %d", c.Version))
	}

	switch c.Storage.Backend {
	case "file", "sqlite", "memory":
	case "":
		errs = append(errs, fmt.Errorf("storage.backend is required"))
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be file, sqlite, or memory; got %q", c.Storage.Backend))
	}

	if c.Storage.Key == "" {
		errs = append(errs, fmt.Errorf("storage.key is required"))
	} else if strings.ContainsAny(c.Storage.Key, "/\\") {
		errs = append(errs, fmt.Errorf("storage.key %q must not contain path separators", c.Storage.Key))
	}

	if _, err := core.ParsePeriod(c.Chart.Period); err != nil {
		errs = append(errs, fmt.Errorf("chart.period: %v", err))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn, or error; got %q", c.Log.Level))
	}

	if c.Locale != "" {
		if _, err := datefmt.New(c.Locale, time.UTC); err != nil {
			errs = append(errs, fmt.Errorf("locale %q: %v", c.Locale, err))
		}
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("timezone %q is not a valid IANA zone", c.Timezone))
		}
	}

	return errs
}
