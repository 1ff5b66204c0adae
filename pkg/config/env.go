package config

import (
	"os"
	"regexp"
)

var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnv replaces ${VAR} references with environment values. Unset
// variables expand to the empty string.
func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envRef.FindStringSubmatch(match)[1])
	})
}

// FromEnv overlays TALLY_* environment variables on the configuration.
// Environment wins over the file; flags win over both.
func FromEnv(c *Config) {
	if v := os.Getenv("TALLY_LOCALE"); v != "" {
		c.Locale = v
	}
	if v := os.Getenv("TALLY_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("TALLY_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("TALLY_DATA_DIR"); v != "" {
		c.Storage.Dir = v
	}
	if v := os.Getenv("TALLY_STORAGE_KEY"); v != "" {
		c.Storage.Key = v
	}
	if v := os.Getenv("TALLY_CHART_PERIOD"); v != "" {
		c.Chart.Period = v
	}
	if v := os.Getenv("TALLY_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
