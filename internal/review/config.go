package review

import (
	"os"
	"strconv"
)

// DefaultMax caps how many items one review session samples.
const DefaultMax = 10

// Config holds review session settings.
type Config struct {
	Max int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{Max: DefaultMax}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or invalid values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("SHIWAKE_REVIEW_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Max = n
		}
	}
	return cfg
}
