package bank

import (
	"os"
	"time"
)

// Config controls where the question bank is read from.
type Config struct {
	// Source is a file path, an http(s) URL, or "builtin:<name>".
	Source string

	// Timeout bounds URL fetches. Zero means no timeout. Ignored for files
	// and built-in banks.
	Timeout time.Duration
}

// DefaultConfig returns a Config pointing at the built-in step bank.
func DefaultConfig() Config {
	return Config{
		Source: BuiltinPrefix + "steps",
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if s := os.Getenv("SHIWAKE_BANK"); s != "" {
		cfg.Source = s
	}
	if t := os.Getenv("SHIWAKE_BANK_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}
