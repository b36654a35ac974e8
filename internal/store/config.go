package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
)

// Supported database drivers. The names double as database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config selects the database backing the progress store and event log.
type Config struct {
	Driver string
	DSN    string
}

// DefaultConfig returns a sqlite config with an empty DSN; callers resolve
// the path with DefaultDBPath when DSN is empty.
func DefaultConfig() Config {
	return Config{Driver: DriverSQLite}
}

// ConfigFromEnv reads SHIWAKE_DB_DRIVER and SHIWAKE_DB on top of the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("SHIWAKE_DB_DRIVER"); v != "" {
		cfg.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("SHIWAKE_DB"); v != "" {
		cfg.DSN = v
	}
	return cfg
}

// dialectName maps a driver to its ent dialect.
func dialectName(driver string) (string, error) {
	switch driver {
	case DriverSQLite, "":
		return dialect.SQLite, nil
	case DriverPostgres:
		return dialect.Postgres, nil
	case DriverMySQL:
		return dialect.MySQL, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// DefaultDBPath resolves the sqlite database file path in priority order:
// 1. SHIWAKE_DB environment variable
// 2. $XDG_DATA_HOME/shiwake/shiwake.db
// 3. ~/.local/share/shiwake/shiwake.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("SHIWAKE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "shiwake", "shiwake.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
