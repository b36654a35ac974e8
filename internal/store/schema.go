package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
)

// Table names.
const (
	tableKV            = "kv"
	tableSequence      = "event_sequence"
	tableAnswerEvents  = "answer_events"
	tableSessionEvents = "session_events"
)

// ddl holds the CREATE statements for one dialect. Timestamps are stored as
// unix milliseconds so every driver scans them the same way.
var ddl = map[string][]string{
	dialect.SQLite: {
		`CREATE TABLE IF NOT EXISTS kv (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS event_sequence (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			next_val INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS answer_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seq INTEGER NOT NULL,
			session_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			step INTEGER NOT NULL,
			item INTEGER NOT NULL,
			choice INTEGER NOT NULL,
			correct BOOLEAN NOT NULL,
			awarded BOOLEAN NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS session_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seq INTEGER NOT NULL,
			session_id TEXT NOT NULL,
			action TEXT NOT NULL,
			mode TEXT NOT NULL,
			answered INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
	},
	dialect.Postgres: {
		`CREATE TABLE IF NOT EXISTS kv (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS event_sequence (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			next_val BIGINT NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS answer_events (
			id BIGSERIAL PRIMARY KEY,
			seq BIGINT NOT NULL,
			session_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			step INTEGER NOT NULL,
			item INTEGER NOT NULL,
			choice INTEGER NOT NULL,
			correct BOOLEAN NOT NULL,
			awarded BOOLEAN NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS session_events (
			id BIGSERIAL PRIMARY KEY,
			seq BIGINT NOT NULL,
			session_id TEXT NOT NULL,
			action TEXT NOT NULL,
			mode TEXT NOT NULL,
			answered INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL,
			created_at BIGINT NOT NULL
		)`,
	},
	dialect.MySQL: {
		"CREATE TABLE IF NOT EXISTS kv (" +
			"name VARCHAR(191) PRIMARY KEY, " +
			"value MEDIUMTEXT NOT NULL, " +
			"updated_at BIGINT NOT NULL)",
		"CREATE TABLE IF NOT EXISTS event_sequence (" +
			"id INT PRIMARY KEY, " +
			"next_val BIGINT NOT NULL DEFAULT 1)",
		"CREATE TABLE IF NOT EXISTS answer_events (" +
			"id BIGINT AUTO_INCREMENT PRIMARY KEY, " +
			"seq BIGINT NOT NULL, " +
			"session_id VARCHAR(64) NOT NULL, " +
			"mode VARCHAR(16) NOT NULL, " +
			"step INT NOT NULL, " +
			"item INT NOT NULL, " +
			"choice INT NOT NULL, " +
			"correct BOOLEAN NOT NULL, " +
			"awarded BOOLEAN NOT NULL, " +
			"created_at BIGINT NOT NULL)",
		"CREATE TABLE IF NOT EXISTS session_events (" +
			"id BIGINT AUTO_INCREMENT PRIMARY KEY, " +
			"seq BIGINT NOT NULL, " +
			"session_id VARCHAR(64) NOT NULL, " +
			"action VARCHAR(16) NOT NULL, " +
			"mode VARCHAR(16) NOT NULL, " +
			"answered INT NOT NULL, " +
			"correct INT NOT NULL, " +
			"duration_secs INT NOT NULL, " +
			"created_at BIGINT NOT NULL)",
	},
}

// migrate creates any missing tables for the given dialect.
func migrate(ctx context.Context, db *sql.DB, d string) error {
	stmts, ok := ddl[d]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", d)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
