package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// KVRepo is a string-keyed blob store. It satisfies progress.Repo.
type KVRepo struct {
	db      *sql.DB
	builder *entsql.DialectBuilder
}

// Get returns the value stored under key. The bool is false when the key is
// absent.
func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args := r.builder.Select("value").
		From(r.builder.Table(tableKV)).
		Where(entsql.EQ("name", key)).
		Query()

	var value string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set inserts or replaces the value under key.
func (r *KVRepo) Set(ctx context.Context, key string, value []byte) error {
	query, args := r.builder.Insert(tableKV).
		Columns("name", "value", "updated_at").
		Values(key, string(value), time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	query, args := r.builder.Delete(tableKV).
		Where(entsql.EQ("name", key)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Keys lists stored keys in name order.
func (r *KVRepo) Keys(ctx context.Context) ([]string, error) {
	query, args := r.builder.Select("name").
		From(r.builder.Table(tableKV)).
		OrderBy("name").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
