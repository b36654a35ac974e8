package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter manages the monotonic sequence number shared by the answer
// and session event tables. Auto-increment IDs are per table, so the shared
// counter is what orders a session's start, its answers and its end.
//
// The mutex serializes within the process; the transaction makes the
// increment-and-read atomic at the database level on every dialect.
type sequenceCounter struct {
	mu      sync.Mutex
	db      *sql.DB
	builder *entsql.DialectBuilder
}

// newSequenceCounter creates a counter and seeds its single row.
func newSequenceCounter(ctx context.Context, db *sql.DB, d string) (*sequenceCounter, error) {
	b := entsql.Dialect(d)
	query, args := b.Insert(tableSequence).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.DoNothing(),
		).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db, builder: b}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	tx, err := sc.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer tx.Rollback()

	update, uargs := sc.builder.Update(tableSequence).
		Add("next_val", 1).
		Where(entsql.EQ("id", 1)).
		Query()
	if _, err := tx.ExecContext(ctx, update, uargs...); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	sel, sargs := sc.builder.Select("next_val").
		From(sc.builder.Table(tableSequence)).
		Where(entsql.EQ("id", 1)).
		Query()
	var next int64
	if err := tx.QueryRowContext(ctx, sel, sargs...).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return next - 1, nil
}
