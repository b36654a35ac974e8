package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with the ent SQL builder and the shared
// sequence counter.
type eventRepo struct {
	db      *sql.DB
	builder *entsql.DialectBuilder
	seq     *sequenceCounter
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.builder.Insert(tableAnswerEvents).
		Columns("seq", "session_id", "mode", "step", "item", "choice", "correct", "awarded", "created_at").
		Values(seqNum, data.SessionID, data.Mode, data.Step, data.Item, data.Choice, data.Correct, data.Awarded, time.Now().UnixMilli()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	sel := r.builder.Select("seq", "session_id", "mode", "step", "item", "choice", "correct", "awarded", "created_at").
		From(r.builder.Table(tableAnswerEvents))
	sel = sel.OrderBy(entsql.Desc(sel.C("seq")))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("seq", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("seq", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	if opts.Mode != "" {
		preds = append(preds, entsql.EQ("mode", opts.Mode))
	}
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var records []AnswerEventRecord
	for rows.Next() {
		var (
			rec       AnswerEventRecord
			createdAt int64
		)
		if err := rows.Scan(
			&rec.Sequence, &rec.SessionID, &rec.Mode,
			&rec.Step, &rec.Item, &rec.Choice,
			&rec.Correct, &rec.Awarded, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) AnswerStats(ctx context.Context) (AnswerStats, error) {
	var stats AnswerStats

	counts := []struct {
		table string
		pred  *entsql.Predicate
		dst   *int
	}{
		{tableAnswerEvents, nil, &stats.Attempts},
		{tableAnswerEvents, entsql.EQ("correct", true), &stats.Correct},
		{tableAnswerEvents, entsql.EQ("awarded", true), &stats.Awarded},
		{tableSessionEvents, entsql.EQ("action", ActionStart), &stats.Sessions},
	}
	for _, c := range counts {
		sel := r.builder.Select(entsql.Count("*")).From(r.builder.Table(c.table))
		if c.pred != nil {
			sel = sel.Where(c.pred)
		}
		query, args := sel.Query()
		if err := r.db.QueryRowContext(ctx, query, args...).Scan(c.dst); err != nil {
			return AnswerStats{}, fmt.Errorf("count %s: %w", c.table, err)
		}
	}
	return stats, nil
}
