package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.builder.Insert(tableSessionEvents).
		Columns("seq", "session_id", "action", "mode", "answered", "correct", "duration_secs", "created_at").
		Values(seqNum, data.SessionID, data.Action, data.Mode, data.Answered, data.Correct, data.DurationSecs, time.Now().UnixMilli()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}
