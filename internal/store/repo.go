package store

import (
	"context"
	"time"
)

// Answer modes recorded on answer and session events.
const (
	ModePlay   = "play"
	ModeReview = "review"
)

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Mode   string    // exact mode match when set
}

// AnswerEventData captures a single submitted answer.
type AnswerEventData struct {
	SessionID string
	Mode      string
	Step      int
	Item      int
	Choice    int
	Correct   bool
	Awarded   bool
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	AnswerEventData
	Sequence  int64
	Timestamp time.Time
}

// SessionEventData captures the start or end of a play or review session.
type SessionEventData struct {
	SessionID    string
	Action       string
	Mode         string
	Answered     int
	Correct      int
	DurationSecs int
}

// AnswerStats aggregates the event log.
type AnswerStats struct {
	Attempts int
	Correct  int
	Awarded  int
	Sessions int
}

// Accuracy returns the fraction of correct attempts, or 0 with no attempts.
func (s AnswerStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// EventRepo provides append and query access to the answer audit log.
type EventRepo interface {
	// AppendAnswerEvent records one submitted answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// RecentAnswers returns answer events newest first.
	RecentAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)

	// AnswerStats aggregates attempts, correct attempts, awards and sessions.
	AnswerStats(ctx context.Context) (AnswerStats, error)
}
