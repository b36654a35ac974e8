package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/shiwake/internal/bank"
	"github.com/abhisek/shiwake/internal/progress"
)

var (
	ErrNothingToReview = errors.New("nothing to review: every item is answered correctly")
	ErrAlreadyAnswered = errors.New("current review item already answered")
	ErrFinished        = errors.New("review session finished")
	ErrInvalidChoice   = errors.New("choice index out of range")
)

// Item is one sampled review question.
type Item struct {
	Ref     bank.Ref
	Label   string
	Current int
	Total   int
	Item    bank.Item
}

// ProgressText renders "current/total".
func (it Item) ProgressText() string {
	return fmt.Sprintf("%d/%d", it.Current, it.Total)
}

// Result is the outcome of one review answer.
type Result struct {
	progress.Award
	Ref    bank.Ref
	Item   bank.Item
	Choice int
}

// Session walks a sampled queue. Answers go through the same ledger as
// normal play; there is no separate review score.
type Session struct {
	bank     *bank.Bank
	svc      *progress.Service
	queue    []bank.Ref
	cursor   int
	answered bool
	count    int
	correct  int
}

// New starts a session over pool. An empty pool cannot start.
func New(b *bank.Bank, svc *progress.Service, pool []bank.Ref) (*Session, error) {
	if len(pool) == 0 {
		return nil, ErrNothingToReview
	}
	return &Session{bank: b, svc: svc, queue: pool}, nil
}

// Current returns the item under the cursor.
func (s *Session) Current() (Item, bool) {
	if s.Done() {
		return Item{}, false
	}
	ref := s.queue[s.cursor]
	item, ok := s.bank.Item(ref)
	if !ok {
		return Item{}, false
	}
	st, _ := s.bank.Step(ref.Step)
	return Item{
		Ref:     ref,
		Label:   st.Label,
		Current: s.cursor + 1,
		Total:   len(s.queue),
		Item:    item,
	}, true
}

// Answer records choice for the current item.
func (s *Session) Answer(ctx context.Context, choice int) (Result, error) {
	cur, ok := s.Current()
	if !ok {
		return Result{}, ErrFinished
	}
	if s.answered {
		return Result{}, ErrAlreadyAnswered
	}
	if choice < 0 || choice >= len(cur.Item.Choices) {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidChoice, choice)
	}

	award := s.svc.RecordAnswer(ctx, cur.Ref, choice, cur.Item.IsCorrect(choice))
	s.answered = true
	s.count++
	if award.Correct {
		s.correct++
	}
	return Result{Award: award, Ref: cur.Ref, Item: cur.Item, Choice: choice}, nil
}

// Next moves the cursor forward. It returns false once the cursor has
// passed the last sampled item.
func (s *Session) Next() bool {
	if s.Done() {
		return false
	}
	s.cursor++
	s.answered = false
	return !s.Done()
}

// Done reports whether the session has ended.
func (s *Session) Done() bool {
	return s.cursor >= len(s.queue)
}

// Len returns the number of sampled items.
func (s *Session) Len() int {
	return len(s.queue)
}

// Answers returns how many items have been answered in this session.
func (s *Session) Answers() int {
	return s.count
}

// CorrectCount returns how many answers in this session were correct.
func (s *Session) CorrectCount() int {
	return s.correct
}

// Queue returns a copy of the sampled refs.
func (s *Session) Queue() []bank.Ref {
	return append([]bank.Ref(nil), s.queue...)
}
