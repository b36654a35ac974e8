package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/shiwake/internal/bank"
	"github.com/abhisek/shiwake/internal/progress"
)

var (
	ErrAlreadyAnswered = errors.New("current item already answered")
	ErrNoQuestion      = errors.New("no item is being presented")
	ErrInvalidChoice   = errors.New("choice index out of range")
)

// RetrySession is an in-step replay over the items still lacking a correct
// record. It is never persisted.
type RetrySession struct {
	Active  bool
	Step    int
	Pending []int
	Cursor  int
}

// TransitionKind says what Advance did.
type TransitionKind int

const (
	TransitionHold    TransitionKind = iota // hold flag consumed, nothing moved
	TransitionItem                          // next item of the normal pass
	TransitionRetry                         // retry round opened or continued
	TransitionStep                          // step cleared, next step started
	TransitionSummary                       // bank exhausted
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionHold:
		return "hold"
	case TransitionItem:
		return "item"
	case TransitionRetry:
		return "retry"
	case TransitionStep:
		return "step"
	case TransitionSummary:
		return "summary"
	default:
		return fmt.Sprintf("TransitionKind(%d)", int(k))
	}
}

// Transition is the result of one Advance call.
type Transition struct {
	Kind  TransitionKind
	Step  int
	Index int
}

// Feedback is returned for a recorded answer.
type Feedback struct {
	progress.Award
	Ref    bank.Ref
	Item   bank.Item
	Choice int
	Retry  bool
}

// Engine decides which item to present and moves through steps.
type Engine struct {
	bank  *bank.Bank
	svc   *progress.Service
	retry RetrySession

	// hold keeps a saturated progress display for one Advance after the
	// last item of a normal pass is answered.
	hold     bool
	answered bool
	done     bool
}

// New creates an Engine positioned where the stored state left off,
// clamped into the bank.
func New(b *bank.Bank, svc *progress.Service) *Engine {
	e := &Engine{bank: b, svc: svc}

	st := svc.State()
	step := e.clampStep(st.CurrentStep)
	idx := st.IdxInStep
	if s, ok := b.Step(step); ok {
		idx = min(max(idx, 0), s.LastIndex())
	}
	if step != st.CurrentStep || idx != st.IdxInStep {
		svc.SetPosition(context.Background(), step, idx)
	}
	return e
}

func (e *Engine) clampStep(n int) int {
	return min(max(n, 1), max(e.bank.Len(), 1))
}

// ResolveNextUnanswered returns the lowest index in step without a correct
// record, or the last index when every item is correct.
func (e *Engine) ResolveNextUnanswered(step int) int {
	st, ok := e.bank.Step(e.clampStep(step))
	if !ok {
		return 0
	}
	for i := range st.Items {
		if !e.svc.IsCorrect(bank.Ref{Step: st.Number, Index: i}) {
			return i
		}
	}
	return st.LastIndex()
}

// StartStep enters step n at its first unresolved item. Out-of-range step
// numbers are clamped. Answer records are left untouched.
func (e *Engine) StartStep(ctx context.Context, n int) {
	n = e.clampStep(n)
	e.retry = RetrySession{}
	e.hold = false
	e.answered = false
	e.done = false
	e.svc.SetPosition(ctx, n, e.ResolveNextUnanswered(n))
}

// Answer records choice for the presented item. A second answer for the
// same presentation is rejected before any state changes.
func (e *Engine) Answer(ctx context.Context, choice int) (Feedback, error) {
	if e.done {
		return Feedback{}, ErrNoQuestion
	}
	if e.answered {
		return Feedback{}, ErrAlreadyAnswered
	}

	ref, ok := e.activeRef()
	if !ok {
		return Feedback{}, ErrNoQuestion
	}
	item, _ := e.bank.Item(ref)
	if choice < 0 || choice >= len(item.Choices) {
		return Feedback{}, fmt.Errorf("%w: %d", ErrInvalidChoice, choice)
	}

	retrying := e.retryActive()
	award := e.svc.RecordAnswer(ctx, ref, choice, item.IsCorrect(choice))
	e.answered = true

	if !retrying {
		if st, ok := e.bank.Step(ref.Step); ok && ref.Index == st.LastIndex() {
			e.hold = true
		}
	}

	return Feedback{
		Award:  award,
		Ref:    ref,
		Item:   item,
		Choice: choice,
		Retry:  retrying,
	}, nil
}

// Advance handles a "next" action.
func (e *Engine) Advance(ctx context.Context) Transition {
	if e.done {
		return Transition{Kind: TransitionSummary}
	}

	state := e.svc.State()
	if e.hold {
		e.hold = false
		return Transition{Kind: TransitionHold, Step: state.CurrentStep, Index: state.IdxInStep}
	}
	e.answered = false

	st, ok := e.bank.Step(state.CurrentStep)
	if !ok {
		e.done = true
		return Transition{Kind: TransitionSummary}
	}

	if e.retryActive() {
		e.retry.Cursor++
		if e.retry.Cursor < len(e.retry.Pending) {
			return Transition{Kind: TransitionRetry, Step: st.Number, Index: e.retry.Pending[e.retry.Cursor]}
		}
		e.retry = RetrySession{}
	}

	if state.IdxInStep < st.LastIndex() {
		e.svc.SetPosition(ctx, st.Number, state.IdxInStep+1)
		return Transition{Kind: TransitionItem, Step: st.Number, Index: state.IdxInStep}
	}

	if pending := e.Pending(st.Number); len(pending) > 0 {
		e.retry = RetrySession{Active: true, Step: st.Number, Pending: pending}
		return Transition{Kind: TransitionRetry, Step: st.Number, Index: pending[0]}
	}

	if st.Number < e.bank.Len() {
		e.StartStep(ctx, st.Number+1)
		next := e.svc.State()
		return Transition{Kind: TransitionStep, Step: next.CurrentStep, Index: next.IdxInStep}
	}

	e.done = true
	return Transition{Kind: TransitionSummary}
}

// Pending lists, in order, the item indices of step without a correct record.
func (e *Engine) Pending(step int) []int {
	st, ok := e.bank.Step(step)
	if !ok {
		return nil
	}
	var pending []int
	for i := range st.Items {
		if !e.svc.IsCorrect(bank.Ref{Step: st.Number, Index: i}) {
			pending = append(pending, i)
		}
	}
	return pending
}

// Retry returns a copy of the retry session.
func (e *Engine) Retry() RetrySession {
	r := e.retry
	r.Pending = append([]int(nil), e.retry.Pending...)
	return r
}

// Done reports whether the bank has been exhausted.
func (e *Engine) Done() bool {
	return e.done
}

// Answered reports whether the presented item already has an answer.
func (e *Engine) Answered() bool {
	return e.answered
}

// Holding reports whether the next Advance only clears the hold flag.
func (e *Engine) Holding() bool {
	return e.hold
}

func (e *Engine) retryActive() bool {
	return e.retry.Active && e.retry.Step == e.svc.State().CurrentStep && e.retry.Cursor < len(e.retry.Pending)
}

// activeRef is the retry item when a retry round targets the current step,
// else the normal position.
func (e *Engine) activeRef() (bank.Ref, bool) {
	state := e.svc.State()
	ref := bank.Ref{Step: state.CurrentStep, Index: state.IdxInStep}
	if e.retryActive() {
		ref.Index = e.retry.Pending[e.retry.Cursor]
	}
	_, ok := e.bank.Item(ref)
	return ref, ok
}
