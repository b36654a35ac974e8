package progress

import (
	"context"
	"fmt"

	"github.com/golang/glog"

	"github.com/abhisek/shiwake/internal/bank"
)

// Repo is the key-value persistence the state is loaded from and saved to.
type Repo interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Service owns the process-wide State and its load/save boundary.
// It is single-writer: every call happens on the UI goroutine.
type Service struct {
	repo  Repo
	key   string
	maxXP int
	state *State
}

// NewService loads the state stored under key. A read failure or malformed
// data is treated as no prior state.
func NewService(ctx context.Context, repo Repo, key string, maxXP int) *Service {
	s := &Service{repo: repo, key: key, maxXP: maxXP}
	s.state = s.load(ctx)
	s.state.clampXP(maxXP)
	return s
}

func (s *Service) load(ctx context.Context) *State {
	if s.repo == nil {
		return NewState()
	}
	data, found, err := s.repo.Get(ctx, s.key)
	if err != nil {
		glog.Warningf("read progress %q: %v; starting fresh", s.key, err)
		return NewState()
	}
	if !found {
		return NewState()
	}
	st, ok := Decode(data)
	if !ok {
		glog.Warningf("progress %q is malformed; starting fresh", s.key)
	}
	return st
}

// State returns the live state. Callers must not mutate it directly.
func (s *Service) State() *State {
	return s.state
}

// MaxXP returns the XP cap, equal to the bank's total item count.
func (s *Service) MaxXP() int {
	return s.maxXP
}

// Key returns the storage key.
func (s *Service) Key() string {
	return s.key
}

// RecordAnswer applies one answer to the ledger and persists the result.
func (s *Service) RecordAnswer(ctx context.Context, ref bank.Ref, choice int, correct bool) Award {
	award := s.state.RecordAnswer(ref, choice, correct, s.maxXP)
	s.save(ctx)
	return award
}

// SetPosition moves the current step/index pointers and persists them.
func (s *Service) SetPosition(ctx context.Context, step, idx int) {
	s.state.CurrentStep = step
	s.state.IdxInStep = idx
	s.save(ctx)
}

// IsCorrect reports whether ref has a correct record.
func (s *Service) IsCorrect(ref bank.Ref) bool {
	return s.state.IsCorrect(ref)
}

// StepCorrect counts correct items in step.
func (s *Service) StepCorrect(step int) int {
	return s.state.StepCorrect(step)
}

// TotalCorrect counts correct items across all steps.
func (s *Service) TotalCorrect() int {
	return s.state.TotalCorrect()
}

// StepComplete reports whether every item of st is correct.
func (s *Service) StepComplete(st *bank.Step) bool {
	return s.state.StepComplete(st.Number, st.Len())
}

// XP returns the current experience points.
func (s *Service) XP() int {
	return s.state.XP
}

// Reset deletes the stored state and starts over from defaults.
func (s *Service) Reset(ctx context.Context) error {
	if s.repo != nil {
		if err := s.repo.Delete(ctx, s.key); err != nil {
			return fmt.Errorf("delete progress %q: %w", s.key, err)
		}
	}
	s.state = NewState()
	return nil
}

// save is fire-and-forget: a failed write is logged, never surfaced.
func (s *Service) save(ctx context.Context) {
	if s.repo == nil {
		return
	}
	data, err := s.state.Encode()
	if err != nil {
		glog.Warningf("encode progress: %v", err)
		return
	}
	if err := s.repo.Set(ctx, s.key, data); err != nil {
		glog.Warningf("save progress %q: %v", s.key, err)
	}
}
