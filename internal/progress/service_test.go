package progress

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/abhisek/shiwake/internal/bank"
)

// memRepo implements Repo in memory.
type memRepo struct {
	data    map[string][]byte
	sets    int
	getErr  error
	setErr  error
	deleted []string
}

func newMemRepo() *memRepo {
	return &memRepo{data: make(map[string][]byte)}
}

func (m *memRepo) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memRepo) Set(_ context.Context, key string, value []byte) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memRepo) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.data, key)
	return nil
}

func TestService_PersistsAfterEveryAnswer(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(ctx, repo, StateKey, 10)

	svc.RecordAnswer(ctx, bank.Ref{Step: 1, Index: 0}, 0, false)
	svc.RecordAnswer(ctx, bank.Ref{Step: 1, Index: 0}, 1, true)
	if repo.sets != 2 {
		t.Errorf("sets = %d, want 2", repo.sets)
	}

	reloaded := NewService(ctx, repo, StateKey, 10)
	if reloaded.XP() != 1 {
		t.Errorf("reloaded xp = %d, want 1", reloaded.XP())
	}
	if !reloaded.IsCorrect(bank.Ref{Step: 1, Index: 0}) {
		t.Error("expected reloaded record to be correct")
	}
}

func TestService_ReadFailureStartsFresh(t *testing.T) {
	repo := newMemRepo()
	repo.getErr = errors.New("disk on fire")

	svc := NewService(context.Background(), repo, StateKey, 10)
	if svc.State().CurrentStep != 1 || svc.XP() != 0 {
		t.Errorf("expected fresh state, got %+v", svc.State())
	}
}

func TestService_MalformedStateStartsFresh(t *testing.T) {
	repo := newMemRepo()
	repo.data[StateKey] = []byte("{{{")

	svc := NewService(context.Background(), repo, StateKey, 10)
	if len(svc.State().History) != 0 {
		t.Errorf("history = %+v, want empty", svc.State().History)
	}
}

func TestService_WriteFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.setErr = errors.New("read-only")
	svc := NewService(ctx, repo, StateKey, 10)

	award := svc.RecordAnswer(ctx, bank.Ref{Step: 1, Index: 0}, 0, true)
	if !award.Awarded {
		t.Error("expected award despite write failure")
	}
	if svc.XP() != 1 {
		t.Errorf("xp = %d, want 1", svc.XP())
	}
}

func TestService_ClampsStoredXP(t *testing.T) {
	repo := newMemRepo()
	repo.data[StateKey] = []byte(`{"currentStep": 1, "idxInStep": 0, "xp": 99, "history": []}`)

	svc := NewService(context.Background(), repo, StateKey, 20)
	if svc.XP() != 20 {
		t.Errorf("xp = %d, want 20", svc.XP())
	}
}

func TestService_Reset(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(ctx, repo, StateKey, 10)
	svc.RecordAnswer(ctx, bank.Ref{Step: 1, Index: 0}, 0, true)

	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !reflect.DeepEqual(repo.deleted, []string{StateKey}) {
		t.Errorf("deleted = %v", repo.deleted)
	}
	if svc.XP() != 0 || len(svc.State().History) != 0 {
		t.Errorf("expected fresh state after reset, got %+v", svc.State())
	}
}
