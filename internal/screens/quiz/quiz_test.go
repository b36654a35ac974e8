package quiz

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/shiwake/internal/bank"
	"github.com/abhisek/shiwake/internal/progress"
	"github.com/abhisek/shiwake/internal/router"
	"github.com/abhisek/shiwake/internal/screen"
	"github.com/abhisek/shiwake/internal/screens/summary"
	"github.com/abhisek/shiwake/internal/store"
	"github.com/abhisek/shiwake/internal/ui/components"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sessionEvents []store.SessionEventData
	answerEvents  []store.AnswerEventData
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessionEvents = append(m.sessionEvents, data)
	return nil
}
func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.answerEvents = append(m.answerEvents, data)
	return nil
}
func (m *mockEventRepo) RecentAnswers(_ context.Context, _ store.QueryOpts) ([]store.AnswerEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) AnswerStats(_ context.Context) (store.AnswerStats, error) {
	return store.AnswerStats{}, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

// press sends msg and feeds a resulting ChoiceMsg back, the way the
// program loop would.
func press(t *testing.T, s screen.Screen, msg tea.Msg) (screen.Screen, tea.Msg) {
	t.Helper()
	s, cmd := s.Update(msg)
	if cmd == nil {
		return s, nil
	}
	out := cmd()
	if c, ok := out.(components.ChoiceMsg); ok {
		s, cmd = s.Update(c)
		if cmd != nil {
			return s, cmd()
		}
		return s, nil
	}
	return s, out
}

func testBank() *bank.Bank {
	item := func(p string) bank.Item {
		return bank.Item{Prompt: p, Choices: []string{"Debit cash", "Credit cash", "No entry"}, Answer: 0, Explain: "Cash increases on the debit side.", Hint: "Assets grow on the left."}
	}
	return &bank.Bank{
		Shape: bank.ShapeSteps,
		Steps: []bank.Step{
			{Number: 1, Label: "Step 1", Title: "Cash", Items: []bank.Item{item("q1"), item("q2")}},
			{Number: 2, Label: "Step 2", Title: "Sales", Topic: "revenue", Items: []bank.Item{item("q3")}},
		},
	}
}

func newTestScreen(t *testing.T) (*QuizScreen, *progress.Service, *mockEventRepo) {
	t.Helper()
	b := testBank()
	svc := progress.NewService(context.Background(), nil, progress.StateKey, b.TotalItems())
	events := &mockEventRepo{}
	s := New(b, svc, events, 1)
	s.Init()
	return s, svc, events
}

func TestQuizScreen_WalksStepsWithRetry(t *testing.T) {
	s, svc, events := newTestScreen(t)
	var sc screen.Screen = s

	if len(events.sessionEvents) != 1 || events.sessionEvents[0].Action != store.ActionStart {
		t.Fatalf("expected session start event, got %+v", events.sessionEvents)
	}
	if s.Title() != "Step 1" {
		t.Errorf("Title = %q, want Step 1", s.Title())
	}

	// q1 wrong.
	sc, _ = press(t, sc, keyPress('2'))
	if s.feedback == nil || s.feedback.Correct {
		t.Fatal("expected wrong-answer feedback")
	}
	if view := s.View(100, 30); !strings.Contains(view, "Hint: Assets grow on the left.") {
		t.Errorf("expected hint on wrong answer:\n%s", view)
	}

	// q2 correct; last item of the pass sets the hold.
	sc, _ = press(t, sc, enter)
	sc, _ = press(t, sc, keyPress('1'))
	if !s.feedback.Awarded || svc.XP() != 1 {
		t.Fatalf("expected award, xp=%d", svc.XP())
	}
	if p, _ := s.engine.Current(); p.ProgressText() != "2/2" {
		t.Errorf("progress = %q, want 2/2", p.ProgressText())
	}

	// First Enter only clears the hold.
	sc, _ = press(t, sc, enter)
	if s.feedback == nil {
		t.Fatal("expected feedback to stay while holding")
	}
	if !strings.Contains(s.notice, "1 to retry") {
		t.Errorf("notice = %q", s.notice)
	}

	// Second Enter opens the retry round over q1.
	sc, _ = press(t, sc, enter)
	p, ok := s.engine.Current()
	if !ok || !p.Retry || p.Ref.Index != 0 {
		t.Fatalf("expected retry on item 0, got %+v", p)
	}
	if p.ProgressText() != "retry 1/1" {
		t.Errorf("progress = %q, want retry 1/1", p.ProgressText())
	}

	sc, _ = press(t, sc, keyPress('1'))
	sc, _ = press(t, sc, enter)
	if s.Title() != "Step 2" {
		t.Fatalf("Title = %q, want Step 2 after clearing step 1", s.Title())
	}

	sc, _ = press(t, sc, keyPress('1'))
	sc, _ = press(t, sc, enter) // hold
	_, out := press(t, sc, enter)

	replace, ok := out.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %#v", out)
	}
	if _, ok := replace.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", replace.Screen)
	}
	if svc.XP() != 3 {
		t.Errorf("xp = %d, want 3", svc.XP())
	}

	if len(events.answerEvents) != 4 {
		t.Errorf("answer events = %d, want 4", len(events.answerEvents))
	}

	s.Close()
	s.Close()
	if len(events.sessionEvents) != 2 {
		t.Fatalf("expected one end event, got %+v", events.sessionEvents)
	}
	end := events.sessionEvents[1]
	if end.Action != store.ActionEnd || end.Answered != 4 || end.Correct != 3 {
		t.Errorf("end event = %+v", end)
	}
}

func TestQuizScreen_AlreadyScoredFeedback(t *testing.T) {
	b := testBank()
	svc := progress.NewService(context.Background(), nil, progress.StateKey, b.TotalItems())
	svc.RecordAnswer(context.Background(), bank.Ref{Step: 2, Index: 0}, 0, true)

	s := New(b, svc, nil, 2)
	s.Init()

	// Fully correct step resumes on its last item.
	if p, _ := s.engine.Current(); p.Ref != (bank.Ref{Step: 2, Index: 0}) {
		t.Fatalf("resume ref = %v", p.Ref)
	}
	press(t, s, keyPress('1'))
	if got := AwardText(s.feedback.Award); got != "(already scored)" {
		t.Errorf("award text = %q, want (already scored)", got)
	}
	if svc.XP() != 1 {
		t.Errorf("xp = %d, want 1", svc.XP())
	}
}

func TestAwardText(t *testing.T) {
	tests := []struct {
		award progress.Award
		want  string
	}{
		{progress.Award{Correct: true, Awarded: true}, "+1 XP"},
		{progress.Award{Correct: true, AlreadyCorrect: true}, "(already scored)"},
		{progress.Award{Correct: false, AlreadyCorrect: true}, ""},
		{progress.Award{}, ""},
	}
	for _, tt := range tests {
		if got := AwardText(tt.award); got != tt.want {
			t.Errorf("AwardText(%+v) = %q, want %q", tt.award, got, tt.want)
		}
	}
}

func TestQuizScreen_IgnoresKeysAfterAnswerUntilNext(t *testing.T) {
	s, svc, _ := newTestScreen(t)
	press(t, s, keyPress('1'))
	press(t, s, keyPress('2'))
	rec, ok := svc.State().Record(bank.Ref{Step: 1, Index: 0})
	if !ok || rec.ChoiceIndex != 0 || !rec.Correct {
		t.Errorf("record = %+v, want first answer kept", rec)
	}
}
