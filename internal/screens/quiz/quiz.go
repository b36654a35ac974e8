package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/abhisek/shiwake/internal/bank"
	"github.com/abhisek/shiwake/internal/engine"
	"github.com/abhisek/shiwake/internal/progress"
	"github.com/abhisek/shiwake/internal/router"
	"github.com/abhisek/shiwake/internal/screen"
	"github.com/abhisek/shiwake/internal/screens/summary"
	"github.com/abhisek/shiwake/internal/store"
	"github.com/abhisek/shiwake/internal/ui/components"
	"github.com/abhisek/shiwake/internal/ui/layout"
)

// QuizScreen presents one step at a time and drives the progression engine.
type QuizScreen struct {
	bank   *bank.Bank
	svc    *progress.Service
	engine *engine.Engine
	events store.EventRepo

	step      int
	sessionID string
	startedAt time.Time
	closed    bool

	choice   components.MultiChoice
	feedback *engine.Feedback
	notice   string
	errMsg   string

	next     key.Binding
	answered int
	correct  int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a QuizScreen that enters step at its first unresolved item.
// events may be nil.
func New(b *bank.Bank, svc *progress.Service, events store.EventRepo, step int) *QuizScreen {
	return &QuizScreen{
		bank:   b,
		svc:    svc,
		engine: engine.New(b, svc),
		events: events,
		step:   step,
		next: key.NewBinding(
			key.WithKeys("enter", "space", "n"),
			key.WithHelp("Enter", "Next"),
		),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	ctx := context.Background()
	s.sessionID = uuid.New().String()
	s.startedAt = time.Now()
	s.engine.StartStep(ctx, s.step)
	s.loadCurrent()

	s.appendSession(ctx, store.ActionStart)
	return nil
}

func (s *QuizScreen) Title() string {
	if p, ok := s.engine.Current(); ok {
		return p.Label
	}
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.feedback != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-3", Description: "Answer"},
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ChoiceMsg:
		return s.submit(msg.Index)

	case tea.KeyMsg:
		if s.errMsg != "" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		if s.feedback != nil {
			if key.Matches(msg, s.next) {
				return s.advance()
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd
	}
	return s, nil
}

// Close records the end of the session. It runs once, however the screen
// leaves the stack.
func (s *QuizScreen) Close() {
	if s.closed || s.sessionID == "" {
		return
	}
	s.closed = true
	s.appendSession(context.Background(), store.ActionEnd)
}

func (s *QuizScreen) submit(choice int) (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	fb, err := s.engine.Answer(ctx, choice)
	if err != nil {
		if !errors.Is(err, engine.ErrAlreadyAnswered) {
			s.errMsg = err.Error()
		}
		return s, nil
	}

	s.feedback = &fb
	s.answered++
	if fb.Correct {
		s.correct++
	}
	s.notice = ""

	if s.events != nil {
		err := s.events.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID: s.sessionID,
			Mode:      store.ModePlay,
			Step:      fb.Ref.Step,
			Item:      fb.Ref.Index,
			Choice:    fb.Choice,
			Correct:   fb.Correct,
			Awarded:   fb.Awarded,
		})
		if err != nil {
			glog.Warningf("append answer event: %v", err)
		}
	}
	return s, nil
}

func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	tr := s.engine.Advance(context.Background())

	switch tr.Kind {
	case engine.TransitionHold:
		if pending := s.engine.Pending(tr.Step); len(pending) > 0 {
			s.notice = fmt.Sprintf("Step done. %d to retry.", len(pending))
		} else {
			s.notice = "Step cleared!"
		}
		return s, nil

	case engine.TransitionRetry:
		if s.engine.Retry().Cursor == 0 {
			s.notice = fmt.Sprintf("Retry round: %d item(s)", len(s.engine.Retry().Pending))
		} else {
			s.notice = ""
		}

	case engine.TransitionStep:
		s.notice = fmt.Sprintf("Step %d cleared. On to step %d.", tr.Step-1, tr.Step)

	case engine.TransitionSummary:
		sum := summary.New(s.bank, s.svc, true)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }

	default:
		s.notice = ""
	}

	s.loadCurrent()
	return s, nil
}

// loadCurrent resets the choice list for the presented item.
func (s *QuizScreen) loadCurrent() {
	s.feedback = nil
	p, ok := s.engine.Current()
	if !ok {
		s.choice = components.MultiChoice{}
		return
	}
	s.choice = components.NewMultiChoice(p.Item.Prompt, p.Item.Choices, p.Item.Answer)
}

func (s *QuizScreen) appendSession(ctx context.Context, action string) {
	if s.events == nil {
		return
	}
	data := store.SessionEventData{
		SessionID: s.sessionID,
		Action:    action,
		Mode:      store.ModePlay,
	}
	if action == store.ActionEnd {
		data.Answered = s.answered
		data.Correct = s.correct
		data.DurationSecs = int(time.Since(s.startedAt).Seconds())
	}
	if err := s.events.AppendSessionEvent(ctx, data); err != nil {
		glog.Warningf("append session event: %v", err)
	}
}
