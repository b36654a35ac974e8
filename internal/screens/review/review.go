package review

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/abhisek/shiwake/internal/bank"
	"github.com/abhisek/shiwake/internal/progress"
	sampler "github.com/abhisek/shiwake/internal/review"
	"github.com/abhisek/shiwake/internal/router"
	"github.com/abhisek/shiwake/internal/screen"
	"github.com/abhisek/shiwake/internal/screens/quiz"
	"github.com/abhisek/shiwake/internal/screens/summary"
	"github.com/abhisek/shiwake/internal/store"
	"github.com/abhisek/shiwake/internal/ui/components"
	"github.com/abhisek/shiwake/internal/ui/layout"
	"github.com/abhisek/shiwake/internal/ui/theme"
)

// ReviewScreen runs a short session over a random sample of unresolved items.
type ReviewScreen struct {
	bank   *bank.Bank
	svc    *progress.Service
	events store.EventRepo
	cfg    sampler.Config
	rng    *rand.Rand

	session   *sampler.Session
	sessionID string
	startedAt time.Time
	closed    bool

	choice components.MultiChoice
	result *sampler.Result
	empty  bool
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ screen.Closer = (*ReviewScreen)(nil)

// New creates a ReviewScreen. rng may be nil to use the global source;
// events may be nil.
func New(b *bank.Bank, svc *progress.Service, events store.EventRepo, cfg sampler.Config, rng *rand.Rand) *ReviewScreen {
	return &ReviewScreen{bank: b, svc: svc, events: events, cfg: cfg, rng: rng}
}

func (s *ReviewScreen) Init() tea.Cmd {
	pool := sampler.BuildPendingPool(s.bank, s.svc, s.cfg.Max, s.rng)
	sess, err := sampler.New(s.bank, s.svc, pool)
	if err != nil {
		if !errors.Is(err, sampler.ErrNothingToReview) {
			glog.Warningf("start review: %v", err)
		}
		s.empty = true
		return nil
	}
	s.session = sess
	s.sessionID = uuid.New().String()
	s.startedAt = time.Now()
	s.appendSession(store.ActionStart)
	s.loadCurrent()
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	if s.empty || s.finished() || s.result != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-3", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ChoiceMsg:
		s.submit(msg.Index)
		return s, nil

	case tea.KeyMsg:
		if s.empty {
			if msg.String() == "enter" {
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return s, nil
		}
		if s.finished() {
			if msg.String() == "enter" {
				sum := summary.New(s.bank, s.svc, false)
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }
			}
			return s, nil
		}
		if s.result != nil {
			if msg.String() == "enter" || msg.String() == "space" {
				s.session.Next()
				s.loadCurrent()
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd
	}
	return s, nil
}

// Close records the end of the review session.
func (s *ReviewScreen) Close() {
	if s.closed || s.session == nil {
		return
	}
	s.closed = true
	s.appendSession(store.ActionEnd)
}

func (s *ReviewScreen) finished() bool {
	return s.session != nil && s.session.Done()
}

func (s *ReviewScreen) submit(choice int) {
	ctx := context.Background()
	res, err := s.session.Answer(ctx, choice)
	if err != nil {
		glog.V(1).Infof("review answer ignored: %v", err)
		return
	}
	s.result = &res

	if s.events != nil {
		err := s.events.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID: s.sessionID,
			Mode:      store.ModeReview,
			Step:      res.Ref.Step,
			Item:      res.Ref.Index,
			Choice:    res.Choice,
			Correct:   res.Correct,
			Awarded:   res.Awarded,
		})
		if err != nil {
			glog.Warningf("append answer event: %v", err)
		}
	}
}

func (s *ReviewScreen) loadCurrent() {
	s.result = nil
	it, ok := s.session.Current()
	if !ok {
		s.choice = components.MultiChoice{}
		return
	}
	s.choice = components.NewMultiChoice(it.Item.Prompt, it.Item.Choices, it.Item.Answer)
}

func (s *ReviewScreen) appendSession(action string) {
	if s.events == nil {
		return
	}
	data := store.SessionEventData{
		SessionID: s.sessionID,
		Action:    action,
		Mode:      store.ModeReview,
	}
	if action == store.ActionEnd {
		data.Answered = s.session.Answers()
		data.Correct = s.session.CorrectCount()
		data.DurationSecs = int(time.Since(s.startedAt).Seconds())
	}
	if err := s.events.AppendSessionEvent(context.Background(), data); err != nil {
		glog.Warningf("append session event: %v", err)
	}
}

func (s *ReviewScreen) View(width, height int) string {
	if s.empty {
		return layout.Center(theme.Cleared, width,
			"\n\n\nNothing to review: every item is answered correctly.\n\nPress Enter for the summary.")
	}
	if s.session == nil {
		return ""
	}
	if s.finished() {
		return layout.Center(theme.Body, width, fmt.Sprintf(
			"\n\n\nReview done: %d / %d correct  (XP %d/%d)\n\nPress Enter for the summary.",
			s.session.CorrectCount(), s.session.Len(), s.svc.XP(), s.svc.MaxXP()))
	}

	it, _ := s.session.Current()

	var b strings.Builder
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  Review · " + it.Label)
	right := theme.Dim.Render(it.ProgressText())
	pad := max(width-lipgloss.Width(left)-lipgloss.Width(right)-4, 1)
	b.WriteString(left + strings.Repeat(" ", pad) + right)
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n\n")

	block := s.choice.View()
	if s.result != nil {
		block += "\n" + s.renderResult(min(width-8, 70))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	return b.String()
}

func (s *ReviewScreen) renderResult(width int) string {
	res := s.result
	var b strings.Builder
	if res.Correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
	}
	if note := quiz.AwardText(res.Award); note != "" {
		b.WriteString("  " + theme.XP.Render(note))
	}
	b.WriteString("\n\n")
	if !res.Correct && res.Item.Hint != "" {
		b.WriteString(theme.Hint.Width(max(width, 20)).Render("Hint: " + res.Item.Hint))
		b.WriteString("\n\n")
	}
	if res.Item.Explain != "" {
		b.WriteString(theme.Body.Width(max(width, 20)).Render(res.Item.Explain))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Dim.Render("Press Enter to continue..."))
	return b.String()
}
