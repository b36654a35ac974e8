package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shiwake/internal/bank"
	"github.com/abhisek/shiwake/internal/screen"
	"github.com/abhisek/shiwake/internal/store"
	"github.com/abhisek/shiwake/internal/ui/layout"
	"github.com/abhisek/shiwake/internal/ui/theme"
)

// Limit is the number of answer events the screen loads.
const Limit = 50

type historyLoadedMsg struct {
	Answers []store.AnswerEventRecord
	Err     error
}

// HistoryScreen lists the most recent answers from the event log.
type HistoryScreen struct {
	eventRepo store.EventRepo
	bank      *bank.Bank
	answers   []store.AnswerEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. b is used to show the prompt and chosen
// option of an expanded entry.
func New(eventRepo store.EventRepo, b *bank.Bank) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		bank:      b,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.RecentAnswers(context.Background(), store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.answers = msg.Answers
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.answers)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Center(theme.Incorrect, width, fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Center(theme.Dim, width, "\n\n  Loading history...")
	}
	if len(s.answers) == 0 {
		return layout.Center(theme.Hint, width, "\n\n  No answers yet. Start practicing!")
	}

	lines := []string{""}
	for i, a := range s.answers {
		prefix := "  "
		style := theme.Body
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+EntryLine(a))))

		if s.expanded[i] {
			for _, d := range s.details(a) {
				lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center,
					theme.Hint.Render("      "+d)))
			}
		}
	}

	return strings.Join(window(lines, s.selectedLine(), height), "\n")
}

// EntryLine renders one answer event.
func EntryLine(a store.AnswerEventRecord) string {
	mark := "✗"
	if a.Correct {
		mark = "✓"
	}
	xp := "     "
	if a.Awarded {
		xp = "+1 XP"
	}
	return fmt.Sprintf("%s  %s  %-6s  step %-2d #%-2d  %s",
		a.Timestamp.Local().Format("Jan 02 15:04"), mark, a.Mode, a.Step, a.Item+1, xp)
}

func (s *HistoryScreen) details(a store.AnswerEventRecord) []string {
	if s.bank == nil {
		return nil
	}
	item, ok := s.bank.Item(bank.Ref{Step: a.Step, Index: a.Item})
	if !ok {
		return []string{"(item no longer in the bank)"}
	}
	out := []string{item.Prompt}
	if a.Choice >= 0 && a.Choice < len(item.Choices) {
		out = append(out, "Chose: "+item.Choices[a.Choice])
	}
	if !a.Correct {
		out = append(out, "Answer: "+item.Choices[item.Answer])
	}
	return out
}

// selectedLine returns the line index of the selected entry.
func (s *HistoryScreen) selectedLine() int {
	line := 1
	for i := 0; i < s.selected; i++ {
		line++
		if s.expanded[i] {
			line += len(s.details(s.answers[i]))
		}
	}
	return line
}

// window keeps the line at focus visible within height lines.
func window(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := focus - height/2
	start = max(0, min(start, len(lines)-height))
	return lines[start : start+height]
}
