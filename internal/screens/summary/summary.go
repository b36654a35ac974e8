package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shiwake/internal/bank"
	"github.com/abhisek/shiwake/internal/progress"
	"github.com/abhisek/shiwake/internal/router"
	"github.com/abhisek/shiwake/internal/screen"
	"github.com/abhisek/shiwake/internal/ui/layout"
	"github.com/abhisek/shiwake/internal/ui/theme"
)

// SummaryScreen displays overall and per-step progress. The report is
// rebuilt on every render so it reflects answers given since the screen
// was pushed.
type SummaryScreen struct {
	bank     *bank.Bank
	svc      *progress.Service
	finished bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. finished marks that the learner has just
// walked off the end of the bank.
func New(b *bank.Bank, svc *progress.Service, finished bool) *SummaryScreen {
	return &SummaryScreen{bank: b, svc: svc, finished: finished}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.svc.Report(s.bank)

	var b strings.Builder
	b.WriteString("\n")

	heading := "Progress summary"
	if s.finished {
		heading = "All steps done!"
	}
	b.WriteString(layout.Center(theme.Title, width, heading))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(theme.Body, width, TotalLine(r)))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(theme.Dim, width, "Steps"))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n\n")

	rows := make([]string, 0, len(r.Steps))
	for _, row := range r.Steps {
		style := theme.Body
		if row.Complete {
			style = theme.Cleared
		}
		rows = append(rows, style.Render(StepLine(row)))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n")))

	return b.String()
}

// TotalLine renders "c / n correct (XP x/max)".
func TotalLine(r progress.Report) string {
	return fmt.Sprintf("%d / %d correct (XP %d/%d)", r.Correct, r.Total, r.XP, r.MaxXP)
}

// StepLine renders one per-step row; a missing topic shows as an em dash.
func StepLine(row progress.StepReport) string {
	topic := row.Topic
	if topic == "" {
		topic = "—"
	}
	mark := " "
	if row.Complete {
		mark = "✓"
	}
	return fmt.Sprintf("%s %-8s %-28s %2d / %-2d correct   %s",
		mark, row.Label, truncate(row.Title, 28), row.Correct, row.Total, topic)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
