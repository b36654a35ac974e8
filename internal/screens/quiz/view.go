package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/shiwake/internal/engine"
	"github.com/abhisek/shiwake/internal/progress"
	"github.com/abhisek/shiwake/internal/ui/components"
	"github.com/abhisek/shiwake/internal/ui/layout"
	"github.com/abhisek/shiwake/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Center(theme.Incorrect, width,
			fmt.Sprintf("\n\n\nError: %s\n\nPress any key to go back.", s.errMsg))
	}

	p, ok := s.engine.Current()
	if !ok {
		return layout.Center(theme.Dim, width, "\n\n\nNothing to practice.")
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(p, width))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n\n")

	if s.notice != "" {
		b.WriteString(layout.Center(theme.Retry, width, s.notice))
		b.WriteString("\n\n")
	}

	block := s.choice.View()
	if s.feedback != nil {
		block += "\n" + renderFeedback(*s.feedback, min(width-8, 70))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))

	return b.String()
}

// renderInfoLine shows the step title and topic on the left and the
// progress counter on the right.
func (s *QuizScreen) renderInfoLine(p engine.Presentation, width int) string {
	title := p.Title
	if p.Topic != "" {
		title += "  ·  " + p.Topic
	}
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  " + title)

	counterStyle := theme.Dim
	if p.Retry {
		counterStyle = theme.Retry
	}
	bar := components.NewProgressBar("", p.Current, p.Total, 24)
	right := bar.View()
	if p.Retry {
		right = counterStyle.Render(p.ProgressText())
	}

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		return left + "\n  " + right
	}
	return left + strings.Repeat(" ", pad) + right
}

func renderFeedback(fb engine.Feedback, width int) string {
	var b strings.Builder

	if fb.Correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
		if fb.Item.Answer >= 0 && fb.Item.Answer < len(fb.Item.Choices) {
			b.WriteString(theme.Dim.Render(fmt.Sprintf("  Answer: %d) %s",
				fb.Item.Answer+1, fb.Item.Choices[fb.Item.Answer])))
		}
	}
	if note := AwardText(fb.Award); note != "" {
		b.WriteString("  ")
		b.WriteString(theme.XP.Render(note))
	}
	b.WriteString("\n\n")

	wrap := lipgloss.NewStyle().Width(max(width, 20)).Foreground(theme.Text)
	if !fb.Correct && fb.Item.Hint != "" {
		b.WriteString(theme.Hint.Width(max(width, 20)).Render("Hint: " + fb.Item.Hint))
		b.WriteString("\n\n")
	}
	if fb.Item.Explain != "" {
		b.WriteString(wrap.Render(fb.Item.Explain))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Dim.Render("Press Enter to continue..."))
	return b.String()
}

// AwardText is "+1 XP" for an awarded answer and "(already scored)" for a
// correct answer on an item that was already correct.
func AwardText(a progress.Award) string {
	switch {
	case a.Awarded:
		return "+1 XP"
	case a.Correct && a.AlreadyCorrect:
		return "(already scored)"
	default:
		return ""
	}
}
