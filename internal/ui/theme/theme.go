package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, ledger paper on a dark desk.
var (
	Primary   = lipgloss.Color("#2563EB") // Ledger Blue
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#EAB308") // Gold (XP)
	Success   = lipgloss.Color("#16A34A") // Debit Green
	Error     = lipgloss.Color("#DC2626") // Credit Red
	Warning   = lipgloss.Color("#F59E0B") // Amber (retry rounds)
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Cleared = lipgloss.NewStyle().
		Foreground(Success)

	Retry = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	XP = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)
