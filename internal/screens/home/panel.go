package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/shiwake/internal/progress"
	"github.com/abhisek/shiwake/internal/ui/components"
	"github.com/abhisek/shiwake/internal/ui/theme"
)

const titleFull = `╔═╗╦ ╦╦╦ ╦╔═╗╦╔═╔═╗
╚═╗╠═╣║║║║╠═╣╠╩╗║╣
╚═╝╩ ╩╩╚╩╝╩ ╩╩ ╩╚═╝`

const titleCompact = "S · H · I · W · A · K · E"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return max(20, min(frameWidth-6, 64))
}

// renderTitle returns the styled title block or its compact fallback.
func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render(art) + "\n" + theme.Subtitle.Render("journal entry drills"))
}

// renderStatsBar shows the XP bar and cleared-step count in a bordered box.
func renderStatsBar(r progress.Report, cw int) string {
	cleared := 0
	for _, st := range r.Steps {
		if st.Complete {
			cleared++
		}
	}

	bar := components.NewProgressBar("XP", r.XP, r.MaxXP, cw-6).View()
	steps := theme.Dim.Render(fmt.Sprintf("%d of %d steps cleared", cleared, len(r.Steps)))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(bar + "\n" + steps)
}

// renderPanel centers the stacked sections inside a bordered frame.
func renderPanel(sections []string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(sections, "\n\n"))
}
