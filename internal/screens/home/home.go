package home

import (
	"fmt"
	"math/rand/v2"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shiwake/internal/bank"
	"github.com/abhisek/shiwake/internal/progress"
	"github.com/abhisek/shiwake/internal/review"
	"github.com/abhisek/shiwake/internal/router"
	"github.com/abhisek/shiwake/internal/screen"
	"github.com/abhisek/shiwake/internal/screens/history"
	"github.com/abhisek/shiwake/internal/screens/quiz"
	reviewscreen "github.com/abhisek/shiwake/internal/screens/review"
	"github.com/abhisek/shiwake/internal/screens/summary"
	"github.com/abhisek/shiwake/internal/store"
	"github.com/abhisek/shiwake/internal/ui/components"
)

// Deps are the services the home screen hands to the screens it opens.
type Deps struct {
	Bank     *bank.Bank
	Progress *progress.Service
	Events   store.EventRepo // optional
	Review   review.Config
	Rand     *rand.Rand // optional; nil uses the global source
}

// HomeScreen lists every step with its live correct count, plus the
// review, summary and history entries.
type HomeScreen struct {
	deps Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	items := []components.MenuItem{
		{Label: "Continue", Action: h.push(func() screen.Screen {
			return quiz.New(deps.Bank, deps.Progress, deps.Events, deps.Progress.State().CurrentStep)
		})},
	}
	for i := range deps.Bank.Steps {
		n := deps.Bank.Steps[i].Number
		items = append(items, components.MenuItem{
			Label: deps.Bank.Steps[i].Label,
			Action: h.push(func() screen.Screen {
				return quiz.New(deps.Bank, deps.Progress, deps.Events, n)
			}),
		})
	}
	items = append(items,
		components.MenuItem{Label: "Review", Action: h.push(func() screen.Screen {
			return reviewscreen.New(deps.Bank, deps.Progress, deps.Events, deps.Review, deps.Rand)
		})},
		components.MenuItem{Label: "Summary", Action: h.push(func() screen.Screen {
			return summary.New(deps.Bank, deps.Progress, false)
		})},
		components.MenuItem{Label: "History", Disabled: deps.Events == nil, Action: h.push(func() screen.Screen {
			return history.New(deps.Events, deps.Bank)
		})},
		components.MenuItem{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }},
	)

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: build()}
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 24 || width < 90
	cw := contentWidth(width)
	r := h.deps.Progress.Report(h.deps.Bank)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(r, cw))

	menu := h.menu
	menu.Items = h.liveItems(r)
	sections = append(sections, lipgloss.NewStyle().Width(cw).Render(menu.View()))

	return renderPanel(sections, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// liveItems copies the menu items with per-step counts filled in.
func (h *HomeScreen) liveItems(r progress.Report) []components.MenuItem {
	items := append([]components.MenuItem(nil), h.menu.Items...)
	items[0].Detail = ContinueDetail(h.deps.Bank, h.deps.Progress.State().CurrentStep)
	for i, row := range r.Steps {
		items[i+1].Detail = StepDetail(row)
	}
	return items
}

// ContinueDetail names the step Continue resumes, using the bank's own
// label ("Step N" or "Day N"). A stored step past the end of the bank
// resolves to the last step, as the engine clamps it.
func ContinueDetail(b *bank.Bank, cur int) string {
	if st, ok := b.Step(cur); ok {
		return st.Label
	}
	if n := len(b.Steps); n > 0 && cur > n {
		return b.Steps[n-1].Label
	}
	if len(b.Steps) > 0 {
		return b.Steps[0].Label
	}
	return fmt.Sprintf("Step %d", cur)
}

// StepDetail renders "(c/n)" with a done marker for a cleared step.
func StepDetail(row progress.StepReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "(%d/%d)", row.Correct, row.Total)
	if row.Complete {
		b.WriteString(" ✓")
	}
	if row.Title != "" && row.Title != row.Label {
		b.WriteString("  " + row.Title)
	}
	return b.String()
}
