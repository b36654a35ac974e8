package app

import (
	"fmt"
	"math/rand/v2"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shiwake/internal/bank"
	"github.com/abhisek/shiwake/internal/progress"
	"github.com/abhisek/shiwake/internal/review"
	"github.com/abhisek/shiwake/internal/router"
	"github.com/abhisek/shiwake/internal/screen"
	"github.com/abhisek/shiwake/internal/screens/home"
	reviewscreen "github.com/abhisek/shiwake/internal/screens/review"
	"github.com/abhisek/shiwake/internal/store"
	"github.com/abhisek/shiwake/internal/ui/layout"
)

// Start selects the first screen pushed over home.
type Start int

const (
	StartHome Start = iota
	StartPlay
	StartReview
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	Bank     *bank.Bank
	Progress *progress.Service
	Events   store.EventRepo
	Review   review.Config
	Rand     *rand.Rand
	Start    Start
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	progress *progress.Service
	start    tea.Cmd
	width    int
	height   int
}

// newAppModel creates an AppModel with home at the bottom of the stack.
func newAppModel(opts Options) AppModel {
	deps := home.Deps{
		Bank:     opts.Bank,
		Progress: opts.Progress,
		Events:   opts.Events,
		Review:   opts.Review,
		Rand:     opts.Rand,
	}
	m := AppModel{
		router:   router.New(home.New(deps)),
		progress: opts.Progress,
	}

	var first screen.Screen
	switch opts.Start {
	case StartPlay:
		first = quizFor(opts)
	case StartReview:
		first = reviewscreen.New(opts.Bank, opts.Progress, opts.Events, opts.Review, opts.Rand)
	}
	if first != nil {
		m.start = func() tea.Msg { return router.PushScreenMsg{Screen: first} }
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.PopToRoot()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		case "q":
			if m.router.Depth() == 1 {
				return m, tea.Quit
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.progress.XP(), m.progress.MaxXP(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "q", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := newAppModel(opts)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if fm, ok := final.(AppModel); ok {
		fm.router.PopToRoot()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
