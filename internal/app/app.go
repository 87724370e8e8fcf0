package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizrogue/internal/router"
	"github.com/abhisek/quizrogue/internal/screen"
	"github.com/abhisek/quizrogue/internal/screens/battle"
	"github.com/abhisek/quizrogue/internal/screens/home"
	"github.com/abhisek/quizrogue/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Home home.Deps

	// DocumentID, when set, skips the library and starts a run on it.
	DocumentID int64

	// SaveID, when set, resumes that save directly.
	SaveID int64
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	r := router.New(home.New(opts.Home))
	switch {
	case opts.SaveID > 0:
		r.Push(battle.Resume(opts.Home.Battle, opts.SaveID))
	case opts.DocumentID > 0:
		r.Push(battle.New(opts.Home.Battle, opts.DocumentID))
	}
	return AppModel{router: r}
}

// Init initialises the top screen. The library below a directly started
// battle loads when it is exposed.
func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(layout.StatusProvider); ok {
			status = sp.HeaderStatus()
		}
	}
	header := layout.RenderHeader(title, status, m.width)

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	_, err := tea.NewProgram(newAppModel(opts)).Run()
	return err
}
