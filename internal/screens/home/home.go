// Package home is the document picker shown at startup.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizrogue/internal/router"
	"github.com/abhisek/quizrogue/internal/screen"
	"github.com/abhisek/quizrogue/internal/screens/battle"
	"github.com/abhisek/quizrogue/internal/screens/saves"
	"github.com/abhisek/quizrogue/internal/store"
	"github.com/abhisek/quizrogue/internal/ui/components"
	"github.com/abhisek/quizrogue/internal/ui/layout"
	"github.com/abhisek/quizrogue/internal/ui/theme"
)

// DocumentLister lists registered documents.
type DocumentLister interface {
	List(ctx context.Context) ([]store.Document, error)
}

// Deps are the services the home screen and the screens it opens need.
type Deps struct {
	Battle    battle.Deps
	Documents DocumentLister
	Saves     saves.Repo
}

type entry struct {
	doc       store.Document
	questions int
}

type docsLoadedMsg struct {
	entries []entry
	err     error
}

// HomeScreen lists documents and starts runs on them.
type HomeScreen struct {
	deps    Deps
	entries []entry
	menu    components.Menu
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	return &HomeScreen{deps: deps}
}

// Init reloads the document list. It reruns whenever the screen is
// exposed again so question counts stay current.
func (h *HomeScreen) Init() tea.Cmd {
	docs, questions := h.deps.Documents, h.deps.Battle.Questions
	return func() tea.Msg {
		ctx := context.Background()
		list, err := docs.List(ctx)
		if err != nil {
			return docsLoadedMsg{err: err}
		}
		entries := make([]entry, 0, len(list))
		for _, d := range list {
			n, err := questions.QuestionCount(ctx, d.ID)
			if err != nil {
				return docsLoadedMsg{err: fmt.Errorf("count questions for %d: %w", d.ID, err)}
			}
			entries = append(entries, entry{doc: d, questions: n})
		}
		return docsLoadedMsg{entries: entries}
	}
}

func (h *HomeScreen) Title() string {
	return "Library"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "New run"},
		{Key: "L", Description: "Load save"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) minQuestions() int {
	return h.deps.Battle.Engine.Config().MinQuestionsToStart
}

func (h *HomeScreen) buildMenu() {
	items := make([]components.MenuItem, 0, len(h.entries)+1)
	need := h.minQuestions()
	for _, e := range h.entries {
		detail := fmt.Sprintf("%d questions", e.questions)
		if e.questions < need {
			detail = fmt.Sprintf("%d/%d questions, not ready", e.questions, need)
		}
		id := e.doc.ID
		items = append(items, components.MenuItem{
			Label:  e.doc.Title,
			Detail: detail,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: battle.New(h.deps.Battle, id)}
				}
			},
		})
	}
	items = append(items, components.MenuItem{Label: "Exit", Action: func() tea.Cmd { return tea.Quit }})

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected < len(items) {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case docsLoadedMsg:
		h.loaded = true
		if msg.err != nil {
			h.errMsg = msg.err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.entries = msg.entries
		h.buildMenu()
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return h, tea.Quit
		case "l", "L":
			if h.menu.Selected < len(h.entries) {
				d := h.entries[h.menu.Selected].doc
				return h, func() tea.Msg {
					return router.PushScreenMsg{Screen: saves.New(h.deps.Saves, h.deps.Battle, d.ID, d.Title)}
				}
			}
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+6) || width < 100
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}

	switch {
	case h.errMsg != "":
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+h.errMsg))
	case !h.loaded:
		sections = append(sections, theme.Hint.Render("Opening the library..."))
	case len(h.entries) == 0:
		sections = append(sections, renderEmpty(cw), h.menu.View())
	default:
		ready, total := 0, 0
		for _, e := range h.entries {
			total += e.questions
			if e.questions >= h.minQuestions() {
				ready++
			}
		}
		sections = append(sections,
			renderStatsBar(len(h.entries), ready, total, cw),
			lipgloss.NewStyle().Width(cw).Render(h.menu.View()))
	}

	return renderCabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
