// Package saves lists the saved runs of a document.
package saves

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizrogue/internal/game"
	"github.com/abhisek/quizrogue/internal/router"
	"github.com/abhisek/quizrogue/internal/screen"
	"github.com/abhisek/quizrogue/internal/screens/battle"
	"github.com/abhisek/quizrogue/internal/ui/components"
	"github.com/abhisek/quizrogue/internal/ui/layout"
	"github.com/abhisek/quizrogue/internal/ui/theme"
)

// Repo lists and deletes saves.
type Repo interface {
	ListSaves(ctx context.Context, documentID int64) ([]game.SaveRecord, error)
	DeleteSave(ctx context.Context, id int64) error
}

type savesLoadedMsg struct {
	saves []game.SaveRecord
	err   error
}

// SavesScreen lets the player resume or delete a saved run.
type SavesScreen struct {
	repo       Repo
	battleDeps battle.Deps
	documentID int64
	docTitle   string

	saves    []game.SaveRecord
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*SavesScreen)(nil)
var _ screen.KeyHintProvider = (*SavesScreen)(nil)

// New creates a SavesScreen for one document.
func New(repo Repo, battleDeps battle.Deps, documentID int64, docTitle string) *SavesScreen {
	return &SavesScreen{repo: repo, battleDeps: battleDeps, documentID: documentID, docTitle: docTitle}
}

func (s *SavesScreen) Init() tea.Cmd {
	return s.load()
}

func (s *SavesScreen) load() tea.Cmd {
	repo, id := s.repo, s.documentID
	return func() tea.Msg {
		list, err := repo.ListSaves(context.Background(), id)
		return savesLoadedMsg{saves: list, err: err}
	}
}

func (s *SavesScreen) Title() string {
	return "Saves: " + s.docTitle
}

func (s *SavesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Resume"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SavesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savesLoadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.saves = msg.saves
		s.selected = min(s.selected, max(len(s.saves)-1, 0))
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.saves)-1 {
				s.selected++
			}
		case "enter":
			if len(s.saves) == 0 {
				return s, nil
			}
			id := s.saves[s.selected].ID
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: battle.Resume(s.battleDeps, id)}
			}
		case "d", "D":
			if len(s.saves) == 0 {
				return s, nil
			}
			id, repo := s.saves[s.selected].ID, s.repo
			return s, tea.Sequence(func() tea.Msg {
				if err := repo.DeleteSave(context.Background(), id); err != nil {
					return savesLoadedMsg{err: err}
				}
				return nil
			}, s.load())
		}
	}
	return s, nil
}

func (s *SavesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	switch {
	case s.errMsg != "":
		body = lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + s.errMsg)
	case !s.loaded:
		body = theme.Hint.Render("Loading saves...")
	case len(s.saves) == 0:
		body = theme.Hint.Render("No saved runs for this document.")
	default:
		var b strings.Builder
		for i, sv := range s.saves {
			line := fmt.Sprintf("%-24s  HP %3d/%-3d  encounter %d  score %d  %s",
				sv.Name, sv.PlayerHP, sv.PlayerMaxHP, sv.CurrentEncounter, sv.Score,
				sv.UpdatedAt.Local().Format("Jan 2 15:04"))
			if i == s.selected {
				b.WriteString(theme.Selected.Render("▸ "+line) + "\n")
			} else {
				b.WriteString(theme.Unselected.Render("  "+line) + "\n")
			}
		}
		body = b.String()
	}
	return components.Centered(components.Panel(body, cw), width, height)
}
