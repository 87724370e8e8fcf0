package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizrogue/internal/game"
	"github.com/abhisek/quizrogue/internal/screens/battle"
	"github.com/abhisek/quizrogue/internal/screens/home"
	"github.com/abhisek/quizrogue/internal/store"
)

type emptyDocs struct{}

func (emptyDocs) List(context.Context) ([]store.Document, error) { return nil, nil }

func testOptions() Options {
	engine := game.NewEngine(game.DefaultConfig(), nil, nil, nil)
	return Options{Home: home.Deps{Battle: battle.Deps{Engine: engine}, Documents: emptyDocs{}}}
}

func TestStartsAtLibrary(t *testing.T) {
	m := newAppModel(testOptions())
	if m.router.Depth() != 1 || m.router.Active().Title() != "Library" {
		t.Fatalf("expected library at depth 1, got %q at %d", m.router.Active().Title(), m.router.Depth())
	}
}

func TestDirectRunStacksBattle(t *testing.T) {
	opts := testOptions()
	opts.DocumentID = 3
	m := newAppModel(opts)
	if m.router.Depth() != 2 || m.router.Active().Title() != "Battle" {
		t.Fatalf("expected battle on top, got %q at %d", m.router.Active().Title(), m.router.Depth())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions())
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestViewTooSmall(t *testing.T) {
	m := newAppModel(testOptions())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	v := updated.(AppModel).View()
	if !v.AltScreen {
		t.Error("expected alt screen")
	}
}
