package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizrogue/internal/game"
	"github.com/abhisek/quizrogue/internal/router"
	"github.com/abhisek/quizrogue/internal/screen"
	"github.com/abhisek/quizrogue/internal/ui/components"
	"github.com/abhisek/quizrogue/internal/ui/layout"
	"github.com/abhisek/quizrogue/internal/ui/theme"
)

// SummaryScreen shows how a finished run ended.
type SummaryScreen struct {
	view game.StatusView
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen from the final status of a run.
func New(view game.StatusView) *SummaryScreen {
	return &SummaryScreen{view: view}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Run Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

// Won reports whether the run ended in victory.
func (s *SummaryScreen) Won() bool {
	return s.view.Phase == game.PhaseWon.String()
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	v := s.view
	if v.Player == nil {
		return ""
	}
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	if s.Won() {
		b.WriteString(center.Foreground(theme.Gold).Bold(true).Render("VICTORY"))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Text).Render("Every foe has fallen to your knowledge."))
	} else {
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("DEFEAT"))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Text).Render("The dungeon claims another scholar."))
	}
	b.WriteString("\n\n")

	if p := v.Progress; p != nil {
		reached := min(p.Current, p.Total)
		b.WriteString(center.Foreground(theme.TextDim).
			Render(fmt.Sprintf("Encounters: %d of %d", reached, p.Total)))
		b.WriteString("\n")
	}
	b.WriteString(center.Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("Score: %d        Level: %d", v.Player.Score, v.Player.Level)))
	b.WriteString("\n\n")

	if st := v.Stats; st != nil {
		b.WriteString(center.Foreground(theme.Text).
			Render(fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
				st.Answered, st.Correct, st.Accuracy)))
		b.WriteString("\n")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) + "\n\n")

	if n := len(v.Inventory); n > 0 {
		b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("%d unused powerups left in your bag", n)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	button := components.ArcadeButton("Back to Library", true, min(components.ContentWidth(width), 30))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, button))
	b.WriteString("\n")

	return b.String()
}
