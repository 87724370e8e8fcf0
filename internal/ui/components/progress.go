package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizrogue/internal/ui/theme"
)

// HPBar displays hit points as a colored horizontal bar.
type HPBar struct {
	Label string
	HP    int
	MaxHP int
	Width int
}

// NewHPBar creates a hit point bar.
func NewHPBar(label string, hp, maxHP, width int) HPBar {
	return HPBar{Label: label, HP: hp, MaxHP: maxHP, Width: width}
}

// Fraction returns HP/MaxHP clamped to [0, 1].
func (p HPBar) Fraction() float64 {
	if p.MaxHP <= 0 {
		return 0
	}
	return min(max(float64(p.HP)/float64(p.MaxHP), 0), 1)
}

// View renders the bar followed by "hp/max".
func (p HPBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	counter := fmt.Sprintf("  %d/%d", max(p.HP, 0), p.MaxHP)
	barWidth := max(p.Width-lipgloss.Width(result)-len(counter), 4)

	frac := p.Fraction()
	filled := int(float64(barWidth) * frac)
	if frac > 0 && filled == 0 {
		filled = 1
	}

	result += lipgloss.NewStyle().
		Background(theme.HPColor(frac)).
		Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter)

	return result
}
