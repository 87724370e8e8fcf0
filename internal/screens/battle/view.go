package battle

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizrogue/internal/ui/components"
	"github.com/abhisek/quizrogue/internal/ui/layout"
	"github.com/abhisek/quizrogue/internal/ui/theme"
)

func (b *BattleScreen) View(width, height int) string {
	if b.errMsg != "" {
		return renderError(width, b.errMsg)
	}
	if b.state == nil {
		return renderLoading(width, "Entering the dungeon...")
	}
	if b.mode == modeQuitConfirm {
		return renderQuitConfirm(width)
	}

	cw := components.ContentWidth(width)
	sections := []string{b.renderEnemy(cw), b.renderPlayer(cw)}

	switch b.mode {
	case modeLoading:
		sections = append(sections, renderLoading(cw, "Summoning a question..."))
	case modePowerups:
		sections = append(sections, b.renderPowerups(cw))
	case modeSaving:
		sections = append(sections, components.Panel("Name this save:\n\n"+b.saveInput.View(), cw))
	case modeFeedback:
		sections = append(sections, b.renderQuestion(cw, height), b.renderFeedback(cw))
	default:
		sections = append(sections, b.renderQuestion(cw, height))
	}
	if b.notice != "" {
		sections = append(sections, theme.Hint.Render(b.notice))
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (b *BattleScreen) renderEnemy(cw int) string {
	e := b.state.Enemy
	if e == nil {
		return components.Panel(theme.Hint.Render("The path ahead is clear."), cw)
	}
	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(e.Icon + "  " + e.Name)
	if e.IsBoss {
		name += "  " + lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("BOSS")
	}
	meta := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("hits for %d  ·  worth %d", e.Damage, e.ScoreValue))
	bar := components.NewHPBar("HP", e.HP, e.MaxHP, cw-4).View()
	return components.Panel(name+"\n"+meta+"\n"+bar, cw)
}

func (b *BattleScreen) renderPlayer(cw int) string {
	p := b.state.Player
	bar := components.NewHPBar("You", p.HP, p.MaxHP, cw-4).View()

	var tags []string
	tags = append(tags, fmt.Sprintf("Lv %d", p.Level))
	if p.Shield > 0 {
		tags = append(tags, fmt.Sprintf("🛡 %d", p.Shield))
	}
	if p.DamageBoost > 1 {
		tags = append(tags, fmt.Sprintf("⚔ x%.1f", p.DamageBoost))
	}
	if p.ScoreBoost > 1 {
		tags = append(tags, fmt.Sprintf("🪙 x%.1f", p.ScoreBoost))
	}
	if n := len(b.state.Inventory); n > 0 {
		tags = append(tags, fmt.Sprintf("🎒 %d", n))
	}
	if n := len(b.state.FailedQuestionIDs); n > 0 {
		tags = append(tags, fmt.Sprintf("↻ %d to review", n))
	}
	line := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Join(tags, "   "))
	return components.Panel(bar+"\n"+line, cw)
}

func (b *BattleScreen) renderQuestion(cw, height int) string {
	q := b.question
	if q == nil {
		return ""
	}
	var sb strings.Builder
	label := strings.ToUpper(q.Difficulty)
	if q.Topic != "" {
		label += "  ·  " + q.Topic
	}
	if q.IsReview {
		label = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("REVIEW") + "  " + label
	}
	sb.WriteString(theme.Hint.Render(label) + "\n")
	sb.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw-4).Render(q.Text))
	if !layout.IsCompactHeight(height) {
		sb.WriteString("\n")
	}
	sb.WriteString("\n" + b.choice.View())
	return components.Panel(sb.String(), cw)
}

func (b *BattleScreen) renderFeedback(cw int) string {
	r := b.result
	if r == nil || r.Outcome == nil {
		return ""
	}
	out := r.Outcome
	var lines []string

	if out.IsCorrect {
		lines = append(lines, theme.Correct.Render(fmt.Sprintf("Correct! You strike for %d damage.", out.DamageDealt)))
	} else {
		lines = append(lines, theme.Incorrect.Render(fmt.Sprintf("Wrong! You take %d damage.", out.DamageReceived)))
		lines = append(lines, theme.Body.Render("Answer: "+r.CorrectAnswer))
	}
	if out.EnemyDefeated {
		lines = append(lines, theme.Loot.Render(fmt.Sprintf("Enemy defeated! +%d score", out.ScoreGained)))
	}
	if out.PowerupGained != nil {
		lines = append(lines, theme.Loot.Render("Found: "+powerupName(b.deps.Engine.Config(), *out.PowerupGained)))
	}
	switch {
	case out.GameWon:
		lines = append(lines, theme.Correct.Render("The dungeon is cleared. Victory!"))
	case out.PlayerDied:
		lines = append(lines, theme.Incorrect.Render("You have fallen..."))
	}
	if r.Explanation != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw-4).Render(r.Explanation))
	}
	return components.Panel(strings.Join(lines, "\n"), cw)
}

func (b *BattleScreen) renderPowerups(cw int) string {
	inv := b.state.Inventory
	if len(inv) == 0 {
		return components.Panel(theme.Hint.Render("Your bag is empty."), cw)
	}
	cfg := b.deps.Engine.Config()
	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Powerups") + "\n\n")
	for i, id := range inv {
		line := "  " + powerupName(cfg, id)
		style := theme.Unselected
		if i == b.powerupSel {
			line = "▸ " + powerupName(cfg, id)
			style = theme.Selected
		}
		sb.WriteString(style.Render(line) + "\n")
	}
	return components.Panel(sb.String(), cw)
}

func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Leave this run?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Unsaved progress will be lost."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Error).Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep fighting"))
	return b.String()
}

func renderLoading(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n" + text + "\n")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}

