package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizrogue/internal/ui/theme"
)

const titleFull = `  ___  _   _ ___ _____ ____   ___   ____ _   _ _____
 / _ \| | | |_ _|__  /|  _ \ / _ \ / ___| | | | ____|
| | | | | | || |  / / | |_) | | | | |  _| | | |  _|
| |_| | |_| || | / /_ |  _ <| |_| | |_| | |_| | |___
 \__\_\\___/|___/____||_| \_\\___/ \____|\___/|_____|`

const titleCompact = "Q · U · I · Z · R · O · G · U · E"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders library totals in a double-bordered box.
func renderStatsBar(docs, ready, questions, cw int) string {
	docStyle := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	readyStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	qStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	stats := fmt.Sprintf("%s  %s  %s",
		docStyle.Render(fmt.Sprintf("📚 %d DOCS", docs)),
		readyStyle.Render(fmt.Sprintf("⚔ %d READY", ready)),
		qStyle.Render(fmt.Sprintf("? %d QUESTIONS", questions)),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderEmpty explains how to get a first document in.
func renderEmpty(cw int) string {
	lines := []string{
		"No documents yet.",
		"",
		"Add one with:  quizrogue docs add <file>",
		"Then run:      quizrogue generate <id>",
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderCabinetFrame wraps content in a double-border cabinet frame,
// centering vertically and horizontally within the given dimensions.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
