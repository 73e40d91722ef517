package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// predictionBox frames the guessed name, HUD style.
func predictionBox(name string, width int) string {
	if width < 36 {
		width = 36
	}
	return PredictionBoxStyle.Width(width).Render(strings.ToUpper(name))
}

func makeBar(done, total, width int) string {
	if total <= 0 {
		return ""
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func separator(width int) string {
	if width <= 0 {
		width = 40
	}
	return SeparatorStyle.Render(strings.Repeat("─", width))
}

func joinColumns(left, right string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(4).Render(left),
		right,
	)
}
