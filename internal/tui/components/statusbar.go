package components

import (
	"github.com/theirongolddev/spendlog/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left, the
// latest message on the right. An error message is drawn in red.
func RenderStatusBar(width int, hints, message string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	msgStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)
	if isErr {
		msgStyle = msgStyle.Foreground(t.Red).Bold(true)
	}

	left := " " + hints
	right := ""
	if message != "" {
		right = msgStyle.Render(message + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Message wins over hints on narrow screens.
		left = ""
		padding = width - lipgloss.Width(right)
		if padding < 0 {
			padding = 0
		}
	}

	gap := lipgloss.NewStyle().Background(t.Surface).Width(padding).Render("")
	return style.Render(left + gap + right)
}
