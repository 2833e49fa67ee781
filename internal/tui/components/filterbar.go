package components

import (
	"strings"

	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// FilterKeys maps the number keys to filters, in display order.
var FilterKeys = []struct {
	Key    rune
	Filter model.Filter
}{
	{'1', model.FilterAll},
	{'2', model.FilterWeek},
	{'3', model.FilterMonth},
}

// RenderFilterBar renders the filter selector with the active filter
// highlighted and shortcut keys on the others.
func RenderFilterBar(active model.Filter, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Bold(true).
		Padding(0, 1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Padding(0, 1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	sep := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	var parts []string
	for _, fk := range FilterKeys {
		if fk.Filter == active {
			parts = append(parts, activeStyle.Render(fk.Filter.Title()))
			continue
		}
		parts = append(parts, inactiveStyle.Render(fk.Filter.Title())+
			dimKeyStyle.Render("[")+keyStyle.Render(string(fk.Key))+dimKeyStyle.Render("]"))
	}

	bar := " " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(bar)
}

// FilterByKey returns the filter bound to key.
func FilterByKey(key rune) (model.Filter, bool) {
	for _, fk := range FilterKeys {
		if fk.Key == key {
			return fk.Filter, true
		}
	}
	return model.FilterAll, false
}
