package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/tui/components"
	"github.com/theirongolddev/spendlog/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// emptyMessage is shown when no expense matches the active filter.
const emptyMessage = "No expenses for this filter"

// visible returns the expenses shown under the active filter, newest first.
func (a App) visible() []model.Expense {
	return a.svc.View(a.st).Expenses
}

// selected returns the expense under the cursor.
func (a App) selected() (model.Expense, bool) {
	vis := a.visible()
	if a.cursor < 0 || a.cursor >= len(vis) {
		return model.Expense{}, false
	}
	return vis[a.cursor], true
}

func (a *App) clampCursor() {
	n := len(a.visible())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) setFilter(f model.Filter) {
	a.st = a.svc.SetFilter(a.st, f)
	a.cursor = 0
}

// updateList handles keys while the expense list has focus.
func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	n := len(a.visible())

	switch key {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < n-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "g", "home":
		a.cursor = 0
		return a, nil
	case "G", "end":
		a.cursor = n - 1
		a.clampCursor()
		return a, nil
	case "f", "right":
		a.setFilter(a.st.Filter.Next())
		return a, nil
	case "left":
		a.setFilter(a.st.Filter.Next().Next())
		return a, nil
	case "e", "enter":
		e, ok := a.selected()
		if !ok {
			return a, nil
		}
		a.st = a.svc.StartEditing(a.st, e)
		a.syncInputs()
		a.focus = focusForm
		a.status = fmt.Sprintf("editing #%d", e.ID)
		return a, a.focusField(fieldAmount)
	case "d", "x", "delete":
		e, ok := a.selected()
		if !ok || a.busy {
			return a, nil
		}
		return a.openConfirm(e)
	case "esc":
		if a.st.Editing {
			a.st = a.svc.CancelEdit(a.st)
			a.syncInputs()
			a.status = "edit cancelled"
		}
		return a, nil
	case "tab", "a", "i":
		a.focus = focusForm
		return a, a.focusField(fieldAmount)
	}

	if len(msg.Runes) == 1 {
		if f, ok := components.FilterByKey(msg.Runes[0]); ok {
			a.setFilter(f)
		}
	}
	return a, nil
}

func (a App) renderSummary(w int) string {
	sum := a.svc.View(a.st)

	hint := cli.FormatCount(len(sum.Expenses))
	if sum.Empty() {
		hint = emptyMessage
	}
	card := components.TotalCard(sum.Label, cli.FormatAmount(sum.Total, a.currency), hint, w)

	if !a.budget.IsPositive() {
		return card
	}

	t := theme.Active
	status := a.budgetStatus()
	detail := cli.FormatAmount(status.Remaining, a.currency) + " left"
	if status.Over() {
		detail = cli.FormatAmount(status.Remaining.Neg(), a.currency) + " over"
	}
	detail += fmt.Sprintf(" · %dd", status.DaysLeft)

	barW := components.CardInnerWidth(w) - 8 - 6 - lipgloss.Width(detail) - 2
	if barW < 8 {
		barW = 8
	}
	bar := components.BudgetBar("Budget", status.UsedPercent, detail, 7, barW)
	row := lipgloss.NewStyle().Background(t.Surface).Render(bar)

	return lipgloss.JoinVertical(lipgloss.Left, card, components.ContentCard("", row, w))
}

func (a App) renderCategories(w int) string {
	t := theme.Active
	sum := a.svc.View(a.st)

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	if len(sum.ByCategory) == 0 {
		return components.ContentCard("By Category", dimStyle.Render(emptyMessage), w)
	}

	inner := components.CardInnerWidth(w)
	nameW := 14
	amtW := 12
	barW := inner - nameW - amtW - 2
	if barW < 4 {
		barW = 4
	}

	total := sum.Total.InexactFloat64()
	var rows []string
	for _, c := range sum.ByCategory {
		share := 0.0
		if total > 0 {
			share = c.Amount.InexactFloat64() / total
		}
		amt := cli.FormatAmount(c.Amount, a.currency)
		rows = append(rows,
			nameStyle.Render(padRight(cli.Truncate(c.Category, nameW-1), nameW))+
				components.ShareBar(share, barW)+space.Render(" ")+
				amountStyle.Render(fmt.Sprintf("%*s", amtW, amt)))
	}
	return components.ContentCard("By Category", strings.Join(rows, "\n"), w)
}

func (a App) renderList(w, h int) string {
	t := theme.Active
	vis := a.visible()

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	editStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	title := fmt.Sprintf("Expenses · %s", a.st.Filter.Title())
	if len(vis) == 0 {
		body := dimStyle.Render(emptyMessage)
		if a.focus == focusList {
			return components.FocusedCard(title, body, w)
		}
		return components.ContentCard(title, body, w)
	}

	inner := components.CardInnerWidth(w)
	dateW, amtW, catW := 10, 12, 14
	noteW := inner - dateW - amtW - catW - 3
	if noteW < 0 {
		noteW = 0
	}

	rowsAvail := h - 3 // border + title
	if rowsAvail < 1 {
		rowsAvail = 1
	}
	offset := 0
	if a.cursor >= rowsAvail {
		offset = a.cursor - rowsAvail + 1
	}
	end := offset + rowsAvail
	if end > len(vis) {
		end = len(vis)
	}

	var rows []string
	for i := offset; i < end; i++ {
		e := vis[i]
		category := e.Category
		if strings.TrimSpace(category) == "" {
			category = model.UncategorizedLabel
		}
		line := fmt.Sprintf("%-*s %*s %-*s %s",
			dateW, cli.FormatDate(e.Date),
			amtW, cli.FormatAmount(e.Amount, a.currency),
			catW, cli.Truncate(category, catW),
			cli.Truncate(e.Note, noteW))
		line = padRight(line, inner)

		style := rowStyle
		switch {
		case a.st.Editing && e.ID == a.st.EditingID:
			style = editStyle
		case i == a.cursor && a.focus == focusList:
			style = selStyle
		}
		rows = append(rows, style.Render(line))
	}

	body := strings.Join(rows, "\n")
	if a.focus == focusList {
		return components.FocusedCard(title, body, w)
	}
	return components.ContentCard(title, body, w)
}
