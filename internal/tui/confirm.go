package tui

import (
	"fmt"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// deleteConfirm is the pending delete question. It lives behind a pointer so
// the form's bound value survives App copies.
type deleteConfirm struct {
	form *huh.Form
	id   int64
	ok   bool
}

func (a App) openConfirm(e model.Expense) (tea.Model, tea.Cmd) {
	dc := &deleteConfirm{id: e.ID}

	desc := fmt.Sprintf("%s  %s  %s", e.Date, cli.FormatAmount(e.Amount, a.currency), e.Category)
	if e.HasNote() {
		desc += "\n" + e.Note
	}

	dc.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete this expense?").
				Description(desc).
				Affirmative("Delete").
				Negative("Keep").
				Value(&dc.ok),
		),
	).WithShowHelp(false).WithWidth(50)

	a.confirm = dc
	return a, dc.form.Init()
}

func (a App) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		return a.closeConfirm(false)
	}

	form, cmd := a.confirm.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.confirm.form = f
	}

	switch a.confirm.form.State {
	case huh.StateCompleted:
		return a.closeConfirm(a.confirm.ok)
	case huh.StateAborted:
		return a.closeConfirm(false)
	}
	return a, cmd
}

// closeConfirm dismisses the question and, when accepted, dispatches the
// delete.
func (a App) closeConfirm(accepted bool) (tea.Model, tea.Cmd) {
	dc := a.confirm
	a.confirm = nil
	if !accepted || dc == nil || a.busy {
		return a, nil
	}
	a.busy = true
	a.err = nil
	return a, deleteCmd(a.svc, a.st, dc.id)
}

func (a App) viewConfirm() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Padding(1, 2)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(a.confirm.form.View()),
		lipgloss.WithWhitespaceBackground(t.Background))
}
