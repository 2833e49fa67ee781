package tui

import (
	"github.com/theirongolddev/spendlog/internal/ledger"
	"github.com/theirongolddev/spendlog/internal/tui/components"
	"github.com/theirongolddev/spendlog/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form fields in tab order.
const (
	fieldAmount = iota
	fieldCategory
	fieldNote
	numFields
)

var fieldLabels = [numFields]string{"Amount", "Category", "Note"}

func newInputs() [numFields]textinput.Model {
	var in [numFields]textinput.Model
	placeholders := [numFields]string{"12.50", "Food", "optional"}
	limits := [numFields]int{16, 48, 120}

	for i := range in {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Prompt = ""
		in[i] = ti
	}
	return in
}

// formValues reads the inputs into a ledger form.
func (a App) formValues() ledger.Form {
	return ledger.Form{
		Amount:   a.inputs[fieldAmount].Value(),
		Category: a.inputs[fieldCategory].Value(),
		Note:     a.inputs[fieldNote].Value(),
	}
}

// syncInputs copies the ledger form back into the inputs, keeping cursors at
// the end of each value.
func (a *App) syncInputs() {
	vals := [numFields]string{a.st.Form.Amount, a.st.Form.Category, a.st.Form.Note}
	for i := range a.inputs {
		if a.inputs[i].Value() != vals[i] {
			a.inputs[i].SetValue(vals[i])
			a.inputs[i].CursorEnd()
		}
	}
}

// focusField moves input focus to field i and blurs the others.
func (a *App) focusField(i int) tea.Cmd {
	a.field = i
	var cmd tea.Cmd
	for j := range a.inputs {
		if j == i && a.focus == focusForm {
			cmd = a.inputs[j].Focus()
		} else {
			a.inputs[j].Blur()
		}
	}
	return cmd
}

func (a *App) blurInputs() {
	for j := range a.inputs {
		a.inputs[j].Blur()
	}
}

// updateForm handles keys while the form has focus.
func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return a.submit()
	case "esc":
		if a.st.Editing {
			a.st = a.svc.CancelEdit(a.st)
			a.syncInputs()
			a.status = "edit cancelled"
			return a, a.focusField(fieldAmount)
		}
		a.focus = focusList
		a.blurInputs()
		return a, nil
	case "tab", "down":
		if a.field == numFields-1 && msg.String() == "tab" {
			a.focus = focusList
			a.blurInputs()
			return a, nil
		}
		return a, a.focusField((a.field + 1) % numFields)
	case "shift+tab", "up":
		return a, a.focusField((a.field - 1 + numFields) % numFields)
	}

	var cmd tea.Cmd
	a.inputs[a.field], cmd = a.inputs[a.field].Update(msg)
	a.st.Form = a.formValues()
	return a, cmd
}

// submit dispatches Add or SaveEdit for the current form. Only one storage
// command runs at a time.
func (a App) submit() (tea.Model, tea.Cmd) {
	if a.busy {
		return a, nil
	}
	a.st.Form = a.formValues()
	a.busy = true
	a.err = nil
	if a.st.Editing {
		return a, saveCmd(a.svc, a.st)
	}
	return a, addCmd(a.svc, a.st)
}

func (a App) renderForm(w int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	activeLabel := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	boxStyle := lipgloss.NewStyle().Background(t.SurfaceHover).Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	inner := w - 4
	inputW := inner - 10
	if inputW < 10 {
		inputW = 10
	}

	var rows []string
	for i := range a.inputs {
		label := labelStyle
		if a.focus == focusForm && a.field == i {
			label = activeLabel
		}
		in := a.inputs[i]
		in.Width = inputW - 1
		rows = append(rows, label.Render(padRight(fieldLabels[i], 9))+" "+boxStyle.Width(inputW).Render(in.View()))
	}

	hint := "enter add · tab next field"
	title := "New Expense"
	if a.st.Editing {
		title = "Edit Expense"
		hint = "enter save · esc cancel"
	}
	rows = append(rows, dimStyle.Render(hint))

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if a.focus == focusForm {
		return components.FocusedCard(title, body, w)
	}
	return components.ContentCard(title, body, w)
}

func padRight(s string, w int) string {
	for lipgloss.Width(s) < w {
		s += " "
	}
	return s
}
