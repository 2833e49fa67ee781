package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/spendlog/internal/config"
	"github.com/theirongolddev/spendlog/internal/ledger"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/store"
	"github.com/theirongolddev/spendlog/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// Thursday; the week runs Mon 12 Oct to Sun 18 Oct.
var fixedNow = time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T, storage ledger.Storage) *ledger.Service {
	t.Helper()
	return ledger.NewService(storage,
		ledger.WithClock(func() time.Time { return fixedNow }),
		ledger.WithLocation(time.UTC))
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newLoadedApp(t *testing.T, svc *ledger.Service, opts Options) App {
	t.Helper()
	if opts.Config.General.Currency == "" {
		opts.Config = config.DefaultConfig()
	}
	a := NewApp(svc, opts)
	a = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	return update(t, a, loadCmd(svc, a.st)())
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	return m.(App)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		a = update(t, a, keyMsg(k))
	}
	return a
}

func typeText(t *testing.T, a App, s string) App {
	t.Helper()
	for _, r := range s {
		a = update(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return a
}

// submit presses enter and runs the resulting storage command to completion.
func submit(t *testing.T, a App) App {
	t.Helper()
	m, cmd := a.Update(keyMsg("enter"))
	a = m.(App)
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	if !a.busy {
		t.Fatal("app not busy while command in flight")
	}
	return update(t, a, cmd())
}

func addExpense(t *testing.T, a App, amount, category, note string) App {
	t.Helper()
	a = typeText(t, a, amount)
	a = press(t, a, "tab")
	a = typeText(t, a, category)
	a = press(t, a, "tab")
	a = typeText(t, a, note)
	return submit(t, a)
}

func TestKeysIgnoredBeforeLoad(t *testing.T) {
	a := NewApp(newService(t, openStore(t)), Options{Config: config.DefaultConfig()})
	a = typeText(t, a, "12")
	if got := a.inputs[fieldAmount].Value(); got != "" {
		t.Fatalf("amount = %q before load, want empty", got)
	}
}

func TestAdd_ClearsFormAndShowsTotal(t *testing.T) {
	a := newLoadedApp(t, newService(t, openStore(t)), Options{Filter: model.FilterMonth})

	a = addExpense(t, a, "12.50", "Food", "lunch")

	if len(a.st.Expenses) != 1 {
		t.Fatalf("expenses = %d, want 1", len(a.st.Expenses))
	}
	e := a.st.Expenses[0]
	if e.Date != "2026-10-15" || e.Category != "Food" || e.Note != "lunch" {
		t.Fatalf("stored %+v", e)
	}
	for i := range a.inputs {
		if a.inputs[i].Value() != "" {
			t.Errorf("input %d = %q after add, want cleared", i, a.inputs[i].Value())
		}
	}
	if a.status != "expense added" {
		t.Errorf("status = %q", a.status)
	}

	view := a.View()
	for _, want := range []string{"Total This Month", "$12.50", "Food"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAdd_InvalidInputKeepsForm(t *testing.T) {
	a := newLoadedApp(t, newService(t, openStore(t)), Options{})

	a = typeText(t, a, "abc")
	a = press(t, a, "tab")
	a = typeText(t, a, "Food")
	a = submit(t, a)

	if len(a.st.Expenses) != 0 {
		t.Fatalf("invalid amount stored %d expenses", len(a.st.Expenses))
	}
	if got := a.inputs[fieldAmount].Value(); got != "abc" {
		t.Errorf("amount input = %q, want kept", got)
	}
	if got := a.inputs[fieldCategory].Value(); got != "Food" {
		t.Errorf("category input = %q, want kept", got)
	}
	if a.status != "" || a.err != nil {
		t.Errorf("validation failure should be silent, status=%q err=%v", a.status, a.err)
	}
}

func TestSubmitWhileBusyIsIgnored(t *testing.T) {
	a := newLoadedApp(t, newService(t, openStore(t)), Options{})
	a = typeText(t, a, "5")
	a = press(t, a, "tab")
	a = typeText(t, a, "Coffee")

	m, first := a.Update(keyMsg("enter"))
	a = m.(App)
	if first == nil {
		t.Fatal("first enter produced no command")
	}
	m, second := a.Update(keyMsg("enter"))
	a = m.(App)
	if second != nil {
		t.Fatal("second enter dispatched while busy")
	}

	a = update(t, a, first())
	if a.busy || len(a.st.Expenses) != 1 {
		t.Fatalf("busy=%v expenses=%d", a.busy, len(a.st.Expenses))
	}
}

func TestEditStartedWhileAddInFlightSurvivesResult(t *testing.T) {
	a := newLoadedApp(t, newService(t, openStore(t)), Options{})
	a = addExpense(t, a, "3", "Bus", "")

	a = typeText(t, a, "8")
	a = press(t, a, "tab")
	a = typeText(t, a, "Lunch")
	m, cmd := a.Update(keyMsg("enter"))
	a = m.(App)
	if cmd == nil {
		t.Fatal("enter produced no command")
	}

	a = press(t, a, "esc", "j", "e")
	if !a.st.Editing || a.st.EditingID != 1 {
		t.Fatalf("before result: editing=%v id=%d", a.st.Editing, a.st.EditingID)
	}

	a = update(t, a, cmd())
	if !a.st.Editing || a.st.EditingID != 1 {
		t.Fatalf("after result: editing=%v id=%d", a.st.Editing, a.st.EditingID)
	}
	if got := a.inputs[fieldAmount].Value(); got != "3" {
		t.Fatalf("edit form amount = %q, want 3", got)
	}
	if len(a.st.Expenses) != 2 {
		t.Fatalf("expenses = %d, want 2", len(a.st.Expenses))
	}
}

func TestTypingWhileAddInFlightIsKept(t *testing.T) {
	a := newLoadedApp(t, newService(t, openStore(t)), Options{})
	a = typeText(t, a, "4")
	a = press(t, a, "tab")
	a = typeText(t, a, "Tea")
	m, cmd := a.Update(keyMsg("enter"))
	a = m.(App)
	if cmd == nil {
		t.Fatal("enter produced no command")
	}

	a = typeText(t, a, "s")
	a = update(t, a, cmd())

	if got := a.inputs[fieldCategory].Value(); got != "Teas" {
		t.Fatalf("category input = %q, want Teas", got)
	}
	if a.st.Form.Category != "Teas" {
		t.Fatalf("form category = %q", a.st.Form.Category)
	}
	if len(a.st.Expenses) != 1 || a.status != "expense added" {
		t.Fatalf("expenses=%d status=%q", len(a.st.Expenses), a.status)
	}
}

func TestEdit_SavesAmountKeepsDate(t *testing.T) {
	a := newLoadedApp(t, newService(t, openStore(t)), Options{})
	a = addExpense(t, a, "12.50", "Food", "")

	a = press(t, a, "esc") // form -> list
	if a.focus != focusList {
		t.Fatal("esc did not move focus to list")
	}
	a = press(t, a, "e")
	if !a.st.Editing || a.focus != focusForm {
		t.Fatalf("editing=%v focus=%v", a.st.Editing, a.focus)
	}
	if got := a.inputs[fieldAmount].Value(); got != "12.5" {
		t.Fatalf("preloaded amount = %q", got)
	}

	a.inputs[fieldAmount].SetValue("10")
	a = submit(t, a)

	if a.st.Editing {
		t.Fatal("still editing after save")
	}
	e := a.st.Expenses[0]
	if !e.Amount.Equal(decimal.NewFromInt(10)) || e.Date != "2026-10-15" {
		t.Fatalf("after edit: %+v", e)
	}
	if a.status != "changes saved" {
		t.Errorf("status = %q", a.status)
	}
}

func TestEdit_EscCancels(t *testing.T) {
	a := newLoadedApp(t, newService(t, openStore(t)), Options{})
	a = addExpense(t, a, "3", "Bus", "")
	a = press(t, a, "esc", "e", "esc")

	if a.st.Editing || a.st.EditingID != 0 {
		t.Fatal("esc did not cancel the edit")
	}
	if a.inputs[fieldAmount].Value() != "" || a.inputs[fieldCategory].Value() != "" {
		t.Fatal("form not cleared on cancel")
	}
}

func TestDelete_Confirmed(t *testing.T) {
	a := newLoadedApp(t, newService(t, openStore(t)), Options{})
	a = addExpense(t, a, "3", "Bus", "")
	a = addExpense(t, a, "4", "Tram", "")
	a = press(t, a, "esc", "d")

	if a.confirm == nil {
		t.Fatal("d did not open the confirmation")
	}
	target := a.confirm.id

	m, cmd := a.closeConfirm(true)
	a = m.(App)
	if cmd == nil {
		t.Fatal("accepting produced no command")
	}
	a = update(t, a, cmd())

	if len(a.st.Expenses) != 1 {
		t.Fatalf("expenses = %d after delete, want 1", len(a.st.Expenses))
	}
	if _, ok := a.st.Find(target); ok {
		t.Fatalf("expense %d still present", target)
	}
	if a.status != "expense deleted" {
		t.Errorf("status = %q", a.status)
	}
}

func TestDelete_Declined(t *testing.T) {
	a := newLoadedApp(t, newService(t, openStore(t)), Options{})
	a = addExpense(t, a, "3", "Bus", "")
	a = press(t, a, "esc", "d", "esc")

	if a.confirm != nil {
		t.Fatal("esc did not close the confirmation")
	}
	if len(a.st.Expenses) != 1 {
		t.Fatal("declined delete removed the expense")
	}
}

func TestFilterKeys(t *testing.T) {
	a := newLoadedApp(t, newService(t, openStore(t)), Options{Filter: model.FilterAll})

	// In the form, digits are input.
	a = typeText(t, a, "2")
	if a.st.Filter != model.FilterAll {
		t.Fatal("digit in form changed the filter")
	}

	a = press(t, a, "esc", "2")
	if a.st.Filter != model.FilterWeek {
		t.Fatalf("filter = %v, want week", a.st.Filter)
	}
	a = press(t, a, "f")
	if a.st.Filter != model.FilterMonth {
		t.Fatalf("filter = %v, want month", a.st.Filter)
	}
	a = press(t, a, "1")
	if a.st.Filter != model.FilterAll {
		t.Fatalf("filter = %v, want all", a.st.Filter)
	}
	if !strings.Contains(a.View(), "All Time Total") {
		t.Error("view missing All Time Total label")
	}
}

func TestEmptyFilterMessage(t *testing.T) {
	a := newLoadedApp(t, newService(t, openStore(t)), Options{Filter: model.FilterWeek})
	view := a.View()
	if !strings.Contains(view, "No expenses for this filter") {
		t.Error("empty state message missing")
	}
	if !strings.Contains(view, "$0.00") {
		t.Error("empty total should read $0.00")
	}
}

func TestBudgetCardShownWhenConfigured(t *testing.T) {
	cfg := config.DefaultConfig()
	limit := 100.0
	cfg.Budget.MonthlyLimit = &limit

	a := newLoadedApp(t, newService(t, openStore(t)), Options{Config: cfg})
	a = addExpense(t, a, "25", "Food", "")

	if got := a.budgetStatus().UsedPercent; got != 0.25 {
		t.Fatalf("UsedPercent = %v, want 0.25", got)
	}
	if !strings.Contains(a.View(), "Budget") {
		t.Error("budget bar missing from view")
	}
}

func TestHelpToggle(t *testing.T) {
	a := newLoadedApp(t, newService(t, openStore(t)), Options{})
	a = press(t, a, "esc", "?")
	if !a.showHelp || !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Fatal("help not shown")
	}
	a = press(t, a, "j")
	if a.showHelp {
		t.Fatal("help not dismissed")
	}
}

type brokenStorage struct{ err error }

func (b brokenStorage) ListAll(context.Context) ([]model.Expense, error) { return nil, nil }
func (b brokenStorage) Insert(context.Context, decimal.Decimal, string, string, string) (int64, error) {
	return 0, b.err
}
func (b brokenStorage) Update(context.Context, int64, decimal.Decimal, string, string) error {
	return b.err
}
func (b brokenStorage) Delete(context.Context, int64) error { return b.err }

func TestStorageErrorShownAndInputKept(t *testing.T) {
	a := newLoadedApp(t, newService(t, brokenStorage{err: errors.New("disk I/O error")}), Options{})
	a = typeText(t, a, "7")
	a = press(t, a, "tab")
	a = typeText(t, a, "Food")
	a = submit(t, a)

	if a.err == nil || !strings.Contains(a.err.Error(), "disk I/O error") {
		t.Fatalf("err = %v", a.err)
	}
	if a.busy {
		t.Fatal("still busy after failure")
	}
	if a.inputs[fieldAmount].Value() != "7" {
		t.Fatal("input lost after storage failure")
	}
	if !strings.Contains(a.View(), "disk I/O error") {
		t.Error("error not in status bar")
	}
}

func TestFinishSetup_AppliesAndSaves(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(func() { theme.SetActive(theme.FlexokiDark.Name) })

	a := newLoadedApp(t, newService(t, openStore(t)), Options{})
	a.setupVals = &SetupValues{Filter: "week", Theme: "terminal", Currency: "€", Budget: "200"}

	if err := a.finishSetup(); err != nil {
		t.Fatalf("finishSetup: %v", err)
	}
	if a.st.Filter != model.FilterWeek || a.currency != "€" {
		t.Fatalf("filter=%v currency=%q", a.st.Filter, a.currency)
	}
	if !a.budget.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("budget = %s", a.budget)
	}
	if theme.Active.Name != "terminal" {
		t.Fatalf("theme = %s", theme.Active.Name)
	}

	saved, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if saved.General.DefaultFilter != "week" || saved.Budget.MonthlyLimit == nil || *saved.Budget.MonthlyLimit != 200 {
		t.Fatalf("saved config %+v", saved)
	}
}

func TestSetupValuesApply(t *testing.T) {
	tests := []struct {
		name    string
		vals    SetupValues
		wantErr bool
	}{
		{"no budget", SetupValues{Filter: "month", Theme: "terminal", Budget: ""}, false},
		{"bad budget", SetupValues{Filter: "month", Theme: "terminal", Budget: "-3"}, true},
		{"bad filter", SetupValues{Filter: "year", Theme: "terminal"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			err := tt.vals.Apply(&cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.Budget.MonthlyLimit != nil {
				t.Fatalf("MonthlyLimit = %v, want nil", *cfg.Budget.MonthlyLimit)
			}
		})
	}
}
