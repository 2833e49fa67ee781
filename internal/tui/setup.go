package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/spendlog/internal/config"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the first-run form. Budget is kept as text
// so an empty answer means no limit.
type SetupValues struct {
	Filter   string
	Theme    string
	Currency string
	Budget   string
}

// SetupValuesFrom prefills the form from an existing config.
func SetupValuesFrom(cfg config.Config) SetupValues {
	v := SetupValues{
		Filter:   cfg.General.DefaultFilter,
		Theme:    cfg.Appearance.Theme,
		Currency: cfg.General.Currency,
	}
	if cfg.Budget.MonthlyLimit != nil {
		v.Budget = strconv.FormatFloat(*cfg.Budget.MonthlyLimit, 'f', -1, 64)
	}
	return v
}

func parseBudget(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return nil, errors.New("enter a positive number or leave blank")
	}
	return &f, nil
}

// Apply writes the answers into cfg.
func (v SetupValues) Apply(cfg *config.Config) error {
	if _, err := model.ParseFilter(v.Filter); err != nil {
		return err
	}
	limit, err := parseBudget(v.Budget)
	if err != nil {
		return fmt.Errorf("monthly budget: %w", err)
	}

	cfg.General.DefaultFilter = v.Filter
	cfg.Appearance.Theme = v.Theme
	cfg.General.Currency = strings.TrimSpace(v.Currency)
	cfg.Budget.MonthlyLimit = limit
	return nil
}

// NewSetupForm builds the setup questions bound to vals. The TUI embeds it on
// first run and `spendlog setup` runs it standalone.
func NewSetupForm(vals *SetupValues) *huh.Form {
	filterOpts := make([]huh.Option[string], 0, len(model.Filters))
	for _, f := range model.Filters {
		filterOpts = append(filterOpts, huh.NewOption(f.Title(), f.String()))
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to spendlog!").
				Description("Let's set up a few things.\nRun `spendlog setup` anytime to change them."),

			huh.NewSelect[string]().
				Title("Default filter").
				Description("Window shown when spendlog starts.").
				Options(filterOpts...).
				Value(&vals.Filter),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),

			huh.NewInput().
				Title("Currency symbol").
				Placeholder("$").
				CharLimit(4).
				Value(&vals.Currency),

			huh.NewInput().
				Title("Monthly budget").
				Description("Leave blank for no limit.").
				Placeholder("500").
				Validate(func(s string) error {
					_, err := parseBudget(s)
					return err
				}).
				Value(&vals.Budget),
		),
	).WithShowHelp(false)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.finishSetup(); err != nil {
			a.err = err
		}
		a.needSetup = false
		a.setupForm = nil
		return a, a.focusField(fieldAmount)
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, a.focusField(fieldAmount)
	}

	return a, cmd
}

// finishSetup applies the answers to the running screen and saves them.
func (a *App) finishSetup() error {
	cfg := a.cfg
	if err := a.setupVals.Apply(&cfg); err != nil {
		return err
	}

	theme.SetActive(cfg.Appearance.Theme)
	a.currency = cfg.General.Currency
	a.budget = limitOf(cfg)
	if f, err := cfg.Filter(); err == nil {
		a.setFilter(f)
	}
	a.cfg = cfg

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	a.status = "saved " + config.Path()
	return nil
}
