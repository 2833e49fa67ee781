package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/theirongolddev/spendlog/internal/config"
	applog "github.com/theirongolddev/spendlog/internal/log"
	"github.com/theirongolddev/spendlog/internal/tui"
	"github.com/theirongolddev/spendlog/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive expense screen",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Log to a file; stderr would draw over the alt screen.
	logPath := filepath.Join(config.DataDir(), "spendlog.log")
	f, err := applog.OpenFile(logPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	lc := applog.DefaultConfig()
	lc.Level, _ = cfg.LogLevel()
	lc.Output = f
	fileLog := applog.New(lc)
	applog.SetDefault(fileLog)
	applog.WithComponent(fileLog, applog.ComponentApp).Info("starting tui",
		applog.FieldPath, cfg.ResolvedDBPath())

	svc, st, err := openLedger(cmd.Context(), fileLog)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	filter, _ := cfg.Filter()
	app := tui.NewApp(svc, tui.Options{
		Config:    cfg,
		Filter:    filter,
		NeedSetup: !config.Exists(),
		Logger:    fileLog,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
