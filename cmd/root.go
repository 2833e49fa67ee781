// Package cmd implements the spendlog CLI commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/theirongolddev/spendlog/internal/config"
	"github.com/theirongolddev/spendlog/internal/ledger"
	applog "github.com/theirongolddev/spendlog/internal/log"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDB       string
	flagFilter   string
	flagQuiet    bool
	flagLogLevel string
)

// Resolved once per invocation by loadSettings. logger carries no component;
// subsystems tag their own children.
var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "spendlog",
	Short:             "Personal expense tracker",
	Long:              "Track expenses by amount, category and note, with weekly and monthly totals.",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE:              runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagFilter, "filter", "f", "", "Time window: all, week or month")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error")
}

// loadSettings resolves configuration with precedence flag > env > file >
// default and builds the stderr logger.
func loadSettings(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	if flagDB != "" {
		loaded.General.DBPath = flagDB
	}
	if flagFilter != "" {
		loaded.General.DefaultFilter = flagFilter
	}
	if flagLogLevel != "" {
		loaded.Log.Level = flagLogLevel
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	lc := applog.DefaultConfig()
	lc.Level, _ = cfg.LogLevel()
	logger = applog.New(lc)
	applog.SetDefault(logger)
	applog.WithComponent(logger, applog.ComponentConfig).Debug("configuration loaded",
		applog.FieldPath, config.Path(), applog.FieldFilter, cfg.General.DefaultFilter)
	return nil
}

// openLedger opens the configured database and wraps it in a ledger service.
// The caller closes the returned store.
func openLedger(ctx context.Context, l *slog.Logger) (*ledger.Service, *store.Store, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	st, err := store.Open(ctx, cfg.ResolvedDBPath(),
		store.WithLogger(applog.WithComponent(l, applog.ComponentStorage)))
	if err != nil {
		return nil, nil, err
	}

	svc := ledger.NewService(st,
		ledger.WithLocation(loc),
		ledger.WithLogger(applog.WithComponent(l, applog.ComponentLedger)))
	return svc, st, nil
}

// loadState opens the ledger and loads every expense under the active filter.
func loadState(ctx context.Context) (*ledger.Service, *store.Store, ledger.State, error) {
	svc, st, err := openLedger(ctx, logger)
	if err != nil {
		return nil, nil, ledger.State{}, err
	}
	filter, _ := cfg.Filter()
	state, err := svc.Reload(ctx, ledger.State{Filter: filter})
	if err != nil {
		_ = st.Close()
		return nil, nil, ledger.State{}, err
	}
	applog.WithComponent(logger, applog.ComponentCLI).Debug("records loaded",
		applog.FieldCount, len(state.Expenses), applog.FieldFilter, filter.String())
	return svc, st, state, nil
}

// info prints to stdout unless --quiet.
func info(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Printf(format, args...)
}

// notice explains a no-op on stderr unless --quiet.
func notice(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

func filterTitle(f model.Filter) string {
	if f == model.FilterAll {
		return "All Time"
	}
	return f.Title()
}

func cfgLocation() *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		return time.Local
	}
	return loc
}
