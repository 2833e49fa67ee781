package cmd

import (
	"fmt"

	"github.com/theirongolddev/spendlog/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:       %s\n", cfg.ResolvedDBPath())
	fmt.Printf("    Default filter: %s\n", cfg.General.DefaultFilter)
	tz := cfg.General.Timezone
	if tz == "" {
		tz = "local (" + cfgLocation().String() + ")"
	}
	fmt.Printf("    Timezone:       %s\n", tz)
	fmt.Printf("    Currency:       %s\n", cfg.General.Currency)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Budget]")
	if cfg.Budget.MonthlyLimit != nil {
		fmt.Printf("    Monthly limit: %s%.2f\n", cfg.General.Currency, *cfg.Budget.MonthlyLimit)
	} else {
		fmt.Println("    Monthly limit: not set")
	}
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Printf("    TUI log file: %s/spendlog.log\n", config.DataDir())
	fmt.Println()

	fmt.Printf("  Environment overrides: %s, %s, %s\n", config.EnvDBPath, config.EnvTimezone, config.EnvLogLevel)
	fmt.Println("  Run `spendlog setup` to reconfigure.")
	return nil
}
