package cmd

import (
	"fmt"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/pipeline"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Per-day totals for the selected window",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	svc, st, state, err := loadState(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	days := pipeline.AggregateDays(state.Expenses, state.Filter, svc.Now())

	fmt.Println()
	fmt.Println(cli.RenderTitle("DAILY SPENDING  " + filterTitle(state.Filter)))
	fmt.Println()

	if len(days) == 0 {
		fmt.Println("  " + cli.RenderMuted("No expenses for this filter"))
		return nil
	}

	currency := cfg.General.Currency
	rows := make([][]string, 0, len(days))
	// Sparkline runs oldest to newest.
	spark := make([]float64, len(days))
	for i, d := range days {
		rows = append(rows, []string{
			d.Date.Format(model.DateLayout),
			cli.FormatDayOfWeek(int(d.Date.Weekday())),
			cli.FormatNumber(int64(d.Count)),
			cli.FormatAmount(d.Total, currency),
		})
		spark[len(days)-1-i] = d.Total.InexactFloat64()
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Expenses", "Total"},
		Rows:    rows,
	}))
	fmt.Printf("\n  %s\n", cli.RenderSparkline(spark))

	return nil
}
