package cmd

import (
	"fmt"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/pipeline"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Total and per-category spend for the selected window",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	svc, st, state, err := loadState(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	sum := svc.View(state)
	currency := cfg.General.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENDING  " + filterTitle(state.Filter)))
	fmt.Println()
	fmt.Println(cli.RenderTotal(sum.Label, cli.FormatAmount(sum.Total, currency)))
	fmt.Println()

	if sum.Empty() {
		fmt.Println("  " + cli.RenderMuted("No expenses for this filter"))
	} else {
		total := sum.Total.InexactFloat64()
		maxAmt := sum.ByCategory[0].Amount.InexactFloat64()

		rows := make([][]string, 0, len(sum.ByCategory))
		for _, c := range sum.ByCategory {
			share := 0.0
			if total > 0 {
				share = c.Amount.InexactFloat64() / total
			}
			rows = append(rows, []string{
				c.Category,
				cli.FormatNumber(int64(c.Count)),
				cli.FormatAmount(c.Amount, currency),
				cli.FormatPercent(share),
				cli.RenderHorizontalBar(c.Amount.InexactFloat64(), maxAmt, 20),
			})
		}

		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "By Category",
			Headers: []string{"Category", "Count", "Amount", "Share", ""},
			Rows:    rows,
		}))
	}

	if cfg.Budget.MonthlyLimit != nil {
		limit := decimal.NewFromFloat(*cfg.Budget.MonthlyLimit)
		b := pipeline.Budget(state.Expenses, limit, svc.Now())

		fmt.Println()
		fmt.Println("  " + cli.RenderBudgetBar(b.UsedPercent, 30,
			cli.FormatAmount(b.Spent, currency), cli.FormatAmount(b.Limit, currency)))
		if b.Over() {
			fmt.Println("  " + cli.RenderWarning(fmt.Sprintf("Over budget by %s", cli.FormatAmount(b.Remaining.Neg(), currency))))
		} else {
			fmt.Printf("  %s left, %d days to go\n", cli.FormatAmount(b.Remaining, currency), b.DaysLeft)
		}
	}

	return nil
}
