package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagCategory string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List expenses in the selected window, newest first",
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVarP(&flagCategory, "category", "c", "", "Only categories containing this text")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	svc, st, state, err := loadState(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	sum := svc.View(state)
	expenses := sum.Expenses
	if flagCategory != "" {
		expenses = pipeline.FilterByCategory(expenses, flagCategory)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("EXPENSES  " + filterTitle(state.Filter)))
	fmt.Println()

	if len(expenses) == 0 {
		fmt.Println("  " + cli.RenderMuted("No expenses for this filter"))
		return nil
	}

	currency := cfg.General.Currency
	rows := make([][]string, 0, len(expenses)+2)
	for _, e := range expenses {
		category := e.Category
		if category == "" {
			category = model.UncategorizedLabel
		}
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Date,
			dayOf(e.Date),
			category,
			cli.Truncate(e.Note, 32),
			cli.FormatAmount(e.Amount, currency),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "", "", "Total", cli.FormatCount(len(expenses)),
		cli.FormatAmount(pipeline.Total(expenses), currency)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"ID", "Date", "Day", "Category", "Note", "Amount"},
		Rows:     rows,
		LeftCols: 5,
	}))
	return nil
}

func dayOf(date string) string {
	e := model.Expense{Date: date}
	t, ok := e.Day(cfgLocation())
	if !ok {
		return ""
	}
	return cli.FormatDayOfWeek(int(t.Weekday()))
}
