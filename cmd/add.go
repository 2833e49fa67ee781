package cmd

import (
	"strings"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/ledger"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add AMOUNT CATEGORY [NOTE...]",
	Short: "Record an expense dated today",
	Example: `  spendlog add 12.50 Food lunch with Sam
  spendlog add 3 Transport`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, st, state, err := loadState(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	state.Form = ledger.Form{
		Amount:   args[0],
		Category: args[1],
		Note:     strings.Join(args[2:], " "),
	}

	// The handler ignores invalid input silently; say why here.
	draft, err := ledger.ParseForm(state.Form)
	if err != nil {
		notice("  Not added: %s\n", err)
		return nil
	}

	if _, err := svc.Add(ctx, state); err != nil {
		return err
	}

	info("  Added %s %s on %s\n",
		cli.FormatAmount(draft.Amount, cfg.General.Currency), draft.Category, svc.Today())
	return nil
}
