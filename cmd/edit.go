package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/ledger"

	"github.com/spf13/cobra"
)

var flagClearNote bool

var editCmd = &cobra.Command{
	Use:   "edit ID AMOUNT CATEGORY [NOTE...]",
	Short: "Change the amount, category or note of an expense",
	Long: "Rewrites amount and category of the expense with the given id. The note is\n" +
		"replaced when given and kept otherwise. The date never changes.",
	Args: cobra.MinimumNArgs(3),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().BoolVar(&flagClearNote, "clear-note", false, "Remove the existing note")
	rootCmd.AddCommand(editCmd)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid expense id %q", s)
	}
	return id, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc, st, state, err := loadState(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	e, ok := state.Find(id)
	if !ok {
		notice("  No expense #%d\n", id)
		return nil
	}

	state = svc.StartEditing(state, e)
	state.Form.Amount = args[1]
	state.Form.Category = args[2]
	switch {
	case len(args) > 3:
		state.Form.Note = strings.Join(args[3:], " ")
	case flagClearNote:
		state.Form.Note = ""
	}

	draft, err := ledger.ParseForm(state.Form)
	if err != nil {
		notice("  Not saved: %s\n", err)
		return nil
	}

	if _, err := svc.SaveEdit(ctx, state); err != nil {
		return err
	}

	info("  Updated #%d: %s %s\n", id, cli.FormatAmount(draft.Amount, cfg.General.Currency), draft.Category)
	return nil
}
