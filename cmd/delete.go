package cmd

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID...",
	Aliases: []string{"rm"},
	Short:   "Delete expenses by id",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	ctx := cmd.Context()
	svc, st, state, err := loadState(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	for _, id := range ids {
		_, existed := state.Find(id)
		state, err = svc.Delete(ctx, state, id)
		if err != nil {
			return err
		}
		if existed {
			info("  Deleted #%d\n", id)
		} else {
			notice("  No expense #%d\n", id)
		}
	}
	return nil
}
