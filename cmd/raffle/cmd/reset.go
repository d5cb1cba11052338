package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all entries to zero and stamp a new epoch",
	Long: `Zero every member's entries and record the reset time. Entries are
zeroed first and the epoch stamped second, so a partial failure never leaves
a fresh epoch pointing at stale balances.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var resetConfirm bool

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetConfirm, "yes", "y", false, "confirm the reset")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetConfirm {
		return fmt.Errorf("reset zeroes every balance; re-run with --yes to confirm")
	}

	svc, store, _, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := svc.Reset(cmd.Context(), actorID); err != nil {
		return err
	}

	fmt.Println("Monthly reset complete: all entries set to 0")
	return nil
}
