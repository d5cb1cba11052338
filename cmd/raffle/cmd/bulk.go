package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/raffle/raffle"
)

var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Apply one delta across several members at once",
	Long: `Apply a single entry delta to a list of members. Duplicate IDs are
dropped silently, keeping the first occurrence. If the store fails partway,
the successfully processed prefix is reported and kept.

Examples:
  raffle bulk give 5 111 222 333 --reason "raid night"
  raffle bulk remove 2 111 222`,
}

var bulkGiveCmd = &cobra.Command{
	Use:   "give <amount> <user-id>...",
	Short: "Give entries to several members",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBulk(cmd, args, +1)
	},
}

var bulkRemoveCmd = &cobra.Command{
	Use:   "remove <amount> <user-id>...",
	Short: "Remove entries from several members",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBulk(cmd, args, -1)
	},
}

var bulkReason string

func init() {
	rootCmd.AddCommand(bulkCmd)
	bulkCmd.AddCommand(bulkGiveCmd)
	bulkCmd.AddCommand(bulkRemoveCmd)

	bulkCmd.PersistentFlags().StringVarP(&bulkReason, "reason", "r", "", "optional reason recorded in the audit trail")
}

func runBulk(cmd *cobra.Command, args []string, sign int64) error {
	svc, store, cfg, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	amount, err := checkAmount(cfg, args[0])
	if err != nil {
		return err
	}

	targets := make([]int64, 0, len(args)-1)
	for _, arg := range args[1:] {
		id, err := parseUserID(arg)
		if err != nil {
			return err
		}
		targets = append(targets, id)
	}

	results, err := svc.ApplyBulk(cmd.Context(), actorID, targets, sign*amount, bulkReason)

	for _, r := range results {
		fmt.Printf("  %d -> %d entries\n", r.UserID, r.NewBalance)
	}

	var bulkErr *raffle.PartialBulkError
	if errors.As(err, &bulkErr) {
		return fmt.Errorf("aborted at user %d: %d of %d applied (kept): %w",
			bulkErr.FailedID, len(bulkErr.Applied), len(targets), bulkErr.Err)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Applied %+d entries each to %d members\n", sign*amount, len(results))
	return nil
}
