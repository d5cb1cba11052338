package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var giveCmd = &cobra.Command{
	Use:   "give <user-id> <amount>",
	Short: "Give raffle entries to a member",
	Args:  cobra.ExactArgs(2),
	RunE:  runGive,
}

var removeCmd = &cobra.Command{
	Use:   "remove <user-id> <amount>",
	Short: "Remove raffle entries from a member (clamped at zero)",
	Args:  cobra.ExactArgs(2),
	RunE:  runRemove,
}

var mutateReason string

func init() {
	rootCmd.AddCommand(giveCmd)
	rootCmd.AddCommand(removeCmd)

	for _, c := range []*cobra.Command{giveCmd, removeCmd} {
		c.Flags().StringVarP(&mutateReason, "reason", "r", "", "optional reason recorded in the audit trail")
	}
}

func runGive(cmd *cobra.Command, args []string) error {
	svc, store, cfg, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	target, err := parseUserID(args[0])
	if err != nil {
		return err
	}
	amount, err := checkAmount(cfg, args[1])
	if err != nil {
		return err
	}

	newBalance, err := svc.Grant(cmd.Context(), actorID, target, amount, mutateReason)
	if err != nil {
		return fmt.Errorf("give entries: %w", err)
	}

	fmt.Printf("Added +%d entries to %d (new total: %d)\n", amount, target, newBalance)
	if mutateReason != "" {
		fmt.Printf("Reason: %q\n", mutateReason)
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	svc, store, cfg, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	target, err := parseUserID(args[0])
	if err != nil {
		return err
	}
	amount, err := checkAmount(cfg, args[1])
	if err != nil {
		return err
	}

	newBalance, err := svc.Revoke(cmd.Context(), actorID, target, amount, mutateReason)
	if err != nil {
		return fmt.Errorf("remove entries: %w", err)
	}

	fmt.Printf("Removed -%d entries from %d (new total: %d)\n", amount, target, newBalance)
	if mutateReason != "" {
		fmt.Printf("Reason: %q\n", mutateReason)
	}
	return nil
}
