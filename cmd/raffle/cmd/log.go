package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [count]",
	Short: "Show recent audit records, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLog,
}

var drawsCmd = &cobra.Command{
	Use:   "draws [count]",
	Short: "Show recent winner draws, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDraws,
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(drawsCmd)
}

func countArg(args []string) (int, error) {
	if len(args) == 0 {
		return 20, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid count %q", args[0])
	}
	return n, nil
}

func runLog(cmd *cobra.Command, args []string) error {
	_, store, _, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := countArg(args)
	if err != nil {
		return err
	}

	recs, err := store.RecentAudit(cmd.Context(), n)
	if err != nil {
		return fmt.Errorf("query audit: %w", err)
	}

	if len(recs) == 0 {
		fmt.Println("No audit records yet")
		return nil
	}

	for _, r := range recs {
		target := "-"
		if r.TargetID.Valid {
			target = strconv.FormatInt(r.TargetID.Int64, 10)
		}
		reason := r.Reason
		if reason == "" {
			reason = "-"
		}
		fmt.Printf("#%d %s actor=%d target=%s delta=%+d reason=%s\n",
			r.ID, r.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			r.ActorID, target, r.Delta, reason)
	}
	return nil
}

func runDraws(cmd *cobra.Command, args []string) error {
	_, store, _, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := countArg(args)
	if err != nil {
		return err
	}

	draws, err := store.RecentDraws(cmd.Context(), n)
	if err != nil {
		return fmt.Errorf("query draws: %w", err)
	}

	if len(draws) == 0 {
		fmt.Println("No draws yet")
		return nil
	}

	for _, d := range draws {
		fmt.Printf("%s %s winner=%d entries=%d participants=%d\n",
			d.ID, d.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			d.WinnerID, d.TotalEntries, d.Participants)
	}
	return nil
}
