package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var entriesCmd = &cobra.Command{
	Use:   "entries <user-id>",
	Short: "Show how many entries a member holds",
	Args:  cobra.ExactArgs(1),
	RunE:  runEntries,
}

var oddsCmd = &cobra.Command{
	Use:   "odds <user-id>",
	Short: "Show a member's current odds against the pool",
	Args:  cobra.ExactArgs(1),
	RunE:  runOdds,
}

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Show total entries and participants in the pool",
	Args:  cobra.NoArgs,
	RunE:  runTotal,
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the members holding the most entries",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboard,
}

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show when entries were last reset",
	Args:  cobra.NoArgs,
	RunE:  runMonth,
}

func init() {
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(oddsCmd)
	rootCmd.AddCommand(totalCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(monthCmd)
}

func runEntries(cmd *cobra.Command, args []string) error {
	svc, store, _, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	amt, err := svc.Balance(cmd.Context(), userID)
	if err != nil {
		return fmt.Errorf("get balance: %w", err)
	}

	fmt.Printf("%d currently has %d entries\n", userID, amt)
	return nil
}

func runOdds(cmd *cobra.Command, args []string) error {
	svc, store, _, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	userID, err := parseUserID(args[0])
	if err != nil {
		return err
	}

	o, err := svc.Odds(cmd.Context(), userID)
	if err != nil {
		return fmt.Errorf("get odds: %w", err)
	}

	if o.Mine <= 0 {
		fmt.Printf("%d has 0 entries\n", userID)
		return nil
	}
	if o.Total <= 0 {
		fmt.Println("The pool is empty right now, no entries yet")
		return nil
	}

	fmt.Printf("%d has %d of %d total entries (%.2f%%)\n", userID, o.Mine, o.Total, o.Percent)
	return nil
}

func runTotal(cmd *cobra.Command, args []string) error {
	svc, store, _, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := svc.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("get totals: %w", err)
	}

	if st.TotalEntries == 0 {
		fmt.Println("The pool is empty right now, no entries yet")
		return nil
	}

	fmt.Printf("%d total entries across %d participants\n", st.TotalEntries, st.Participants)
	return nil
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	svc, store, cfg, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	top, err := svc.Leaderboard(cmd.Context(), cfg.Raffle.LeaderboardSize)
	if err != nil {
		return fmt.Errorf("get leaderboard: %w", err)
	}

	if len(top) == 0 {
		fmt.Println("No entries yet")
		return nil
	}

	fmt.Println("Entries leaderboard")
	for i, e := range top {
		fmt.Printf("%2d. %d: %d entries\n", i+1, e.UserID, e.Amount)
	}
	return nil
}

func runMonth(cmd *cobra.Command, args []string) error {
	svc, store, _, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	last, err := svc.LastReset(cmd.Context())
	if err != nil {
		return fmt.Errorf("get last reset: %w", err)
	}

	fmt.Printf("Last reset (UTC): %s\n", last.UTC().Format("2006-01-02 15:04"))
	return nil
}
