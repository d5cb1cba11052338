package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/raffle/draw"
)

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Draw a winner weighted by entries held",
	Long: `Draw one winner from the pool, with odds proportional to entries held.

The winner is fixed before the spinning reveal starts; the intermediate
candidates shown are cosmetic resamples and never change the outcome.`,
	Args: cobra.NoArgs,
	RunE: runRoll,
}

func init() {
	rootCmd.AddCommand(rollCmd)
}

func runRoll(cmd *cobra.Command, args []string) error {
	svc, store, cfg, err := openService()
	if err != nil {
		return err
	}
	defer store.Close()

	out, err := svc.Roll(cmd.Context(), actorID)
	if errors.Is(err, draw.ErrEmptyPool) {
		fmt.Println("No one has entries yet, can't roll a winner")
		return nil
	}
	if err != nil {
		return fmt.Errorf("roll winner: %w", err)
	}

	delay, err := cfg.Raffle.ParseRevealDelay()
	if err != nil {
		return err
	}

	fmt.Println("Spinning the wheel...")
	for candidate := range draw.Reveal(cmd.Context(), out.Pool, cfg.Raffle.RevealSteps, delay) {
		fmt.Printf("  -> %d\n", candidate)
	}

	var held int64
	for _, e := range out.Pool {
		if e.UserID == out.WinnerID {
			held = e.Amount
			break
		}
	}

	fmt.Printf("\nWinner: %d (held %d of %d entries across %d participants, draw %s)\n",
		out.WinnerID, held, out.TotalEntries, out.Participants, out.DrawID)
	return nil
}
