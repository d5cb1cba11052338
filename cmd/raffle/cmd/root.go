package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/raffle/config"
	"github.com/rustyeddy/raffle/ledger"
	"github.com/rustyeddy/raffle/raffle"
)

var rootCmd = &cobra.Command{
	Use:   "raffle",
	Short: "Community raffle ledger and weighted drawing engine",
	Long: `Raffle tracks weighted lottery entries for community members and draws
winners with odds proportional to entries held.

It provides tools for:
  - Granting and revoking entries, singly or in bulk
  - Pool totals, per-member odds and a leaderboard
  - Weighted winner draws with a spinning reveal
  - Monthly resets with a tracked reset epoch
  - An append-only audit trail of every mutation`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	cfgPath string
	dbPath  string
	actorID int64
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "", "path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&actorID, "actor", 0, "operator user ID recorded in the audit trail")
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.LoadFromFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	return cfg, nil
}

// openService wires the store and service together. Callers must Close the
// returned store.
func openService() (*raffle.Service, *ledger.SQLite, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	store, err := ledger.NewSQLite(cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open db: %w", err)
	}

	svc := raffle.New(store, cfg.Raffle.GuildID, nil)
	return svc, store, cfg, nil
}

func parseUserID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return id, nil
}

// checkAmount enforces the per-mutation range the ledger core trusts its
// callers to validate.
func checkAmount(cfg *config.Config, arg string) (int64, error) {
	amount, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", arg)
	}
	if amount < 1 || amount > cfg.Raffle.MaxAmount {
		return 0, fmt.Errorf("amount must be between 1 and %d", cfg.Raffle.MaxAmount)
	}
	return amount, nil
}
