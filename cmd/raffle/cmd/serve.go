package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/raffle/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recovery web server",
	Long: `Run the health and database-download endpoints. This keeps a port
open for platform health checks and lets an operator fetch the raffle
database when the chat platform is unreachable.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr := cfg.Web.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	if addr == "" {
		addr = ":10000"
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &web.Server{Addr: addr, DBPath: cfg.Database.Path}
	fmt.Printf("Serving recovery endpoints on %s (db: %s)\n", addr, cfg.Database.Path)
	return srv.ListenAndServe(ctx)
}
