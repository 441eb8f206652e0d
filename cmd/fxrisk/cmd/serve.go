package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxrisk/forward"
	"github.com/rustyeddy/fxrisk/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analytics over HTTP",
	Long: `Start the HTTP API backed by the configured rate source.

Routes:
  GET  /api/health
  POST /api/analyze
  POST /api/scenarios

Example:
  fxrisk serve --config fxrisk.yaml --addr :8080`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr from the config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	provider, closer, err := openProvider(cfg, log)
	if err != nil {
		return err
	}
	defer closer.Close()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := server.New(provider, forward.InterestRates{
		Base:  cfg.Interest.BaseRate,
		Quote: cfg.Interest.QuoteRate,
	}, log)

	if err := srv.Run(addr); err != nil {
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	return nil
}
