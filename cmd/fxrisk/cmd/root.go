package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxrisk/analysis"
	"github.com/rustyeddy/fxrisk/config"
	"github.com/rustyeddy/fxrisk/forward"
	"github.com/rustyeddy/fxrisk/logging"
	"github.com/rustyeddy/fxrisk/rates"
)

var rootCmd = &cobra.Command{
	Use:   "fxrisk",
	Short: "Forward rate and P&L analytics for fixed-rate trade-finance contracts",
	Long: `fxrisk values fixed-rate letters of credit against daily FX spot rates.

It provides tools for:
  - Generating interest-rate-parity forward curves over a contract's life
  - Daily close-out and expected P&L series in the quote currency
  - Risk aggregates: max profit/loss, volatility, value-at-risk
  - Scenario analysis under uniform rate shocks
  - Fetching, importing and caching spot rates (CSV, archives, remote API)
  - Serving the analytics over an HTTP API

Complete documentation is available at https://github.com/rustyeddy/fxrisk`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var cfgPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (YAML or JSON); defaults apply when omitted")
}

// loadConfig reads the --config file or falls back to defaults.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFromFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log, err := logging.New(cfg.Log)
	if err != nil {
		log = logrus.StandardLogger()
		log.WithError(err).Warn("bad log config, using defaults")
	}
	return log
}

// openProvider builds the rate provider the config names. The returned
// closer is a no-op for sources that hold no resources.
func openProvider(cfg *config.Config, log *logrus.Logger) (rates.Provider, io.Closer, error) {
	pair := rates.NewPair(cfg.Pair.Base, cfg.Pair.Quote)

	switch cfg.Rates.Source {
	case "csv":
		series, err := rates.LoadCSV(cfg.Rates.CSVPath, pair)
		if err != nil {
			return nil, nil, fmt.Errorf("load rates csv: %w", err)
		}
		return series, nopCloser{}, nil
	case "sqlite":
		store, err := rates.OpenStore(cfg.Rates.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open rate store: %w", err)
		}
		return store, store, nil
	case "remote":
		return rates.NewClient(cfg.Rates.APIURL, log), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown rates source %q", cfg.Rates.Source)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func pipelineParams(cfg *config.Config) analysis.Params {
	return analysis.Params{
		Rates: forward.InterestRates{
			Base:  cfg.Interest.BaseRate,
			Quote: cfg.Interest.QuoteRate,
		},
		Confidence: cfg.Analysis.Confidence,
	}
}

// writeOut writes to path, or stdout when path is empty or "-".
func writeOut(path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return write(f)
}
