package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxrisk/config"
	"github.com/rustyeddy/fxrisk/rates"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Fetch, import and cache spot rate observations",
	Long: `Manage the local spot rate store.

Subcommands:
  fetch  - Pull observations from the remote rate API into the SQLite store
  import - Load observations from a CSV file (.csv or .csv.xz) or a ZIP archive

Examples:
  fxrisk rates fetch --from 2024-01-01 --to 2024-06-28
  fxrisk rates fetch --days 30 --every "0 18 * * 1-5"
  fxrisk rates import --file data/usdinr.csv.xz
  fxrisk rates import --archive data/rates-2024.zip`,
}

var ratesFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Pull observations from the remote rate API into the store",
	RunE:  runRatesFetch,
}

var ratesImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a CSV file or ZIP archive of observations into the store",
	RunE:  runRatesImport,
}

var (
	fetchFrom    string
	fetchTo      string
	fetchDays    int
	fetchEvery   string
	importFile   string
	importArchiv string
)

func init() {
	rootCmd.AddCommand(ratesCmd)
	ratesCmd.AddCommand(ratesFetchCmd)
	ratesCmd.AddCommand(ratesImportCmd)

	ratesFetchCmd.Flags().StringVar(&fetchFrom, "from", "", "start date YYYY-MM-DD")
	ratesFetchCmd.Flags().StringVar(&fetchTo, "to", "", "end date YYYY-MM-DD (default today)")
	ratesFetchCmd.Flags().IntVar(&fetchDays, "days", 0, "fetch the trailing N days instead of --from/--to")
	ratesFetchCmd.Flags().StringVar(&fetchEvery, "every", "", "cron spec; keep running and re-fetch on this schedule")

	ratesImportCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file to import (.csv or .csv.xz)")
	ratesImportCmd.Flags().StringVar(&importArchiv, "archive", "", "ZIP archive of CSV files to import")
}

// fetchWindow resolves the requested date range. --days wins over --from.
func fetchWindow() (time.Time, time.Time, error) {
	to := time.Now().UTC()
	if fetchTo != "" {
		parsed, err := time.Parse("2006-01-02", fetchTo)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --to: %w", err)
		}
		to = parsed
	}

	if fetchDays > 0 {
		return to.AddDate(0, 0, -fetchDays), to, nil
	}
	if fetchFrom == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("pass --from or --days")
	}
	from, err := time.Parse("2006-01-02", fetchFrom)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse --from: %w", err)
	}
	return from, to, nil
}

func runRatesFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	client := rates.NewClient(cfg.Rates.APIURL, log)
	pair := rates.NewPair(cfg.Pair.Base, cfg.Pair.Quote)

	fetch := func() error {
		from, to, err := fetchWindow()
		if err != nil {
			return err
		}

		series, err := client.Range(context.Background(), pair, from, to)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", pair.Slash(), err)
		}
		n, err := store.PutSeries(context.Background(), series)
		if err != nil {
			return fmt.Errorf("store observations: %w", err)
		}

		fmt.Printf("✓ Stored %d observations for %s (%s to %s)\n",
			n, pair.Slash(), from.Format("2006-01-02"), to.Format("2006-01-02"))
		return nil
	}

	if fetchEvery == "" {
		return fetch()
	}

	// Scheduled mode: fetch once now, then on every cron tick until killed.
	if err := fetch(); err != nil {
		return err
	}
	return runOnSchedule(fetchEvery, log, fetch)
}

func runOnSchedule(spec string, log *logrus.Logger, job func() error) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := job(); err != nil {
			log.WithError(err).Error("scheduled fetch failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	log.WithField("spec", spec).Info("fetch schedule started")
	c.Run()
	return nil
}

func runRatesImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if (importFile == "") == (importArchiv == "") {
		return fmt.Errorf("pass exactly one of --file or --archive")
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	pair := rates.NewPair(cfg.Pair.Base, cfg.Pair.Quote)

	var series *rates.Series
	var source string
	if importFile != "" {
		series, err = rates.LoadCSV(importFile, pair)
		source = importFile
	} else {
		series, err = rates.ImportArchive(importArchiv, pair)
		source = importArchiv
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}

	n, err := store.PutSeries(context.Background(), series)
	if err != nil {
		return fmt.Errorf("store observations: %w", err)
	}

	fmt.Printf("✓ Imported %d observations for %s from %s\n", n, pair.Slash(), source)
	return nil
}

// openStore opens the configured SQLite store, regardless of which source
// the analysis commands use.
func openStore(cfg *config.Config) (*rates.Store, error) {
	path := cfg.Rates.DBPath
	if path == "" {
		path = config.Default().Rates.DBPath
	}
	store, err := rates.OpenStore(path)
	if err != nil {
		return nil, fmt.Errorf("open rate store %s: %w", path, err)
	}
	return store, nil
}
