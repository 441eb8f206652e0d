package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxrisk/analysis"
	"github.com/rustyeddy/fxrisk/rates"
	"github.com/rustyeddy/fxrisk/report"
	"github.com/rustyeddy/fxrisk/scenario"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Re-run the analysis under uniform rate shocks",
	Long: `Evaluate the contract under a set of shock percentages, each applied
uniformly to every spot rate. -0.05 scales all spots down 5%.

Shocks default to the analysis.shocks list in the config file.

Example:
  fxrisk scenario --amount 100000 --rate 85.36 \
    --issue 2024-01-01 --maturity 2024-06-28 \
    --shocks=-0.05,0,0.05`,
	RunE: runScenario,
}

var (
	scenarioID        string
	scenarioAmount    float64
	scenarioRate      float64
	scenarioIssue     string
	scenarioMaturity  string
	scenarioDirection string
	scenarioShocks    []float64
	scenarioOut       string
)

func init() {
	rootCmd.AddCommand(scenarioCmd)

	scenarioCmd.Flags().StringVar(&scenarioID, "id", "", "contract identifier (generated when omitted)")
	scenarioCmd.Flags().Float64Var(&scenarioAmount, "amount", 0, "notional amount in the base currency (required)")
	scenarioCmd.Flags().Float64Var(&scenarioRate, "rate", 0, "fixed contract rate, quote per base (required)")
	scenarioCmd.Flags().StringVar(&scenarioIssue, "issue", "", "issue date YYYY-MM-DD (required)")
	scenarioCmd.Flags().StringVar(&scenarioMaturity, "maturity", "", "maturity date YYYY-MM-DD (required)")
	scenarioCmd.Flags().StringVar(&scenarioDirection, "direction", "export", "exposure direction: export or import")
	scenarioCmd.Flags().Float64SliceVar(&scenarioShocks, "shocks", nil, "shock percentages as decimals, e.g. -0.05,0,0.05")
	scenarioCmd.Flags().StringVarP(&scenarioOut, "out", "o", "", "write the JSON report here instead of stdout")

	scenarioCmd.MarkFlagRequired("amount")
	scenarioCmd.MarkFlagRequired("rate")
	scenarioCmd.MarkFlagRequired("issue")
	scenarioCmd.MarkFlagRequired("maturity")
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	shocks := scenarioShocks
	if len(shocks) == 0 {
		shocks = cfg.Analysis.Shocks
	}
	if len(shocks) == 0 {
		return fmt.Errorf("no shocks given: pass --shocks or set analysis.shocks in the config")
	}

	v, err := parseContract(scenarioID, scenarioAmount, scenarioRate,
		cfg.Pair.Base, cfg.Pair.Quote, scenarioIssue, scenarioMaturity, scenarioDirection)
	if err != nil {
		return err
	}

	provider, closer, err := openProvider(cfg, log)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := context.Background()
	pair := rates.NewPair(v.BaseCurrency, v.QuoteCur)

	series, err := provider.Range(ctx, pair, v.IssueDate, v.MaturityDate)
	if err != nil {
		return fmt.Errorf("fetch rates for %s: %w", pair.Slash(), err)
	}

	p := pipelineParams(cfg)

	base, err := analysis.Run(ctx, v, series, p)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", v.ID, err)
	}
	outcomes := scenario.Run(ctx, v, series, shocks, p)

	for _, o := range outcomes {
		if o.Err != nil {
			log.WithField("shock", o.Shock).WithError(o.Err).Warn("scenario failed")
		}
	}

	doc := report.Build(base, outcomes)
	return writeOut(scenarioOut, func(w io.Writer) error { return doc.WriteJSON(w) })
}
