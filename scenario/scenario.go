// Package scenario re-runs the analytics pipeline under uniform rate
// shocks and reports one risk summary per shock. Shock runs are fully
// independent: each one works on its own scaled copy of the rate series.
package scenario

import (
	"context"
	"fmt"

	"github.com/rustyeddy/fxrisk/analysis"
	"github.com/rustyeddy/fxrisk/contract"
	"github.com/rustyeddy/fxrisk/rates"
	"github.com/rustyeddy/fxrisk/risk"
)

// Outcome is the result of one shock run. Err is set when the shock itself
// was rejected (it would produce non-positive spot rates) or the run
// failed; other outcomes in the same batch are unaffected.
type Outcome struct {
	Shock          float64
	Summary        *risk.Summary
	Impact         risk.Impact
	FinalPLPercent float64
	Err            error
}

// Run evaluates the contract under each shock percentage (-0.05 means all
// spot rates scaled down 5%). Outcomes come back in input order; runs are
// order-insensitive and share no state.
func Run(ctx context.Context, v contract.Valuation, base *rates.Series, shocks []float64, p analysis.Params) []Outcome {
	outcomes := make([]Outcome, len(shocks))
	for i, shock := range shocks {
		outcomes[i] = runOne(ctx, v, base, shock, p)
	}
	return outcomes
}

func runOne(ctx context.Context, v contract.Valuation, base *rates.Series, shock float64, p analysis.Params) Outcome {
	out := Outcome{Shock: shock}

	if 1+shock <= 0 {
		out.Err = &contract.ConfigurationError{
			Field: "shock",
			Msg:   fmt.Sprintf("shock %+.2f%% produces non-positive spot rates", shock*100),
		}
		return out
	}

	result, err := analysis.Run(ctx, v, base.Shocked(shock), p)
	if err != nil {
		out.Err = err
		return out
	}

	out.Summary = result.Summary
	out.FinalPLPercent = result.FinalPLPercent()
	out.Impact = risk.Classify(out.FinalPLPercent)
	return out
}
