// Package analysis wires the full pipeline for one contract: forward curve
// generation, daily P&L derivation, and risk aggregation. A run is a pure
// function of its inputs; independent runs share no state and may execute
// concurrently.
package analysis

import (
	"context"
	"fmt"

	"github.com/rustyeddy/fxrisk/contract"
	"github.com/rustyeddy/fxrisk/forward"
	"github.com/rustyeddy/fxrisk/pnl"
	"github.com/rustyeddy/fxrisk/rates"
	"github.com/rustyeddy/fxrisk/risk"
)

// Params configures a pipeline run.
type Params struct {
	Rates      forward.InterestRates
	Confidence float64          // VaR confidence, risk.DefaultConfidence when <= 0
	Adjust     forward.Adjuster // nil selects the seeded market adjuster
}

// Result bundles everything one run produces. Nothing in it is retained by
// the engine; the caller owns the value.
type Result struct {
	Contract contract.Valuation
	Curve    []forward.Point
	Meta     forward.Meta
	Records  []pnl.Record
	Summary  *risk.Summary
	Impact   risk.Impact
}

// FinalPLPercent is the P&L percentage of the last day in the series, the
// figure impact classification keys on.
func (r *Result) FinalPLPercent() float64 {
	if len(r.Records) == 0 {
		return 0
	}
	return r.Records[len(r.Records)-1].PLPercent
}

// Run executes curve -> P&L -> risk for one contract. A curve with zero
// usable days surfaces risk.ErrInsufficientData; per-date gaps degrade to
// carry-forward or dropped dates in Result.Meta instead of failing.
func Run(ctx context.Context, v contract.Valuation, src rates.Source, p Params) (*Result, error) {
	curve, err := forward.Generate(ctx, v, src, forward.Config{
		Rates:  p.Rates,
		Adjust: p.Adjust,
	})
	if err != nil {
		return nil, fmt.Errorf("generate forward curve: %w", err)
	}

	records := pnl.BuildSeries(curve.Points, v)

	summary, err := risk.Analyze(records, p.Confidence)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Contract: v,
		Curve:    curve.Points,
		Meta:     curve.Meta,
		Records:  records,
		Summary:  summary,
	}
	result.Impact = risk.Classify(result.FinalPLPercent())
	return result, nil
}
