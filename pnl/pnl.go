// Package pnl converts a forward-rate curve into the daily profit-and-loss
// series for a contract. Everything here is a pure function of its inputs:
// identical curve and contract always produce an identical series.
package pnl

import (
	"time"

	"github.com/rustyeddy/fxrisk/contract"
	"github.com/rustyeddy/fxrisk/forward"
)

// Record is one day of contract P&L.
//
// CloseOutPL is what the holder realizes by exiting at spot that day.
// ExpectedPL is what the current forward rate implies for holding to
// maturity. PLPercent expresses CloseOutPL relative to the contract's
// notional in the quote currency (amount x contract rate).
type Record struct {
	Date          time.Time
	DaysRemaining int
	SpotRate      float64
	ForwardRate   float64
	CloseOutPL    float64
	ExpectedPL    float64
	PLPercent     float64
}

// BuildSeries derives one Record per curve point, preserving order.
//
// Sign convention: export holders gain when the quote currency strengthens
// past the contract rate, import holders gain when it weakens.
//
//	closeOut = sign * (spot - K) * amount
//	expected = sign * (fwd  - K) * amount
func BuildSeries(points []forward.Point, v contract.Valuation) []Record {
	sign := v.Direction.Sign()
	notional := v.NotionalQuote()

	records := make([]Record, 0, len(points))
	for _, p := range points {
		closeOut := sign * (p.SpotRate - v.ContractRate) * v.Amount
		expected := sign * (p.ForwardRate - v.ContractRate) * v.Amount

		records = append(records, Record{
			Date:          p.Date,
			DaysRemaining: p.DaysToMaturity,
			SpotRate:      p.SpotRate,
			ForwardRate:   p.ForwardRate,
			CloseOutPL:    closeOut,
			ExpectedPL:    expected,
			PLPercent:     closeOut / notional * 100,
		})
	}
	return records
}
