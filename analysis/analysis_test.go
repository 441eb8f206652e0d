package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxrisk/calendar"
	"github.com/rustyeddy/fxrisk/contract"
	"github.com/rustyeddy/fxrisk/forward"
	"github.com/rustyeddy/fxrisk/rates"
	"github.com/rustyeddy/fxrisk/risk"
)

var usdinr = rates.NewPair("USD", "INR")

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// risingSeries climbs linearly from start by step per calendar day.
func risingSeries(from, to time.Time, start, step float64) *rates.Series {
	var obs []rates.Observation
	rate := start
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		obs = append(obs, rates.Observation{Date: d, Rate: rate, Source: "test", Confidence: 1})
		rate += step
	}
	return rates.NewSeries(usdinr, obs)
}

func TestRunRisingSpotExportContract(t *testing.T) {
	t.Parallel()

	// Example: 500k export at 82.50, 2025-06-01 to 2025-09-01, rising spot.
	issue := date(2025, time.June, 1)
	maturity := date(2025, time.September, 1)
	v, err := contract.New("LC-B", 500_000, "USD", "INR", 82.50, issue, maturity, contract.Export)
	require.NoError(t, err)

	src := risingSeries(issue, maturity, 82.00, 0.05)
	result, err := Run(context.Background(), v, src, Params{
		Rates: forward.InterestRates{Base: 0.05, Quote: 0.065},
	})
	require.NoError(t, err)

	assert.Len(t, result.Records, calendar.CountBusinessDays(issue, maturity))
	assert.Equal(t, 0, result.Records[len(result.Records)-1].DaysRemaining)

	// Monotonically rising spot means monotonically rising close-out P&L.
	for i := 1; i < len(result.Records); i++ {
		assert.Greater(t, result.Records[i].CloseOutPL, result.Records[i-1].CloseOutPL)
	}
	assert.Positive(t, result.Summary.MaxProfit.Value)
	assert.Equal(t, result.Records[len(result.Records)-1].Date, result.Summary.MaxProfit.Date)
}

func TestRunGapMetadata(t *testing.T) {
	t.Parallel()

	issue := date(2025, time.June, 2)
	maturity := date(2025, time.June, 20)
	v, err := contract.New("LC-E", 100_000, "USD", "INR", 85, issue, maturity, contract.Export)
	require.NoError(t, err)

	// Remove 3 consecutive trading days (Jun 10-12) mid-contract.
	var obs []rates.Observation
	for d := issue; !d.After(maturity); d = d.AddDate(0, 0, 1) {
		if d.Day() >= 10 && d.Day() <= 12 {
			continue
		}
		obs = append(obs, rates.Observation{Date: d, Rate: 85, Source: "test", Confidence: 1})
	}

	result, err := Run(context.Background(), v, rates.NewSeries(usdinr, obs), Params{})
	require.NoError(t, err)

	// Carry-forward keeps the series full length; nothing was dropped.
	assert.Len(t, result.Records, calendar.CountBusinessDays(issue, maturity))
	assert.Equal(t, 3, result.Meta.CarriedForward)
	assert.Empty(t, result.Meta.DroppedDates)
}

func TestRunNoDataAtAll(t *testing.T) {
	t.Parallel()

	issue := date(2025, time.June, 2)
	v, err := contract.New("LC", 100_000, "USD", "INR", 85, issue, date(2025, time.June, 6), contract.Export)
	require.NoError(t, err)

	empty := rates.NewSeries(usdinr, nil)
	result, err := Run(context.Background(), v, empty, Params{})
	assert.ErrorIs(t, err, risk.ErrInsufficientData)
	assert.Nil(t, result)
}

func TestRunDeterministic(t *testing.T) {
	t.Parallel()

	issue := date(2025, time.June, 2)
	maturity := date(2025, time.July, 31)
	v, err := contract.New("LC", 250_000, "USD", "INR", 84, issue, maturity, contract.Import)
	require.NoError(t, err)

	src := risingSeries(issue, maturity, 83.5, 0.02)
	p := Params{Rates: forward.InterestRates{Base: 0.0525, Quote: 0.065}}

	a, err := Run(context.Background(), v, src, p)
	require.NoError(t, err)
	b, err := Run(context.Background(), v, src, p)
	require.NoError(t, err)

	assert.Equal(t, a.Curve, b.Curve)
	assert.Equal(t, a.Records, b.Records)
	assert.Equal(t, a.Summary, b.Summary)
}

func TestFinalPLPercentEmptyResult(t *testing.T) {
	t.Parallel()

	var r Result
	assert.Equal(t, 0.0, r.FinalPLPercent())
}
