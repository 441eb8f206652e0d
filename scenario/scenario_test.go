package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxrisk/analysis"
	"github.com/rustyeddy/fxrisk/contract"
	"github.com/rustyeddy/fxrisk/forward"
	"github.com/rustyeddy/fxrisk/rates"
	"github.com/rustyeddy/fxrisk/risk"
)

var usdinr = rates.NewPair("USD", "INR")

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixture(t *testing.T) (contract.Valuation, *rates.Series) {
	t.Helper()

	issue := date(2025, time.June, 2)
	maturity := date(2025, time.August, 29)
	v, err := contract.New("LC-C", 100_000, "USD", "INR", 85, issue, maturity, contract.Export)
	require.NoError(t, err)

	var obs []rates.Observation
	rate := 84.5
	for d := issue; !d.After(maturity); d = d.AddDate(0, 0, 1) {
		obs = append(obs, rates.Observation{Date: d, Rate: rate, Source: "test", Confidence: 1})
		rate += 0.03
	}
	return v, rates.NewSeries(usdinr, obs)
}

func TestRunShockOrderingForExport(t *testing.T) {
	t.Parallel()

	v, src := fixture(t)
	p := analysis.Params{Rates: forward.InterestRates{Base: 0.05, Quote: 0.065}}

	outcomes := Run(context.Background(), v, src, []float64{-0.05, 0, 0.05}, p)
	require.Len(t, outcomes, 3)
	for _, o := range outcomes {
		require.NoError(t, o.Err)
		require.NotNil(t, o.Summary)
	}

	// Export exposure: stronger quote rates mean more profit.
	assert.GreaterOrEqual(t, outcomes[2].Summary.MaxProfit.Value, outcomes[1].Summary.MaxProfit.Value)
	assert.GreaterOrEqual(t, outcomes[1].Summary.MaxProfit.Value, outcomes[0].Summary.MaxProfit.Value)
}

func TestRunOrderInsensitive(t *testing.T) {
	t.Parallel()

	v, src := fixture(t)
	p := analysis.Params{Rates: forward.InterestRates{Base: 0.05, Quote: 0.065}}

	ab := Run(context.Background(), v, src, []float64{-0.05, 0.05}, p)
	ba := Run(context.Background(), v, src, []float64{0.05, -0.05}, p)

	assert.Equal(t, ab[0].Summary, ba[1].Summary)
	assert.Equal(t, ab[1].Summary, ba[0].Summary)
}

func TestRunRejectsDegenerateShock(t *testing.T) {
	t.Parallel()

	v, src := fixture(t)
	outcomes := Run(context.Background(), v, src, []float64{-1.0, -1.5, 0}, analysis.Params{})
	require.Len(t, outcomes, 3)

	// Bad shocks fail individually as configuration errors...
	for _, o := range outcomes[:2] {
		require.Error(t, o.Err)
		var cfgErr *contract.ConfigurationError
		assert.ErrorAs(t, o.Err, &cfgErr)
		assert.Nil(t, o.Summary)
	}
	// ...while the valid scenario still runs.
	require.NoError(t, outcomes[2].Err)
	assert.NotNil(t, outcomes[2].Summary)
}

func TestRunImpactLabels(t *testing.T) {
	t.Parallel()

	issue := date(2025, time.June, 2)
	maturity := date(2025, time.June, 13)
	v, err := contract.New("LC", 100_000, "USD", "INR", 85, issue, maturity, contract.Export)
	require.NoError(t, err)

	// Flat spot pinned to the contract rate: base case ends at 0% P&L.
	var obs []rates.Observation
	for d := issue; !d.After(maturity); d = d.AddDate(0, 0, 1) {
		obs = append(obs, rates.Observation{Date: d, Rate: 85, Source: "test", Confidence: 1})
	}
	src := rates.NewSeries(usdinr, obs)

	outcomes := Run(context.Background(), v, src, []float64{0, 0.03, 0.10}, analysis.Params{})
	require.Len(t, outcomes, 3)
	for _, o := range outcomes {
		require.NoError(t, o.Err)
	}

	// Final-day P&L percentages: 0%, 3%, 10% of notional.
	assert.Equal(t, risk.ImpactLow, outcomes[0].Impact)
	assert.Equal(t, risk.ImpactMedium, outcomes[1].Impact)
	assert.Equal(t, risk.ImpactHigh, outcomes[2].Impact)
}
