package pnl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxrisk/contract"
	"github.com/rustyeddy/fxrisk/forward"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustContract(t *testing.T, amount, rate float64, dir contract.Direction) contract.Valuation {
	t.Helper()
	v, err := contract.New("LC", amount, "USD", "INR", rate,
		date(2025, time.June, 2), date(2025, time.June, 4), dir)
	require.NoError(t, err)
	return v
}

func points() []forward.Point {
	return []forward.Point{
		{Date: date(2025, time.June, 2), DaysToMaturity: 2, SpotRate: 85.00, ForwardRate: 85.20},
		{Date: date(2025, time.June, 3), DaysToMaturity: 1, SpotRate: 85.36, ForwardRate: 85.40},
		{Date: date(2025, time.June, 4), DaysToMaturity: 0, SpotRate: 86.00, ForwardRate: 86.00},
	}
}

func TestBuildSeriesExport(t *testing.T) {
	t.Parallel()

	v := mustContract(t, 100_000, 85.36, contract.Export)
	records := BuildSeries(points(), v)
	require.Len(t, records, 3)

	// Spot below contract rate: exporter is under water.
	assert.InDelta(t, (85.00-85.36)*100_000, records[0].CloseOutPL, 1e-6)
	assert.InDelta(t, (85.20-85.36)*100_000, records[0].ExpectedPL, 1e-6)

	// Spot exactly at contract rate: zero close-out P&L.
	assert.InDelta(t, 0, records[1].CloseOutPL, 1e-9)
	assert.InDelta(t, 0, records[1].PLPercent, 1e-9)

	// Final day, spot above contract rate.
	last := records[2]
	assert.Equal(t, 0, last.DaysRemaining)
	assert.InDelta(t, (86.00-85.36)*100_000, last.CloseOutPL, 1e-6)
	assert.InDelta(t, last.CloseOutPL/(100_000*85.36)*100, last.PLPercent, 1e-9)
}

func TestBuildSeriesDirectionFlipNegates(t *testing.T) {
	t.Parallel()

	exp := BuildSeries(points(), mustContract(t, 100_000, 85.36, contract.Export))
	imp := BuildSeries(points(), mustContract(t, 100_000, 85.36, contract.Import))
	require.Equal(t, len(exp), len(imp))

	for i := range exp {
		assert.InDelta(t, -exp[i].CloseOutPL, imp[i].CloseOutPL, 1e-9)
		assert.InDelta(t, -exp[i].ExpectedPL, imp[i].ExpectedPL, 1e-9)
		assert.InDelta(t, -exp[i].PLPercent, imp[i].PLPercent, 1e-9)
	}
}

func TestBuildSeriesPreservesOrderAndLength(t *testing.T) {
	t.Parallel()

	v := mustContract(t, 100_000, 85.36, contract.Export)
	records := BuildSeries(points(), v)

	require.Len(t, records, len(points()))
	for i := 1; i < len(records); i++ {
		assert.True(t, records[i].Date.After(records[i-1].Date))
	}
	assert.Equal(t, 0, records[len(records)-1].DaysRemaining)
}

func TestBuildSeriesEmptyCurve(t *testing.T) {
	t.Parallel()

	v := mustContract(t, 100_000, 85.36, contract.Export)
	assert.Empty(t, BuildSeries(nil, v))
}
