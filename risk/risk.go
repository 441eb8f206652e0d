// Package risk aggregates a daily P&L series into summary statistics:
// extremes, population volatility, value-at-risk, and profit/loss day
// counts.
package risk

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rustyeddy/fxrisk/contract"
	"github.com/rustyeddy/fxrisk/pnl"
)

// ErrInsufficientData is returned for an empty series. "No data" and
// "zero P&L" must never look alike, so there is no zero-valued Summary.
var ErrInsufficientData = errors.New("risk: no usable data points")

// DefaultConfidence is the VaR confidence level used when the caller does
// not supply one.
const DefaultConfidence = 0.95

// Extreme is a P&L extremum and the day it occurred. Ties resolve to the
// earliest date.
type Extreme struct {
	Value float64
	Date  time.Time
}

// Summary is the aggregate risk picture of one P&L series.
type Summary struct {
	MaxProfit   Extreme
	MaxLoss     Extreme
	Volatility  float64 // population std dev of close-out P&L
	ValueAtRisk float64 // loss-side magnitude at the confidence level
	Confidence  float64
	ProfitDays  int // close-out P&L >= 0
	LossDays    int // close-out P&L < 0
	DataPoints  int
}

// Impact buckets a P&L percentage magnitude for qualitative reporting.
// The same thresholds classify scenario outcomes and standalone runs.
type Impact string

const (
	ImpactLow    Impact = "Low"
	ImpactMedium Impact = "Medium"
	ImpactHigh   Impact = "High"
)

// Classify maps a P&L percentage to its impact bucket:
// |pct| < 2 Low, 2-5 Medium, above 5 High.
func Classify(plPercent float64) Impact {
	switch pct := math.Abs(plPercent); {
	case pct < 2:
		return ImpactLow
	case pct <= 5:
		return ImpactMedium
	default:
		return ImpactHigh
	}
}

// Analyze computes the Summary for a P&L series at the given VaR
// confidence level (DefaultConfidence when <= 0). A confidence of 1 or
// above is rejected: the percentile rank would fall outside the series.
// An empty series yields ErrInsufficientData and a nil Summary.
func Analyze(records []pnl.Record, confidence float64) (*Summary, error) {
	if len(records) == 0 {
		return nil, ErrInsufficientData
	}
	if confidence <= 0 {
		confidence = DefaultConfidence
	}
	if confidence >= 1 {
		return nil, &contract.ConfigurationError{
			Field: "confidence",
			Msg:   fmt.Sprintf("must be below 1, got %g", confidence),
		}
	}

	s := &Summary{
		MaxProfit:  Extreme{Value: records[0].CloseOutPL, Date: records[0].Date},
		MaxLoss:    Extreme{Value: records[0].CloseOutPL, Date: records[0].Date},
		Confidence: confidence,
		DataPoints: len(records),
	}

	values := make([]float64, 0, len(records))
	sum := 0.0
	for _, r := range records {
		v := r.CloseOutPL
		values = append(values, v)
		sum += v

		// Strict comparisons keep the earliest date on ties.
		if v > s.MaxProfit.Value {
			s.MaxProfit = Extreme{Value: v, Date: r.Date}
		}
		if v < s.MaxLoss.Value {
			s.MaxLoss = Extreme{Value: v, Date: r.Date}
		}
		if v >= 0 {
			s.ProfitDays++
		} else {
			s.LossDays++
		}
	}

	mean := sum / float64(len(values))
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	s.Volatility = math.Sqrt(variance / float64(len(values)))
	s.ValueAtRisk = valueAtRisk(values, confidence)

	return s, nil
}

// valueAtRisk picks the close-out P&L at rank floor((1-confidence)*N) of
// the ascending-sorted series and reports its loss-side magnitude. A
// series whose tail value is a profit has no loss at that confidence, so
// the VaR is zero.
func valueAtRisk(values []float64, confidence float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := int(math.Floor((1 - confidence) * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}

	if v := sorted[idx]; v < 0 {
		return -v
	}
	return 0
}
