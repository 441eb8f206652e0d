// Package forward projects a daily forward-rate curve over the life of a
// contract. The model is covered interest-rate parity with an exponential
// carry term, decorated with a small deterministic market adjustment, and
// decaying exactly to spot at expiry.
package forward

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/fxrisk/calendar"
	"github.com/rustyeddy/fxrisk/contract"
	"github.com/rustyeddy/fxrisk/rates"
)

// Point is one forward-rate quote on the curve. Confidence mirrors the
// spot observation that produced it; carried-forward points get half the
// confidence of the observation they repeat.
type Point struct {
	Date           time.Time
	DaysToMaturity int
	SpotRate       float64
	ForwardRate    float64
	BaseRate       float64
	QuoteRate      float64
	Confidence     float64
	CarriedForward bool
}

// Meta describes how complete the generated curve is. Dropped dates are
// business days with no observation and nothing to carry forward; they are
// reported here instead of failing the run.
type Meta struct {
	RequestedDays  int
	DroppedDates   []time.Time
	CarriedForward int
}

// Curve is the ordered (ascending by date) forward-rate series plus its
// completeness metadata.
type Curve struct {
	Points []Point
	Meta   Meta
}

// InterestRates carries the annualized rates (as decimals, 0.065 = 6.5%)
// for the two legs of the pair.
type InterestRates struct {
	Base  float64
	Quote float64
}

// Config parameterizes curve generation.
type Config struct {
	Rates  InterestRates
	Adjust Adjuster // nil selects MarketAdjuster with DefaultSpan
}

// Generate walks every business day from issue to maturity inclusive and
// produces one Point per day the rate source can cover.
//
//	F(t) = S(t) * exp((r_quote - r_base) * d(t)/365) * adj(t)
//
// The maturity date itself is always included even when it falls on a
// weekend: settlement happens at maturity regardless of the trading
// calendar, so the final point carries zero days to maturity and a forward
// rate exactly equal to spot (no adjustment at expiry).
//
// Missing observations are carried forward from the last known-good rate
// at half confidence. A gap with no prior observation drops the date and
// records it in Meta.
func Generate(ctx context.Context, v contract.Valuation, src rates.Source, cfg Config) (Curve, error) {
	adjust := cfg.Adjust
	if adjust == nil {
		adjust = MarketAdjuster{Span: DefaultSpan}
	}

	pair := rates.NewPair(v.BaseCurrency, v.QuoteCur)
	maturity := calendar.Midnight(v.MaturityDate)

	var curve Curve
	var lastGood *rates.Observation

	for d := calendar.Midnight(v.IssueDate); !d.After(maturity); d = d.AddDate(0, 0, 1) {
		if !calendar.IsBusinessDay(d) && !d.Equal(maturity) {
			continue
		}
		curve.Meta.RequestedDays++

		obs, err := src.Spot(ctx, pair, d)
		carried := false
		switch {
		case err == nil:
			good := obs
			lastGood = &good
		case errors.Is(err, rates.ErrUnavailable):
			if lastGood == nil {
				curve.Meta.DroppedDates = append(curve.Meta.DroppedDates, d)
				continue
			}
			obs = *lastGood
			obs.Confidence /= 2
			carried = true
			curve.Meta.CarriedForward++
		default:
			return Curve{}, fmt.Errorf("spot lookup %s %s: %w", pair.Slash(), d.Format("2006-01-02"), err)
		}

		daysToMaturity := int(maturity.Sub(d).Hours() / 24)

		fwd := obs.Rate
		if daysToMaturity > 0 {
			carry := math.Exp((cfg.Rates.Quote - cfg.Rates.Base) * float64(daysToMaturity) / 365)
			fwd = obs.Rate * carry * adjust.Factor(d, pair)
		}

		curve.Points = append(curve.Points, Point{
			Date:           d,
			DaysToMaturity: daysToMaturity,
			SpotRate:       obs.Rate,
			ForwardRate:    fwd,
			BaseRate:       cfg.Rates.Base,
			QuoteRate:      cfg.Rates.Quote,
			Confidence:     obs.Confidence,
			CarriedForward: carried,
		})
	}

	return curve, nil
}
