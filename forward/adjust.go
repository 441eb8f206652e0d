package forward

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/rustyeddy/fxrisk/rates"
)

// DefaultSpan bounds the market-sentiment multiplier to ±1.5%.
const DefaultSpan = 0.015

// Adjuster supplies the per-day market adjustment multiplier applied on
// top of the interest-rate-parity forward. Implementations must be pure
// functions of (date, pair): no wall clock, no shared mutable state, so a
// curve regenerated from identical inputs is bit-identical.
type Adjuster interface {
	Factor(date time.Time, pair rates.Pair) float64
}

// MarketAdjuster produces a pseudo-random multiplier in [1-Span, 1+Span],
// seeded purely from the quote date and currency pair. It stands in for
// the sentiment and seasonal noise a dealer curve would carry.
type MarketAdjuster struct {
	Span float64
}

// Factor implements Adjuster.
func (a MarketAdjuster) Factor(date time.Time, pair rates.Pair) float64 {
	span := a.Span
	if span == 0 {
		span = DefaultSpan
	}

	h := fnv.New64a()
	h.Write([]byte(date.UTC().Format("2006-01-02")))
	h.Write([]byte(pair.String()))

	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	return 1 + (2*rng.Float64()-1)*span
}

// FixedAdjuster always returns Value. Tests inject it to pin forward rates
// to exact expected numbers.
type FixedAdjuster struct {
	Value float64
}

// Factor implements Adjuster.
func (a FixedAdjuster) Factor(time.Time, rates.Pair) float64 { return a.Value }
