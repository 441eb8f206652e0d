// Package rates defines the spot-rate boundary of the analytics pipeline:
// the Observation record, the Source lookup interface, and several Source
// implementations (in-memory series, CSV files, a SQLite store, and a
// remote HTTP provider).
package rates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnavailable is returned by a Source when it holds no observation for
// the requested date. Callers are expected to degrade gracefully (the curve
// generator carries the last known-good rate forward).
var ErrUnavailable = errors.New("rates: no observation for date")

// Pair identifies a currency pair, quoted as quote units per base unit.
type Pair struct {
	Base  string
	Quote string
}

// NewPair normalizes currency codes to upper case.
func NewPair(base, quote string) Pair {
	return Pair{
		Base:  strings.ToUpper(strings.TrimSpace(base)),
		Quote: strings.ToUpper(strings.TrimSpace(quote)),
	}
}

// String renders the pair in the compact "USDINR" form used for seeds,
// file names and store keys.
func (p Pair) String() string { return p.Base + p.Quote }

// Slash renders the pair as "USD/INR" for display.
func (p Pair) Slash() string { return p.Base + "/" + p.Quote }

// Observation is a single spot-rate quote. Confidence expresses how much
// the provider trusts the value, in [0,1]; synthetic or carried data gets
// less than 1.
type Observation struct {
	Date       time.Time
	Rate       float64
	Source     string
	Confidence float64
}

// Source supplies one spot observation per currency pair and date. A
// lookup for a date with no data fails with ErrUnavailable; any other
// error is a provider fault.
type Source interface {
	Spot(ctx context.Context, pair Pair, date time.Time) (Observation, error)
}

// Provider is a Source that can also materialize a whole date range at
// once. The Series, Store and Client types all satisfy it; the pipeline
// front ends (CLI, HTTP API) load one Series per contract window and run
// every stage off that immutable snapshot.
type Provider interface {
	Source
	Range(ctx context.Context, pair Pair, from, to time.Time) (*Series, error)
}

// Validate rejects junk observations before they enter a store or series.
func (o Observation) Validate() error {
	if o.Rate <= 0 {
		return fmt.Errorf("rates: non-positive rate %v on %s", o.Rate, o.Date.Format("2006-01-02"))
	}
	if o.Confidence < 0 || o.Confidence > 1 {
		return fmt.Errorf("rates: confidence %v outside [0,1]", o.Confidence)
	}
	return nil
}

func dayKey(t time.Time) string { return t.UTC().Format("2006-01-02") }
