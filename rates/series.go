package rates

import (
	"context"
	"sort"
	"time"
)

// Series is an immutable in-memory rate history for a single pair. It is
// the Source used by tests, by scenario runs, and as the decoded form of a
// CSV file.
type Series struct {
	pair  Pair
	byDay map[string]Observation
	days  []time.Time
}

// NewSeries builds a Series from observations, keeping the last value per
// day and ignoring which order they arrive in.
func NewSeries(pair Pair, obs []Observation) *Series {
	s := &Series{pair: pair, byDay: make(map[string]Observation, len(obs))}
	for _, o := range obs {
		key := dayKey(o.Date)
		if _, seen := s.byDay[key]; !seen {
			s.days = append(s.days, o.Date.UTC().Truncate(24*time.Hour))
		}
		s.byDay[key] = o
	}
	sort.Slice(s.days, func(i, j int) bool { return s.days[i].Before(s.days[j]) })
	return s
}

// Pair returns the currency pair the series quotes.
func (s *Series) Pair() Pair { return s.pair }

// Len returns the number of distinct observation days.
func (s *Series) Len() int { return len(s.days) }

// Spot implements Source. Requests for another pair or an uncovered date
// fail with ErrUnavailable.
func (s *Series) Spot(_ context.Context, pair Pair, date time.Time) (Observation, error) {
	if pair != s.pair {
		return Observation{}, ErrUnavailable
	}
	o, ok := s.byDay[dayKey(date)]
	if !ok {
		return Observation{}, ErrUnavailable
	}
	return o, nil
}

// Shocked returns a copy of the series with every rate scaled by (1+shock).
// Scenario runs use it so that shock branches never share state.
func (s *Series) Shocked(shock float64) *Series {
	obs := make([]Observation, 0, len(s.days))
	for _, d := range s.days {
		o := s.byDay[dayKey(d)]
		o.Rate *= 1 + shock
		obs = append(obs, o)
	}
	return NewSeries(s.pair, obs)
}

// Range returns the sub-series covering [from, to] inclusive.
func (s *Series) Range(_ context.Context, pair Pair, from, to time.Time) (*Series, error) {
	if pair != s.pair {
		return NewSeries(pair, nil), nil
	}
	var obs []Observation
	for _, d := range s.days {
		if d.Before(from) || d.After(to) {
			continue
		}
		obs = append(obs, s.byDay[dayKey(d)])
	}
	return NewSeries(pair, obs), nil
}

// Observations returns the series content in ascending date order.
func (s *Series) Observations() []Observation {
	obs := make([]Observation, 0, len(s.days))
	for _, d := range s.days {
		obs = append(obs, s.byDay[dayKey(d)])
	}
	return obs
}
