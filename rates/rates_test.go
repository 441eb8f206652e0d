package rates

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var usdinr = NewPair("usd", "inr")

func obs(day string, rate float64) Observation {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return Observation{Date: d, Rate: rate, Source: "test", Confidence: 1}
}

func TestPair(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "USDINR", usdinr.String())
	assert.Equal(t, "USD/INR", usdinr.Slash())
}

func TestSeriesSpot(t *testing.T) {
	t.Parallel()

	s := NewSeries(usdinr, []Observation{
		obs("2025-06-03", 85.10),
		obs("2025-06-02", 85.00),
	})
	require.Equal(t, 2, s.Len())

	got, err := s.Spot(context.Background(), usdinr, obs("2025-06-02", 0).Date)
	require.NoError(t, err)
	assert.Equal(t, 85.00, got.Rate)

	_, err = s.Spot(context.Background(), usdinr, obs("2025-06-04", 0).Date)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = s.Spot(context.Background(), NewPair("EUR", "INR"), obs("2025-06-02", 0).Date)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSeriesShocked(t *testing.T) {
	t.Parallel()

	s := NewSeries(usdinr, []Observation{obs("2025-06-02", 80)})
	up := s.Shocked(0.05)

	got, err := up.Spot(context.Background(), usdinr, obs("2025-06-02", 0).Date)
	require.NoError(t, err)
	assert.InDelta(t, 84.0, got.Rate, 1e-9)

	// Original untouched.
	orig, err := s.Spot(context.Background(), usdinr, obs("2025-06-02", 0).Date)
	require.NoError(t, err)
	assert.Equal(t, 80.0, orig.Rate)
}

func TestReadCSV(t *testing.T) {
	t.Parallel()

	in := strings.NewReader(`date,rate,source,confidence
2025-06-02,85.0,rbi,1.0
2025-06-03,85.25
`)
	s, err := ReadCSV(in, usdinr)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	got, err := s.Spot(context.Background(), usdinr, obs("2025-06-02", 0).Date)
	require.NoError(t, err)
	assert.Equal(t, "rbi", got.Source)

	got, err = s.Spot(context.Background(), usdinr, obs("2025-06-03", 0).Date)
	require.NoError(t, err)
	assert.Equal(t, "csv", got.Source)
	assert.Equal(t, 1.0, got.Confidence)
}

func TestReadCSVRejectsBadRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"bad_date", "06/02/2025,85.0\n"},
		{"bad_rate", "2025-06-02,eighty-five\n"},
		{"negative_rate", "2025-06-02,-1\n"},
		{"confidence_out_of_range", "2025-06-02,85.0,csv,1.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.body), usdinr)
			assert.Error(t, err)
		})
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, err := OpenStore(filepath.Join(t.TempDir(), "rates.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, usdinr, obs("2025-06-02", 85.0)))

	got, err := store.Spot(ctx, usdinr, obs("2025-06-02", 0).Date)
	require.NoError(t, err)
	assert.Equal(t, 85.0, got.Rate)
	assert.Equal(t, "test", got.Source)

	_, err = store.Spot(ctx, usdinr, obs("2025-06-03", 0).Date)
	assert.ErrorIs(t, err, ErrUnavailable)

	// Upsert replaces the stored value.
	require.NoError(t, store.Put(ctx, usdinr, obs("2025-06-02", 85.5)))
	got, err = store.Spot(ctx, usdinr, obs("2025-06-02", 0).Date)
	require.NoError(t, err)
	assert.Equal(t, 85.5, got.Rate)
}

func TestStorePutSeriesAndRange(t *testing.T) {
	t.Parallel()

	store, err := OpenStore(filepath.Join(t.TempDir(), "rates.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	series := NewSeries(usdinr, []Observation{
		obs("2025-06-02", 85.0),
		obs("2025-06-03", 85.2),
		obs("2025-06-04", 85.4),
	})

	n, err := store.PutSeries(ctx, series)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := store.Range(ctx, usdinr, obs("2025-06-02", 0).Date, obs("2025-06-03", 0).Date)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}

func TestStoreRangeRejectsCorruptDate(t *testing.T) {
	t.Parallel()

	store, err := OpenStore(filepath.Join(t.TempDir(), "rates.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, usdinr, obs("2025-06-02", 85.0)))

	// Bypass Put to plant a row with an unparseable date inside the range.
	_, err = store.db.ExecContext(ctx, `
		INSERT INTO observations (pair, date, rate, source, confidence)
		VALUES (?, ?, ?, ?, ?)`,
		usdinr.String(), "2025-06-0X", 85.2, "test", 1.0)
	require.NoError(t, err)

	_, err = store.Range(ctx, usdinr, obs("2025-06-01", 0).Date, obs("2025-06-30", 0).Date)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt date")
}

func TestCachedWritesBack(t *testing.T) {
	t.Parallel()

	store, err := OpenStore(filepath.Join(t.TempDir(), "rates.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	origin := NewSeries(usdinr, []Observation{obs("2025-06-02", 85.0)})
	cached := &Cached{Store: store, Origin: origin}

	ctx := context.Background()
	got, err := cached.Spot(ctx, usdinr, obs("2025-06-02", 0).Date)
	require.NoError(t, err)
	assert.Equal(t, 85.0, got.Rate)

	// Second lookup must be served by the store even if the origin goes away.
	cached.Origin = NewSeries(usdinr, nil)
	got, err = cached.Spot(ctx, usdinr, obs("2025-06-02", 0).Date)
	require.NoError(t, err)
	assert.Equal(t, 85.0, got.Rate)

	_, err = cached.Spot(ctx, usdinr, obs("2025-06-03", 0).Date)
	assert.ErrorIs(t, err, ErrUnavailable)
}
