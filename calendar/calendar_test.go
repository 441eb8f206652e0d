package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsBusinessDay(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBusinessDay(date(2025, time.June, 2)))  // Monday
	assert.True(t, IsBusinessDay(date(2025, time.June, 6)))  // Friday
	assert.False(t, IsBusinessDay(date(2025, time.June, 7))) // Saturday
	assert.False(t, IsBusinessDay(date(2025, time.June, 8))) // Sunday
}

func TestNextPrevBusinessDay(t *testing.T) {
	t.Parallel()

	// Friday -> Monday
	assert.Equal(t, date(2025, time.June, 9), NextBusinessDay(date(2025, time.June, 6)))
	// Monday -> Friday
	assert.Equal(t, date(2025, time.June, 6), PrevBusinessDay(date(2025, time.June, 9)))
	// Mid-week stays adjacent
	assert.Equal(t, date(2025, time.June, 4), NextBusinessDay(date(2025, time.June, 3)))
}

func TestCountBusinessDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"single_weekday", date(2025, time.June, 2), date(2025, time.June, 2), 1},
		{"single_weekend_day", date(2025, time.June, 7), date(2025, time.June, 7), 0},
		{"full_week", date(2025, time.June, 2), date(2025, time.June, 8), 5},
		{"two_weeks", date(2025, time.June, 2), date(2025, time.June, 13), 10},
		{"reversed_range", date(2025, time.June, 13), date(2025, time.June, 2), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountBusinessDays(tt.start, tt.end))
		})
	}
}

func TestAddBusinessDays(t *testing.T) {
	t.Parallel()

	// Friday + 1 business day skips the weekend.
	assert.Equal(t, date(2025, time.June, 9), AddBusinessDays(date(2025, time.June, 6), 1))
	// Monday - 1 business day lands on Friday.
	assert.Equal(t, date(2025, time.June, 6), AddBusinessDays(date(2025, time.June, 9), -1))
	assert.Equal(t, date(2025, time.June, 16), AddBusinessDays(date(2025, time.June, 2), 10))
}

func TestMidnight(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, time.June, 2, 17, 45, 12, 99, time.UTC)
	assert.Equal(t, date(2025, time.June, 2), Midnight(ts))
}
