package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewIsSortableAndUnique(t *testing.T) {
	const n = 100

	ids := make([]string, n)
	for i := range ids {
		ids[i] = New()
	}

	assert.True(t, sort.StringsAreSorted(ids), "IDs within a run must sort chronologically")

	seen := map[string]bool{}
	for _, id := range ids {
		assert.Len(t, id, 26)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNewAtOrdersByTimestamp(t *testing.T) {
	early := NewAt(time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC))
	late := NewAt(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.Less(t, early, late)
}
