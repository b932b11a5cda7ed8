package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOf(t *testing.T) {
	instant := time.Date(2025, 6, 15, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), DateOf(instant))
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		months   int
		expected time.Time
	}{
		{
			name:     "plain month addition",
			from:     time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "jan 31 clamps to feb 28",
			from:     time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "jan 31 clamps to feb 29 in a leap year",
			from:     time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			months:   1,
			expected: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "clamping does not stick for longer months",
			from:     time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			months:   2,
			expected: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "year boundary",
			from:     time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
			months:   3,
			expected: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "twelve months",
			from:     time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			months:   12,
			expected: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "negative months",
			from:     time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			months:   -1,
			expected: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonthsClamped(tt.from, tt.months))
		})
	}
}
