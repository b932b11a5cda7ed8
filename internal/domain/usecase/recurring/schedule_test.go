package recurring

import (
	"testing"
	"time"

	"github.com/cashfolio/cashfolio/internal/domain/entity"
	errs "github.com/cashfolio/cashfolio/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestIsDue(t *testing.T) {
	next := date(2025, 3, 15)

	assert.False(t, IsDue(next, date(2025, 3, 14)))
	assert.True(t, IsDue(next, date(2025, 3, 15)))
	assert.True(t, IsDue(next, date(2025, 3, 16)))

	// Dueness works on dates, not instants: due on any hour of the day.
	assert.True(t, IsDue(next, time.Date(2025, 3, 15, 0, 0, 1, 0, time.UTC)))
	assert.True(t, IsDue(time.Date(2025, 3, 15, 23, 0, 0, 0, time.UTC), next))
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name      string
		frequency entity.Frequency
		from      time.Time
		expected  time.Time
	}{
		{"weekly", entity.FrequencyWeekly, date(2025, 3, 10), date(2025, 3, 17)},
		{"weekly over month boundary", entity.FrequencyWeekly, date(2025, 3, 28), date(2025, 4, 4)},
		{"monthly", entity.FrequencyMonthly, date(2025, 3, 15), date(2025, 4, 15)},
		{"monthly clamps jan 31", entity.FrequencyMonthly, date(2025, 1, 31), date(2025, 2, 28)},
		{"quarterly", entity.FrequencyQuarterly, date(2025, 1, 31), date(2025, 4, 30)},
		{"yearly", entity.FrequencyYearly, date(2024, 2, 29), date(2025, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := NextOccurrence(tt.frequency, tt.from)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, next)
		})
	}

	t.Run("unknown frequency", func(t *testing.T) {
		_, err := NextOccurrence("daily", date(2025, 1, 1))
		assert.ErrorIs(t, err, errs.ErrInvalidFrequency)
	})
}

func TestAdvance(t *testing.T) {
	t.Run("single step", func(t *testing.T) {
		next, err := Advance(entity.FrequencyMonthly, date(2025, 3, 15), date(2025, 3, 15))
		require.NoError(t, err)
		assert.Equal(t, date(2025, 4, 15), next)
	})

	t.Run("not due stays put", func(t *testing.T) {
		next, err := Advance(entity.FrequencyMonthly, date(2025, 3, 15), date(2025, 3, 1))
		require.NoError(t, err)
		assert.Equal(t, date(2025, 3, 15), next)
	})

	t.Run("catches up over several missed cycles", func(t *testing.T) {
		next, err := Advance(entity.FrequencyMonthly, date(2025, 1, 15), date(2025, 4, 20))
		require.NoError(t, err)
		assert.Equal(t, date(2025, 5, 15), next)
	})

	t.Run("weekly catch-up", func(t *testing.T) {
		next, err := Advance(entity.FrequencyWeekly, date(2025, 3, 3), date(2025, 3, 21))
		require.NoError(t, err)
		assert.Equal(t, date(2025, 3, 24), next)
	})

	t.Run("clamped day carries forward", func(t *testing.T) {
		// A monthly schedule billed on Jan 31 follows the last billed date:
		// Feb 28, then the 28th of every later month.
		next, err := Advance(entity.FrequencyMonthly, date(2025, 1, 31), date(2025, 1, 31))
		require.NoError(t, err)
		assert.Equal(t, date(2025, 2, 28), next)

		next, err = Advance(entity.FrequencyMonthly, next, date(2025, 2, 28))
		require.NoError(t, err)
		assert.Equal(t, date(2025, 3, 28), next)
	})

	t.Run("unknown frequency", func(t *testing.T) {
		_, err := Advance("daily", date(2025, 1, 1), date(2025, 2, 1))
		assert.ErrorIs(t, err, errs.ErrInvalidFrequency)
	})
}
