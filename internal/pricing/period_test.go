package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2024-01-15")
		require.NoError(t, err)
		assert.Equal(t, 2024, date.Year())
		assert.Equal(t, 1, int(date.Month()))
		assert.Equal(t, 15, date.Day())
	})

	t.Run("RFC 3339 timestamp", func(t *testing.T) {
		date, err := ParseDate("2024-01-15T10:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, 10, date.Hour())
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2024/01/15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date format")
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := ParseDate("2024-13-15")
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseDate("  ")
		assert.Error(t, err)
	})
}

func TestParsePeriod(t *testing.T) {
	t.Run("Unparsable start", func(t *testing.T) {
		_, err := ParsePeriod("not-a-date", "2024-01-02")
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("Unparsable end", func(t *testing.T) {
		_, err := ParsePeriod("2024-01-02", "")
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("End before start", func(t *testing.T) {
		_, err := ParsePeriod("2024-01-10", "2024-01-09")
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestRentalPeriod_DurationDays(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int32
	}{
		{"Same day", "2024-01-15", "2024-01-15", 1},
		{"Next day", "2024-01-15", "2024-01-16", 1},
		{"Same month", "2024-01-15", "2024-01-20", 5},
		{"Cross month boundary", "2024-01-25", "2024-02-05", 11},
		{"Leap day", "2024-02-28", "2024-03-01", 2},
		{"Cross year boundary", "2023-12-30", "2024-01-02", 3},
		{"Partial day rounds up", "2024-01-15T08:00:00Z", "2024-01-16T09:00:00Z", 2},
		{"Hours within one day", "2024-01-15T08:00:00Z", "2024-01-15T17:00:00Z", 1},
		{"One second past a day", "2024-01-15T08:00:00Z", "2024-01-16T08:00:01Z", 2},
		{"Fraction of a second past a day", "2024-01-15T08:00:00Z", "2024-01-16T08:00:00.5Z", 2},
		{"Four centuries", "2000-01-01", "2400-01-01", 146097},
		{"Full calendar range", "0001-01-02", "9999-12-31", 3652057},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePeriod(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.DurationDays())
		})
	}
}
