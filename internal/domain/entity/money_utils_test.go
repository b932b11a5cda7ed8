package entity

import (
	"testing"

	errs "github.com/cashfolio/cashfolio/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{name: "integer value", input: "12", expected: 1200},
		{name: "one decimal place", input: "12.5", expected: 1250},
		{name: "two decimal places", input: "12.50", expected: 1250},
		{name: "trailing point", input: "12.", expected: 1200},
		{name: "zero", input: "0", expected: 0},
		{name: "negative value", input: "-3.25", expected: -325},
		{name: "whitespace trimmed", input: "  7.10 ", expected: 710},
		{name: "large value", input: "1000000.99", expected: 100000099},
		{name: "empty string", input: "", wantErr: true},
		{name: "three decimal places", input: "1.999", wantErr: true},
		{name: "two points", input: "1.2.3", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cents, err := ParseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cents)
		})
	}
}

func TestParsePositiveAmount(t *testing.T) {
	t.Run("accepts positive values", func(t *testing.T) {
		cents, err := ParsePositiveAmount("10.15")
		require.NoError(t, err)
		assert.Equal(t, int64(1015), cents)
	})

	t.Run("rejects zero", func(t *testing.T) {
		_, err := ParsePositiveAmount("0")
		assert.ErrorIs(t, err, errs.ErrNonPositiveAmount)
	})

	t.Run("rejects zero with decimals", func(t *testing.T) {
		_, err := ParsePositiveAmount("0.00")
		assert.ErrorIs(t, err, errs.ErrNonPositiveAmount)
	})

	t.Run("rejects negative values", func(t *testing.T) {
		_, err := ParsePositiveAmount("-5.00")
		assert.ErrorIs(t, err, errs.ErrNonPositiveAmount)
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		_, err := ParsePositiveAmount("1.2.3")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents    int64
		expected string
	}{
		{1015, "10.15"},
		{1250, "12.50"},
		{0, "0.00"},
		{5, "0.05"},
		{50, "0.50"},
		{-50, "-0.50"},
		{-1015, "-10.15"},
		{100000099, "1000000.99"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCents(tt.cents))
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, input := range []string{"0.00", "10.15", "12.50", "-3.25", "1000000.99"} {
		cents, err := ParseAmount(input)
		require.NoError(t, err)
		assert.Equal(t, input, FormatCents(cents))
	}
}
