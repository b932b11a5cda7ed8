package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/cashfolio/cashfolio/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// ParseAmount validates a decimal amount string and converts it to cents.
// The string-based approach avoids floating point precision issues:
// - No decimal point: "12" -> 1200
// - One digit after the point: "12.5" -> 1250
// - Two digits after the point: "12.50" -> 1250
// More than two decimal places is rejected.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	negative := false
	if strings.HasPrefix(amount, "-") {
		negative = true
		amount = amount[1:]
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var integerValue string
	if len(parts) == 1 {
		integerValue = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			integerValue = parts[0] + "00"
		case 1:
			integerValue = parts[0] + parts[1] + "0"
		case 2:
			integerValue = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	value, err := strconv.ParseInt(integerValue, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	if negative {
		value = -value
	}
	return value, nil
}

// ParsePositiveAmount parses a decimal amount string and rejects zero and
// negative values. Transaction amounts must always be strictly positive;
// direction is carried by the transaction type, never by the sign.
func ParsePositiveAmount(amount string) (int64, error) {
	cents, err := ParseAmount(amount)
	if err != nil {
		return 0, err
	}
	if cents <= 0 {
		return 0, errs.ErrNonPositiveAmount
	}
	return cents, nil
}

// FormatCents converts an amount in cents to a decimal string with exactly
// two decimal places, e.g. 1015 -> "10.15", -50 -> "-0.50".
func FormatCents(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	digits := strconv.FormatInt(cents, 10)
	for len(digits) < 3 {
		digits = "0" + digits
	}

	split := len(digits) - 2
	formatted := digits[:split] + "." + digits[split:]
	if negative {
		return "-" + formatted
	}
	return formatted
}
