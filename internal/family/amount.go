package family

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const amountScale = 2

var (
	// MaxAmount fits a NUMERIC(10,2) column: profile figures and category limits.
	MaxAmount = decimal.RequireFromString("99999999.99")
	// MaxGoalAmount fits NUMERIC(12,2).
	MaxGoalAmount = decimal.RequireFromString("9999999999.99")
)

// CheckAmount rejects negative amounts, amounts with more than two decimal places
// and amounts above max. Trailing zeros past the second decimal are accepted.
func CheckAmount(field string, d, max decimal.Decimal) error {
	if d.IsNegative() {
		return &ValidationError{Field: field, Message: "must not be negative"}
	}

	if !d.Equal(d.Truncate(amountScale)) {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must have at most %d decimal places", amountScale)}
	}

	if d.GreaterThan(max) {
		return &ValidationError{Field: field, Message: "must be at most " + max.StringFixed(amountScale)}
	}

	return nil
}
