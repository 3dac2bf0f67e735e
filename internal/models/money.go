package models

import (
	"github.com/shopspring/decimal"
)

// SanitizeAmount coerces a monetary amount into the valid range. Negative
// amounts become zero. Every aggregation reads amounts through this
// function so that corrupted persisted data can not poison a sum.
func SanitizeAmount(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}

	return amount
}
