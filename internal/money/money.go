package money

import "github.com/shopspring/decimal"

// FromCents converts integer minor currency units into a decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}

// CentsToAmount converts optional integer minor currency units into a
// decimal amount. A nil value means the provider did not report one and
// counts as zero in every aggregate.
func CentsToAmount(cents *int64) decimal.Decimal {
	if cents == nil {
		return decimal.Zero
	}
	return FromCents(*cents)
}

// Round rounds a currency amount to two decimal places, half up.
// Aggregates are carried in integer cents and only pass through here at
// the final step, so no rounding drift accumulates.
func Round(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}
