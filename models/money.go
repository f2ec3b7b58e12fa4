package models

import "github.com/shopspring/decimal"

// Money rounds a value to cents. Every monetary amount stored on an entity
// goes through this so recomputation never accumulates sub-cent drift.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func MoneyFromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
