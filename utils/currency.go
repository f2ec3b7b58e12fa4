package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrencyBRL formats a monetary value in Brazilian Real format.
// Example: 15000.50 -> "R$ 15.000,50"
func FormatCurrencyBRL(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	integerPart := parts[0]
	decimalPart := parts[1]

	// Thousand separators, grouped right to left
	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	out := "R$ " + strings.Join(groups, ".") + "," + decimalPart
	if negative {
		out = "-" + out
	}
	return out
}
