// Package numeric parses operator-entered quantity, rate, and amount strings.
// Bookkeeping screens must always render, so malformed input degrades to zero
// instead of raising.
package numeric

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts an entered value to a decimal. Empty, unparsable, or
// negative values yield zero; quantities, rates, and prices are non-negative
// by construction in this domain.
func Parse(value string) decimal.Decimal {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Sum folds Parse over a list of entered values.
func Sum(values []string) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(Parse(v))
	}
	return total
}
