// Package types provides common types used across the ledger.
package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a monetary value in cents. The ledger runs in a single fixed
// currency, so Money carries no currency code; all arithmetic is
// integer-only, never floating point.
//
// Examples:
//   - Cents(550)  = $5.50
//   - Cents(1200) = $12.00
type Money int64

// Cents creates a Money value from an amount in cents.
func Cents(v int64) Money { return Money(v) }

// ParseMajor parses a major-unit decimal string such as "5.50" into Money.
// More than two decimal places, or anything that is not a plain decimal
// number, is rejected.
func ParseMajor(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("money: parse %q: %w", s, err)
	}
	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("money: parse %q: more than two decimal places", s)
	}
	return Money(cents.IntPart()), nil
}

// MustParseMajor is like ParseMajor but panics on error. Use for hardcoded
// amounts in tests and defaults.
func MustParseMajor(s string) Money {
	m, err := ParseMajor(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Arithmetic operations

// Add adds two Money values.
func (m Money) Add(other Money) Money { return m + other }

// Subtract subtracts another Money value.
func (m Money) Subtract(other Money) Money { return m - other }

// MultiplyQty multiplies the Money by a line quantity.
func (m Money) MultiplyQty(qty int64) Money { return m * Money(qty) }

// Negate returns the negative of the Money value.
func (m Money) Negate() Money { return -m }

// Comparison methods

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool { return m == 0 }

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool { return m > 0 }

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool { return m < 0 }

// LessThan returns true if this Money is less than other.
func (m Money) LessThan(other Money) bool { return m < other }

// GreaterThan returns true if this Money is greater than other.
func (m Money) GreaterThan(other Money) bool { return m > other }

// ClampZero returns the Money value, floored at zero. Outstanding-credit
// aggregates never report negative amounts.
func (m Money) ClampZero() Money {
	if m < 0 {
		return 0
	}
	return m
}

// Cents returns the raw amount in cents.
func (m Money) Cents() int64 { return int64(m) }

// Formatting methods

// FormatMajor returns the major-unit string without a currency symbol:
// "12.00" for Cents(1200), "-5.50" for Cents(-550).
func (m Money) FormatMajor() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// String returns a human-readable string with the currency symbol,
// e.g. "$12.00".
func (m Money) String() string {
	if m < 0 {
		return "-$" + m.Negate().FormatMajor()
	}
	return "$" + m.FormatMajor()
}

// SumMoney calculates the sum of multiple Money values.
func SumMoney(values ...Money) Money {
	var total Money
	for _, v := range values {
		total += v
	}
	return total
}
