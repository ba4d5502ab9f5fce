// Package money provides fixed-point decimal arithmetic for monetary values.
// All intermediate computation keeps arbitrary precision; rounding to
// currency precision happens only at the output boundary.
package money

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"

	"github.com/hbitsol/sistemaartn/internal/errors"
)

// CurrencyPrecision is the number of decimal places rendered at the boundary
const CurrencyPrecision = 2

// Money is an exact base-10 monetary amount
type Money struct {
	d decimal.Decimal
}

// Zero returns a zero amount
func Zero() Money {
	return Money{}
}

// FromDecimal wraps an already-validated decimal value
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// Parse constructs a Money from a decimal-literal string.
// The field name is carried into the error for caller-facing messages.
func Parse(field, value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, errors.InvalidAmount(field, value)
	}
	return Money{d: d}, nil
}

// ParseNonNegative parses a decimal-literal string and rejects negative values
func ParseNonNegative(field, value string) (Money, error) {
	m, err := Parse(field, value)
	if err != nil {
		return Money{}, err
	}
	if m.d.IsNegative() {
		return Money{}, errors.NegativeValue(field, value)
	}
	return m, nil
}

// MustParse parses a decimal-literal string and panics on failure.
// Intended for constants in seed data and tests.
func MustParse(value string) Money {
	m, err := Parse("amount", value)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m + o
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Mul returns m * o
func (m Money) Mul(o Money) Money {
	return Money{d: m.d.Mul(o.d)}
}

// MulRate returns m * r for a dimensionless rate
func (m Money) MulRate(r decimal.Decimal) Money {
	return Money{d: m.d.Mul(r)}
}

// Decimal returns the underlying decimal value
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// IsNegative reports whether the amount is below zero
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// IsZero reports whether the amount is exactly zero
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// Equal reports exact equality of amounts
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

// Round renders the amount at currency precision.
// Only boundary code should call this; arithmetic must stay unrounded.
func (m Money) Round() Money {
	return Money{d: m.d.Round(CurrencyPrecision)}
}

// String returns the exact decimal representation
func (m Money) String() string {
	return m.d.String()
}

// StringFixed returns the amount rendered at currency precision
func (m Money) StringFixed() string {
	return m.d.StringFixed(CurrencyPrecision)
}

// MarshalJSON encodes the amount as a decimal string at currency precision
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.d.StringFixed(CurrencyPrecision) + `"`), nil
}

// UnmarshalJSON decodes either a JSON number or a decimal string
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return errors.InvalidAmount("amount", string(data))
	}
	m.d = d
	return nil
}

// Value implements driver.Valuer, storing the exact decimal string
func (m Money) Value() (driver.Value, error) {
	return m.d.Value()
}

// Scan implements sql.Scanner
func (m *Money) Scan(value interface{}) error {
	return m.d.Scan(value)
}

// ParseRate parses a dimensionless non-negative rate (tax rate, multiplier,
// margin) with the same validation rules as monetary amounts.
func ParseRate(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, errors.InvalidAmount(field, value)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, errors.NegativeValue(field, value)
	}
	return d, nil
}
