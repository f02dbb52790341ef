// Package valueobjects contains immutable value objects of the catalog:
// Currency and Money. They are compared by value, not by identity.
package valueobjects

import (
	"errors"
	"regexp"
	"strings"
)

// Currency represents a monetary currency code (ISO 4217).
// It's a value object - immutable and validated on creation.
type Currency struct {
	code string // Private field ensures immutability
}

// Currencies seen in the catalog fixtures.
var (
	USD = Currency{code: "USD"}
	EUR = Currency{code: "EUR"}
	GBP = Currency{code: "GBP"}
	TRY = Currency{code: "TRY"}
)

// currencyPattern is the accepted shape of a code: three upper-case letters.
var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ErrInvalidCurrency is returned when an invalid currency code is provided.
var ErrInvalidCurrency = errors.New("invalid currency code")

// IsValidCurrencyCode reports whether code is exactly three upper-case letters.
// No trimming and no case folding: "usd" is invalid.
func IsValidCurrencyCode(code string) bool {
	return currencyPattern.MatchString(code)
}

// NewCurrency creates a new Currency value object with validation.
// Input is trimmed and upper-cased first, so " usd " is accepted.
func NewCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !IsValidCurrencyCode(code) {
		return Currency{}, ErrInvalidCurrency
	}
	return Currency{code: code}, nil
}

// MustNewCurrency is a convenience function that panics on invalid input.
// Use only in initialization code where invalid input indicates a programming error.
func MustNewCurrency(code string) Currency {
	curr, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return curr
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

// Equals checks if two currencies are the same.
func (c Currency) Equals(other Currency) bool {
	return c.code == other.code
}

// String implements fmt.Stringer interface for readable output.
func (c Currency) String() string {
	return c.code
}

// IsZero checks if this is an uninitialized currency.
func (c Currency) IsZero() bool {
	return c.code == ""
}
