package valueobjects

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money represents a price with its currency.
// Amounts are decimal.Decimal so 0.1 + 0.2 stays 0.3.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// Common domain errors for Money operations
var (
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrCurrencyMismatch = errors.New("cannot operate on different currencies")
	ErrInvalidAmount    = errors.New("invalid amount format")
	ErrInvalidPercent   = errors.New("percent must be between 0 and 100")
)

var hundred = decimal.NewFromInt(100)

// NewMoney creates Money from a decimal amount. Negative amounts are rejected.
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: amount, currency: currency}, nil
}

// ParseMoney creates Money from a decimal string (e.g. "999.99").
func ParseMoney(amountStr string, currency Currency) (Money, error) {
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amountStr)
	}
	return NewMoney(amount, currency)
}

// Zero returns a zero amount in the given currency.
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency.
func (m Money) Currency() Currency {
	return m.currency
}

// String renders the amount with two decimals followed by the code: "999.99 USD".
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency.Code()
}

// Add returns the sum of two amounts in the same currency.
func (m Money) Add(other Money) (Money, error) {
	if !m.currency.Equals(other.currency) {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// ApplyDiscount returns the price reduced by percent (0..100), rounded to cents.
func (m Money) ApplyDiscount(percent decimal.Decimal) (Money, error) {
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return Money{}, ErrInvalidPercent
	}
	factor := hundred.Sub(percent).Div(hundred)
	return Money{amount: m.amount.Mul(factor).Round(2), currency: m.currency}, nil
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Equals compares amount and currency.
func (m Money) Equals(other Money) bool {
	return m.currency.Equals(other.currency) && m.amount.Equal(other.amount)
}
