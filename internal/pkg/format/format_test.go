package format

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "", TruncateText("", 10))
	assert.Equal(t, "Hello", TruncateText("Hello", 10))
	assert.Equal(t, "Hello", TruncateText("Hello", 5))
	assert.Equal(t, "Hello...", TruncateText("HelloWorld", 5))
	assert.Equal(t, "ABC...", TruncateText("ABCDEFGHIJKLMNOPQRSTUVWXYZ", 3))
	assert.Equal(t, "Akıllı...", TruncateText("Akıllı telefon", 6))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price    string
		currency string
		want     string
	}{
		{"99.99", "USD", "99.99 USD"},
		{"1234.5", "TRY", "1234.50 TRY"},
		{"0", "EUR", "0.00 EUR"},
		{"-10.5", "USD", "-10.50 USD"},
		{"-0.01", "EUR", "-0.01 EUR"},
		{"9999999.99", "USD", "9999999.99 USD"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(decimal.RequireFromString(tt.price), tt.currency))
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "1/15/2024", FormatDate(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "4/5", FormatRating(3.2))
	assert.Equal(t, "5/5", FormatRating(4.7))
	assert.Equal(t, "0/5", FormatRating(-1))
	assert.Equal(t, "5/5", FormatRating(5.2))
	assert.Equal(t, "0/5", FormatRating(0))
	assert.Equal(t, "0/5", FormatRating(math.NaN()))

	assert.Equal(t, "10/10", FormatRatingOf(9.1, 10))
	assert.Equal(t, "0/10", FormatRatingOf(-0.1, 10))
	assert.Equal(t, "0/10", FormatRatingOf(math.NaN(), 10))
}

func TestFormatDiscount(t *testing.T) {
	tests := map[float64]string{
		0:    "0% OFF",
		10:   "10% OFF",
		15.1: "15% OFF",
		15.5: "16% OFF",
		15.9: "16% OFF",
		25.5: "26% OFF",
		99.4: "99% OFF",
		100:  "100% OFF",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatDiscount(in), in)
	}
}
