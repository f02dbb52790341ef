// Package format - форматирование значений каталога для вывода.
package format

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Константы отображения товара.
const (
	MaxRating             = 5
	MaxDiscountPercent    = 100
	MaxDescriptionLength  = 120
	MaxTitleLength        = 50
	MaxTextSnippetLength  = 100
	DefaultProductImage   = "https://placehold.co/600x400/EEE/31343C"
	dateLayout            = "1/2/2006"
	truncationPlaceholder = "..."
)

// TruncateText cuts text to maxLength characters and appends "...".
// Text that fits is returned unchanged.
func TruncateText(text string, maxLength int) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:max(maxLength, 0)]) + truncationPlaceholder
}

// FormatPrice renders "99.99 USD".
func FormatPrice(price decimal.Decimal, currency string) string {
	return price.StringFixed(2) + " " + currency
}

// FormatDate renders a calendar date as month/day/year.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// FormatRating rounds the rating up and clamps it to 0..MaxRating: "4/5".
func FormatRating(rating float64) string {
	return FormatRatingOf(rating, MaxRating)
}

// FormatRatingOf is FormatRating with a custom scale. NaN counts as 0.
func FormatRatingOf(rating float64, maxRating int) string {
	return fmt.Sprintf("%d/%d", RatingStars(rating, maxRating), maxRating)
}

// RatingStars returns the number of filled stars for rating.
func RatingStars(rating float64, maxRating int) int {
	if math.IsNaN(rating) {
		return 0
	}
	stars := int(math.Ceil(rating))
	return min(max(stars, 0), maxRating)
}

// FormatDiscount rounds half up: 25.5 gives "26% OFF".
func FormatDiscount(percent float64) string {
	return fmt.Sprintf("%d%% OFF", int(math.Floor(percent+0.5)))
}
