package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Haleralex/storefront/internal/application/dtos"
	"github.com/Haleralex/storefront/internal/domain/valueobjects"
	"github.com/Haleralex/storefront/internal/pkg/format"
)

// CardFunc renders one item of a list.
type CardFunc[T any] func(item T, s Styles) string

// ============================================
// Product cards
// ============================================

// ProductCard renders a v1 product: name, price, description and stock.
func ProductCard(p dtos.Product, s Styles) string {
	return s.Card.Render(strings.Join(productLines(p, s, priceLine(p, nil, s)), "\n"))
}

// ProductV2Card adds the discount badge and the rating.
func ProductV2Card(p dtos.ProductV2, s Styles) string {
	return s.Card.Render(strings.Join(productV2Lines(p, s), "\n"))
}

// ProductV3Card adds the category badge on top of the v2 card.
func ProductV3Card(p dtos.ProductV3, s Styles) string {
	lines := productV2Lines(p.ProductV2, s)
	if p.Category.Name != "" {
		lines = append([]string{s.Category.Render(p.Category.Name)}, lines...)
	}
	return s.Card.Render(strings.Join(lines, "\n"))
}

func productV2Lines(p dtos.ProductV2, s Styles) []string {
	var discount *float64
	if p.HasDiscount() {
		discount = p.DiscountPercent
	}
	lines := productLines(p.Product, s, priceLine(p.Product, discount, s))
	if p.Rating != nil {
		lines = append(lines, s.Muted.Render("Rating "+format.FormatRating(*p.Rating)))
	}
	return lines
}

func productLines(p dtos.Product, s Styles, price string) []string {
	lines := []string{
		s.Name.Render(format.TruncateText(p.Name, format.MaxTitleLength)),
		price,
	}
	if p.Description != nil && *p.Description != "" {
		lines = append(lines, s.Muted.Render(format.TruncateText(*p.Description, format.MaxDescriptionLength)))
	}
	if p.InStock {
		lines = append(lines, s.InStock.Render("In stock"))
	} else {
		lines = append(lines, s.OutOfStock.Render("Out of stock"))
	}
	if p.SKU != nil {
		lines = append(lines, s.Muted.Render("SKU "+*p.SKU))
	}
	return lines
}

// priceLine renders "999.99 USD" or, with a discount,
// "899.99 USD 999.99 USD 10% OFF".
func priceLine(p dtos.Product, discount *float64, s Styles) string {
	regular := format.FormatPrice(p.Price, p.Currency)
	if discount == nil {
		return s.Price.Render(regular)
	}

	badge := s.Discount.Render(format.FormatDiscount(*discount))
	reduced, ok := discountedPrice(p, *discount)
	if !ok {
		return lipgloss.JoinHorizontal(lipgloss.Top, s.Price.Render(regular), " ", badge)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.Price.Render(reduced), " ", s.OldPrice.Render(regular), " ", badge)
}

// discountedPrice applies percent to the product price. Prices the money
// type rejects (bad currency, negative amount) are shown undiscounted.
func discountedPrice(p dtos.Product, percent float64) (string, bool) {
	currency, err := valueobjects.NewCurrency(p.Currency)
	if err != nil {
		return "", false
	}
	price, err := valueobjects.NewMoney(p.Price, currency)
	if err != nil {
		return "", false
	}
	reduced, err := price.ApplyDiscount(decimal.NewFromFloat(percent))
	if err != nil {
		return "", false
	}
	return reduced.String(), true
}

// CategoryCard renders a category row: "#3 Tablets".
func CategoryCard(c dtos.Category, s Styles) string {
	return s.Muted.Render("#"+c.ID) + " " + s.Name.Render(c.Name)
}
