// Package dtos - типы запросов и ответов каталога (categories, products v1/v2/v3).
//
// JSON names follow the catalog API wire format (camelCase).
// Prices are decimal.Decimal and are encoded as JSON numbers.
package dtos

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The API speaks numbers for prices ("price": 999.99), not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// ============================================
// Categories
// ============================================

// Category - категория каталога.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCategoryRequest - запрос на создание категории.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"min=2,max=50"`
}

// UpdateCategoryRequest - запрос на переименование категории.
type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"min=2,max=50"`
}

// CategoryRef is the denormalized category embedded in a v3 product.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ============================================
// Products
// ============================================

// Product - товар (v1).
type Product struct {
	ID          string          `json:"id"`
	SKU         *string         `json:"sku,omitempty"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	InStock     bool            `json:"inStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductV2 adds presentation fields to Product.
type ProductV2 struct {
	Product
	ImageURL        *string  `json:"imageUrl,omitempty"`
	DiscountPercent *float64 `json:"discountPercent,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
}

// HasDiscount reports whether a positive discount is set.
func (p ProductV2) HasDiscount() bool {
	return p.DiscountPercent != nil && *p.DiscountPercent > 0
}

// ProductV3 embeds its category reference.
type ProductV3 struct {
	ProductV2
	Category CategoryRef `json:"category"`
}

// ProductResponse is the single-item envelope: {"product": {...}}.
type ProductResponse[T any] struct {
	Product T `json:"product"`
}

// CreateProductV3Request - запрос на создание товара (v3).
type CreateProductV3Request struct {
	SKU             *string         `json:"sku,omitempty"`
	Name            string          `json:"name" validate:"notblank,min=3,max=120"`
	Description     *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price           decimal.Decimal `json:"price" validate:"gte=0"`
	Currency        string          `json:"currency" validate:"currency_code"`
	InStock         bool            `json:"inStock"`
	ImageURL        string          `json:"imageUrl" validate:"omitempty,url"`
	DiscountPercent float64         `json:"discountPercent" validate:"gte=0,lte=100"`
	Rating          float64         `json:"rating" validate:"gte=0,lte=5"`
	CategoryID      string          `json:"categoryId"`
}

// UpdateProductV3Request - полная замена товара (PUT). Same shape as create.
type UpdateProductV3Request CreateProductV3Request

// PatchProductV3Request - частичное обновление; nil fields are left untouched.
type PatchProductV3Request struct {
	SKU             *string          `json:"sku,omitempty"`
	Name            *string          `json:"name,omitempty" validate:"omitempty,notblank,min=3,max=120"`
	Description     *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price           *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency        *string          `json:"currency,omitempty" validate:"omitempty,currency_code"`
	InStock         *bool            `json:"inStock,omitempty"`
	ImageURL        *string          `json:"imageUrl,omitempty" validate:"omitempty,url"`
	DiscountPercent *float64         `json:"discountPercent,omitempty" validate:"omitempty,gte=0,lte=100"`
	Rating          *float64         `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	CategoryID      *string          `json:"categoryId,omitempty"`
}

// ============================================
// Queries
// ============================================

// ListProductsParams - параметры списка товаров (v1/v2).
// Zero values are left out of the query string, except page and size.
type ListProductsParams struct {
	Page  int
	Size  int
	Sort  string // "field,asc|desc"
	Query string
}

// ListProductsV3Params adds the category filter.
type ListProductsV3Params struct {
	ListProductsParams
	CategoryID string
}
