package mockapi

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Haleralex/storefront/internal/application/dtos"
)

// Fixtures - начальные данные mock backend.
// Every call of a factory builds fresh slices; instances never share them.
type Fixtures struct {
	ProductsV1 []dtos.Product
	ProductsV2 []dtos.ProductV2
	ProductsV3 []dtos.ProductV3
	Categories []dtos.Category
}

// EmptyFixtures returns a backend with no data at all.
func EmptyFixtures() *Fixtures {
	return &Fixtures{
		ProductsV1: []dtos.Product{},
		ProductsV2: []dtos.ProductV2{},
		ProductsV3: []dtos.ProductV3{},
		Categories: []dtos.Category{},
	}
}

// DefaultFixtures returns the demo catalog.
//
// Category "4" (Gaming) has no v3 products and can be deleted; the others
// are in use.
func DefaultFixtures() *Fixtures {
	return &Fixtures{
		ProductsV1: defaultProductsV1(),
		ProductsV2: defaultProductsV2(),
		ProductsV3: defaultProductsV3(),
		Categories: defaultCategories(),
	}
}

var (
	fixtureCreated = time.Date(2026, 1, 26, 10, 0, 0, 0, time.UTC)
	categoryTime   = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
)

func ptr[T any](v T) *T { return &v }

func defaultCategories() []dtos.Category {
	names := []string{"Smartphones", "Laptops", "Tablets", "Gaming", "Audio"}
	out := make([]dtos.Category, len(names))
	for i, name := range names {
		out[i] = dtos.Category{
			ID:        strconv.Itoa(i + 1),
			Name:      name,
			CreatedAt: categoryTime,
			UpdatedAt: categoryTime,
		}
	}
	return out
}

func defaultProductsV1() []dtos.Product {
	return []dtos.Product{
		{
			ID:          "prd_001",
			SKU:         ptr("SKU-IPH15-BLK"),
			Name:        "iPhone 15",
			Description: ptr("Latest Apple iPhone"),
			Price:       decimal.RequireFromString("999.99"),
			Currency:    "USD",
			InStock:     true,
			CreatedAt:   fixtureCreated,
			UpdatedAt:   fixtureCreated.Add(30 * time.Minute),
		},
		{
			ID:          "prd_002",
			Name:        "Pixel 9",
			Description: ptr("Newest Google Pixel"),
			Price:       decimal.RequireFromString("799.00"),
			Currency:    "USD",
			InStock:     true,
			CreatedAt:   fixtureCreated.Add(time.Hour),
			UpdatedAt:   fixtureCreated.Add(90 * time.Minute),
		},
	}
}

func defaultProductsV2() []dtos.ProductV2 {
	return []dtos.ProductV2{
		{
			Product: dtos.Product{
				ID:          "prd_101",
				SKU:         ptr("SKU-IPH15-BLK"),
				Name:        "iPhone 15",
				Description: ptr("Latest Apple iPhone"),
				Price:       decimal.RequireFromString("999.99"),
				Currency:    "USD",
				InStock:     true,
				CreatedAt:   fixtureCreated,
				UpdatedAt:   fixtureCreated.Add(30 * time.Minute),
			},
			ImageURL:        ptr("https://cdn.example.com/products/prd_101.jpg"),
			DiscountPercent: ptr(10.0),
			Rating:          ptr(4.5),
		},
		{
			Product: dtos.Product{
				ID:          "prd_102",
				Name:        "Pixel 9",
				Description: ptr("Newest Google Pixel"),
				Price:       decimal.RequireFromString("799.00"),
				Currency:    "USD",
				InStock:     true,
				CreatedAt:   fixtureCreated.Add(time.Hour),
				UpdatedAt:   fixtureCreated.Add(90 * time.Minute),
			},
			ImageURL: ptr("https://cdn.example.com/products/prd_102.jpg"),
			Rating:   ptr(4.2),
		},
	}
}

type v3Seed struct {
	name, description, price string
	categoryID, category     string
	inStock                  bool
	discount, rating         float64
}

func defaultProductsV3() []dtos.ProductV3 {
	seeds := []v3Seed{
		{"iPhone 15", "Latest Apple iPhone with A16 chip", "999.99", "1", "Smartphones", true, 10, 4.5},
		{"Pixel 9", "Google Pixel 9 with Tensor G4", "799.00", "1", "Smartphones", true, 0, 4.2},
		{"Galaxy S24", "Samsung Galaxy S24 Ultra", "1199.99", "1", "Smartphones", false, 15, 4.4},
		{"MacBook Air 13", "Apple M3 laptop, 16GB RAM", "1299.00", "2", "Laptops", true, 0, 4.8},
		{"ThinkPad X1 Carbon", "Business ultrabook", "1649.50", "2", "Laptops", true, 5, 4.6},
		{"Dell XPS 15", "OLED creator laptop", "1899.00", "2", "Laptops", false, 0, 4.1},
		{"iPad Air", "10.9-inch tablet with M2", "599.00", "3", "Tablets", true, 0, 4.7},
		{"Galaxy Tab S9", "Android tablet with S Pen", "799.99", "3", "Tablets", true, 20, 4.3},
		{"AirPods Pro", "Noise cancelling earbuds", "249.00", "5", "Audio", true, 12.5, 4.6},
		{"Sony WH-1000XM5", "Over-ear wireless headphones", "399.99", "5", "Audio", true, 0, 4.9},
		{"JBL Flip 6", "Portable bluetooth speaker", "129.95", "5", "Audio", false, 0, 3.8},
		{"Kindle Paperwhite", "E-reader with warm light", "149.99", "3", "Tablets", true, 0, 4.4},
		{"Surface Laptop 5", "Touchscreen laptop", "999.00", "2", "Laptops", true, 8, 3.9},
		{"Nothing Phone 2", "Glyph interface smartphone", "599.00", "1", "Smartphones", true, 0, 4.0},
	}

	out := make([]dtos.ProductV3, len(seeds))
	for i, s := range seeds {
		created := fixtureCreated.Add(time.Duration(i) * time.Hour)
		out[i] = dtos.ProductV3{
			ProductV2: dtos.ProductV2{
				Product: dtos.Product{
					ID:          productID(201 + i),
					Name:        s.name,
					Description: ptr(s.description),
					Price:       decimal.RequireFromString(s.price),
					Currency:    "USD",
					InStock:     s.inStock,
					CreatedAt:   created,
					UpdatedAt:   created,
				},
				ImageURL:        ptr("https://placehold.co/600x400?text=" + productID(201+i)),
				DiscountPercent: ptr(s.discount),
				Rating:          ptr(s.rating),
			},
			Category: dtos.CategoryRef{ID: s.categoryID, Name: s.category},
		}
	}
	return out
}
