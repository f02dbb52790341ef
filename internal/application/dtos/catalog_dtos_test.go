package dtos

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductV3_DecodesWireFormat(t *testing.T) {
	raw := `{
		"id": "prd_201",
		"name": "iPhone 15",
		"price": 999.99,
		"currency": "USD",
		"inStock": true,
		"imageUrl": "https://placehold.co/600x400",
		"discountPercent": 10,
		"rating": 4.5,
		"category": {"id": "1", "name": "Smartphones"},
		"createdAt": "2024-01-15T10:00:00Z",
		"updatedAt": "2024-01-15T10:00:00Z"
	}`

	var p ProductV3
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "prd_201", p.ID)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("999.99")))
	assert.Equal(t, "Smartphones", p.Category.Name)
	require.NotNil(t, p.Rating)
	assert.Equal(t, 4.5, *p.Rating)
	assert.True(t, p.HasDiscount())
	assert.Nil(t, p.SKU)
	assert.Equal(t, 2024, p.CreatedAt.Year())
}

func TestProduct_EncodesPriceAsNumber(t *testing.T) {
	p := Product{ID: "prd_002", Name: "Pixel 9", Price: decimal.RequireFromString("799.5"), Currency: "USD"}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":799.5`)
	assert.NotContains(t, string(data), `"sku"`)
}

func TestProductV2_HasDiscount(t *testing.T) {
	zero := 0.0
	assert.False(t, ProductV2{}.HasDiscount())
	assert.False(t, ProductV2{DiscountPercent: &zero}.HasDiscount())
}

func TestPage_Info(t *testing.T) {
	var page Page[Product]
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"id":"a"},{"id":"b"},{"id":"c"}],"page":0,"size":10,"totalElements":3,"totalPages":1}`), &page))

	assert.Len(t, page.Items, 3)
	assert.Equal(t, PaginationInfo{Page: 0, Size: 10, TotalElements: 3, TotalPages: 1}, page.Info())
}

func TestSinglePage(t *testing.T) {
	p := SinglePage([]Category{{ID: "1"}, {ID: "2"}})
	assert.Equal(t, PaginationInfo{Page: 0, Size: 2, TotalElements: 2, TotalPages: 1}, p.Info())

	empty := SinglePage[Category](nil)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestTotalPagesFor(t *testing.T) {
	assert.Equal(t, 1, TotalPagesFor(3, 10))
	assert.Equal(t, 3, TotalPagesFor(25, 10))
	assert.Equal(t, 2, TotalPagesFor(20, 10))
	assert.Equal(t, 0, TotalPagesFor(0, 10))
	assert.Equal(t, 0, TotalPagesFor(5, 0))
}
