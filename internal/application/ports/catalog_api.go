// Package ports определяет интерфейсы (порты) к каталогу.
// Реализации живут в internal/adapters/api (HTTP) и в тестах (моки).
//
// Pattern: Ports & Adapters (Hexagonal Architecture)
package ports

import (
	"context"

	"github.com/Haleralex/storefront/internal/application/dtos"
)

// ProductsV1API - список товаров v1.
type ProductsV1API interface {
	List(ctx context.Context, params dtos.ListProductsParams) (*dtos.Page[dtos.Product], error)
}

// ProductsV2API - список товаров v2 (imageUrl, discountPercent, rating).
type ProductsV2API interface {
	List(ctx context.Context, params dtos.ListProductsParams) (*dtos.Page[dtos.ProductV2], error)
}

// ProductsV3API - товары v3 с категориями, полный CRUD.
type ProductsV3API interface {
	List(ctx context.Context, params dtos.ListProductsV3Params) (*dtos.Page[dtos.ProductV3], error)
	Get(ctx context.Context, id string) (*dtos.ProductV3, error)
	Create(ctx context.Context, req dtos.CreateProductV3Request) (*dtos.ProductV3, error)
	Replace(ctx context.Context, id string, req dtos.UpdateProductV3Request) (*dtos.ProductV3, error)
	Patch(ctx context.Context, id string, req dtos.PatchProductV3Request) (*dtos.ProductV3, error)
	// Delete resolves to nil on 204.
	Delete(ctx context.Context, id string) error
}

// CategoriesAPI - CRUD категорий. List is not paginated.
type CategoriesAPI interface {
	List(ctx context.Context) ([]dtos.Category, error)
	Get(ctx context.Context, id string) (*dtos.Category, error)
	Create(ctx context.Context, req dtos.CreateCategoryRequest) (*dtos.Category, error)
	Update(ctx context.Context, id string, req dtos.UpdateCategoryRequest) (*dtos.Category, error)
	// Delete resolves to nil on 204.
	Delete(ctx context.Context, id string) error
}
