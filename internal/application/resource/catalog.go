package resource

import (
	"context"

	"github.com/Haleralex/storefront/internal/application/dtos"
	"github.com/Haleralex/storefront/internal/application/ports"
)

// Метки ресурсов для сообщений об ошибках и метрик.
const (
	LabelProducts   = "products"
	LabelCategories = "categories"
)

// CategoryPager lists all categories as one page.
type CategoryPager interface {
	ListPage(ctx context.Context) (*dtos.Page[dtos.Category], error)
}

func listParams(p Params) dtos.ListProductsParams {
	return dtos.ListProductsParams{Page: p.Page, Size: p.Size, Sort: p.Sort, Query: p.Query}
}

// NewProductsV1 creates the v1 product list.
func NewProductsV1(src ports.ProductsV1API, cfg Config) *List[dtos.Product] {
	cfg.Label = labelOr(cfg.Label, LabelProducts)
	return NewList[dtos.Product](func(ctx context.Context, p Params) (*dtos.Page[dtos.Product], error) {
		return src.List(ctx, listParams(p))
	}, cfg)
}

// NewProductsV2 creates the v2 product list.
func NewProductsV2(src ports.ProductsV2API, cfg Config) *List[dtos.ProductV2] {
	cfg.Label = labelOr(cfg.Label, LabelProducts)
	return NewList[dtos.ProductV2](func(ctx context.Context, p Params) (*dtos.Page[dtos.ProductV2], error) {
		return src.List(ctx, listParams(p))
	}, cfg)
}

// NewProductsV3 creates the v3 product list; Params.CategoryID filters it.
func NewProductsV3(src ports.ProductsV3API, cfg Config) *List[dtos.ProductV3] {
	cfg.Label = labelOr(cfg.Label, LabelProducts)
	return NewList[dtos.ProductV3](func(ctx context.Context, p Params) (*dtos.Page[dtos.ProductV3], error) {
		return src.List(ctx, dtos.ListProductsV3Params{
			ListProductsParams: listParams(p),
			CategoryID:         p.CategoryID,
		})
	}, cfg)
}

// NewCategories creates the category list. The endpoint is not paginated, so
// paging params are ignored and the result is always a single page.
func NewCategories(src CategoryPager, cfg Config) *List[dtos.Category] {
	cfg.Label = labelOr(cfg.Label, LabelCategories)
	return NewList[dtos.Category](func(ctx context.Context, _ Params) (*dtos.Page[dtos.Category], error) {
		return src.ListPage(ctx)
	}, cfg)
}

func labelOr(label, def string) string {
	if label == "" {
		return def
	}
	return label
}
