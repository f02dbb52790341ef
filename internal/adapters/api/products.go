package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Haleralex/storefront/internal/adapters/httpclient"
	"github.com/Haleralex/storefront/internal/application/dtos"
)

// ---------------------------------------------------------------------------
// v1
// ---------------------------------------------------------------------------

// ProductsV1 is the /api/v1/products client.
type ProductsV1 struct {
	http Requester
}

// NewProductsV1 creates a new v1 products client.
func NewProductsV1(r Requester) *ProductsV1 {
	return &ProductsV1{http: r}
}

// List retrieves one page of products.
func (c *ProductsV1) List(ctx context.Context, params dtos.ListProductsParams) (*dtos.Page[dtos.Product], error) {
	var result dtos.Page[dtos.Product]
	opts := httpclient.RequestOptions{Query: listQuery(params), Route: routeProductsV1}
	if err := c.http.Do(ctx, http.MethodGet, routeProductsV1, opts, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ---------------------------------------------------------------------------
// v2
// ---------------------------------------------------------------------------

// ProductsV2 is the /api/v2/products client.
type ProductsV2 struct {
	http Requester
}

// NewProductsV2 creates a new v2 products client.
func NewProductsV2(r Requester) *ProductsV2 {
	return &ProductsV2{http: r}
}

// List retrieves one page of products with v2 fields.
func (c *ProductsV2) List(ctx context.Context, params dtos.ListProductsParams) (*dtos.Page[dtos.ProductV2], error) {
	var result dtos.Page[dtos.ProductV2]
	opts := httpclient.RequestOptions{Query: listQuery(params), Route: routeProductsV2}
	if err := c.http.Do(ctx, http.MethodGet, routeProductsV2, opts, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ---------------------------------------------------------------------------
// v3
// ---------------------------------------------------------------------------

// ProductsV3 is the /api/v3/products client.
type ProductsV3 struct {
	http Requester
}

// NewProductsV3 creates a new v3 products client.
func NewProductsV3(r Requester) *ProductsV3 {
	return &ProductsV3{http: r}
}

func productV3Path(id string) string {
	return routeProductsV3 + "/" + url.PathEscape(id)
}

// List retrieves one page of products, optionally filtered by category.
func (c *ProductsV3) List(ctx context.Context, params dtos.ListProductsV3Params) (*dtos.Page[dtos.ProductV3], error) {
	query := listQuery(params.ListProductsParams).SetIfNotEmpty(queryCategoryFilter, params.CategoryID)

	var result dtos.Page[dtos.ProductV3]
	opts := httpclient.RequestOptions{Query: query, Route: routeProductsV3}
	if err := c.http.Do(ctx, http.MethodGet, routeProductsV3, opts, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Get retrieves a single product by ID.
func (c *ProductsV3) Get(ctx context.Context, id string) (*dtos.ProductV3, error) {
	var result dtos.ProductResponse[dtos.ProductV3]
	opts := httpclient.RequestOptions{Route: routeProductV3}
	if err := c.http.Do(ctx, http.MethodGet, productV3Path(id), opts, &result); err != nil {
		return nil, err
	}
	return &result.Product, nil
}

// Create creates a new product.
func (c *ProductsV3) Create(ctx context.Context, req dtos.CreateProductV3Request) (*dtos.ProductV3, error) {
	var result dtos.ProductResponse[dtos.ProductV3]
	opts := httpclient.RequestOptions{Body: req, Route: routeProductsV3}
	if err := c.http.Do(ctx, http.MethodPost, routeProductsV3, opts, &result); err != nil {
		return nil, err
	}
	return &result.Product, nil
}

// Replace performs a full replacement of an existing product (PUT).
func (c *ProductsV3) Replace(ctx context.Context, id string, req dtos.UpdateProductV3Request) (*dtos.ProductV3, error) {
	var result dtos.ProductResponse[dtos.ProductV3]
	opts := httpclient.RequestOptions{Body: req, Route: routeProductV3}
	if err := c.http.Do(ctx, http.MethodPut, productV3Path(id), opts, &result); err != nil {
		return nil, err
	}
	return &result.Product, nil
}

// Patch performs a partial update of an existing product.
func (c *ProductsV3) Patch(ctx context.Context, id string, req dtos.PatchProductV3Request) (*dtos.ProductV3, error) {
	var result dtos.ProductResponse[dtos.ProductV3]
	opts := httpclient.RequestOptions{Body: req, Route: routeProductV3}
	if err := c.http.Do(ctx, http.MethodPatch, productV3Path(id), opts, &result); err != nil {
		return nil, err
	}
	return &result.Product, nil
}

// Delete removes a product.
func (c *ProductsV3) Delete(ctx context.Context, id string) error {
	opts := httpclient.RequestOptions{Route: routeProductV3}
	return c.http.Do(ctx, http.MethodDelete, productV3Path(id), opts, nil)
}
