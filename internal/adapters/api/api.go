// Package api maps the catalog REST resources onto the HTTP client.
//
// Conventions:
//   - one method per REST operation, fixed path templates
//   - no validation, no error translation and no wrapping: errors come back
//     exactly as the HTTP client returned them
//   - ids are path-escaped
package api

import (
	"context"

	"github.com/Haleralex/storefront/internal/adapters/httpclient"
	"github.com/Haleralex/storefront/internal/application/dtos"
)

// Requester is the part of *httpclient.Client the resource clients use.
type Requester interface {
	Do(ctx context.Context, method, path string, opts httpclient.RequestOptions, out any) error
}

// Route templates (span names and metric labels).
const (
	routeProductsV1     = "/api/v1/products"
	routeProductsV2     = "/api/v2/products"
	routeProductsV3     = "/api/v3/products"
	routeProductV3      = "/api/v3/products/{id}"
	routeCategories     = "/api/v1/categories"
	routeCategory       = "/api/v1/categories/{id}"
	queryPage           = "page"
	querySize           = "size"
	querySort           = "sort"
	querySearch         = "q"
	queryCategoryFilter = "categoryId"
)

// listQuery builds page/size/sort/q. Empty sort and q are left out.
func listQuery(p dtos.ListProductsParams) httpclient.Query {
	return httpclient.NewQuery().
		SetInt(queryPage, p.Page).
		SetInt(querySize, p.Size).
		SetIfNotEmpty(querySort, p.Sort).
		SetIfNotEmpty(querySearch, p.Query)
}
