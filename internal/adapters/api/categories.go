package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Haleralex/storefront/internal/adapters/httpclient"
	"github.com/Haleralex/storefront/internal/application/dtos"
)

// Categories is the /api/v1/categories client.
type Categories struct {
	http Requester
}

// NewCategories creates a new categories client.
func NewCategories(r Requester) *Categories {
	return &Categories{http: r}
}

func categoryPath(id string) string {
	return routeCategories + "/" + url.PathEscape(id)
}

// List retrieves all categories (plain JSON array, no paging).
func (c *Categories) List(ctx context.Context) ([]dtos.Category, error) {
	var result []dtos.Category
	opts := httpclient.RequestOptions{Route: routeCategories}
	if err := c.http.Do(ctx, http.MethodGet, routeCategories, opts, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = []dtos.Category{}
	}
	return result, nil
}

// Get retrieves a single category by ID.
func (c *Categories) Get(ctx context.Context, id string) (*dtos.Category, error) {
	var result dtos.Category
	opts := httpclient.RequestOptions{Route: routeCategory}
	if err := c.http.Do(ctx, http.MethodGet, categoryPath(id), opts, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Create creates a new category.
func (c *Categories) Create(ctx context.Context, req dtos.CreateCategoryRequest) (*dtos.Category, error) {
	var result dtos.Category
	opts := httpclient.RequestOptions{Body: req, Route: routeCategories}
	if err := c.http.Do(ctx, http.MethodPost, routeCategories, opts, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update renames a category (PUT).
func (c *Categories) Update(ctx context.Context, id string, req dtos.UpdateCategoryRequest) (*dtos.Category, error) {
	var result dtos.Category
	opts := httpclient.RequestOptions{Body: req, Route: routeCategory}
	if err := c.http.Do(ctx, http.MethodPut, categoryPath(id), opts, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a category. The server refuses (409) while products reference it.
func (c *Categories) Delete(ctx context.Context, id string) error {
	opts := httpclient.RequestOptions{Route: routeCategory}
	return c.http.Do(ctx, http.MethodDelete, categoryPath(id), opts, nil)
}
