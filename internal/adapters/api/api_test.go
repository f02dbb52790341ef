package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haleralex/storefront/internal/adapters/httpclient"
	"github.com/Haleralex/storefront/internal/application/dtos"
	"github.com/Haleralex/storefront/internal/application/ports"
	"github.com/Haleralex/storefront/internal/pkg/apierror"
)

// Compile-time checks: the HTTP clients implement the ports.
var (
	_ ports.ProductsV1API = (*ProductsV1)(nil)
	_ ports.ProductsV2API = (*ProductsV2)(nil)
	_ ports.ProductsV3API = (*ProductsV3)(nil)
	_ ports.CategoriesAPI = (*Categories)(nil)
	_ Requester           = (*httpclient.Client)(nil)
)

type recorded struct {
	method string
	path   string
	query  string
	body   string
}

func newServer(t *testing.T, status int, payload string) (*httpclient.Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.EscapedPath()
		rec.query = r.URL.RawQuery
		b, _ := io.ReadAll(r.Body)
		rec.body = string(b)

		if payload != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)

	c, err := httpclient.New(httpclient.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return c, rec
}

const pageJSON = `{"items":[{"id":"prd_001","name":"iPhone 15","price":999.99,"currency":"USD","inStock":true,
"createdAt":"2024-01-15T10:00:00Z","updatedAt":"2024-01-15T10:00:00Z"}],
"page":0,"size":10,"totalElements":1,"totalPages":1}`

func TestProductsV1_List(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, pageJSON)

	page, err := NewProductsV1(c).List(context.Background(), dtos.ListProductsParams{Page: 0, Size: 10})

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/v1/products", rec.path)
	assert.Equal(t, "page=0&size=10", rec.query)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "iPhone 15", page.Items[0].Name)
	assert.Equal(t, "999.99", page.Items[0].Price.StringFixed(2))
	assert.Equal(t, 1, page.TotalPages)
}

func TestProductsV2_ListSendsSortAndQuery(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"items":[{"id":"prd_101","name":"Pixel","price":1,"currency":"USD",
"imageUrl":"https://placehold.co/600x400/EEE/31343C","discountPercent":10,"rating":4.5}],
"page":1,"size":5,"totalElements":6,"totalPages":2}`)

	page, err := NewProductsV2(c).List(context.Background(),
		dtos.ListProductsParams{Page: 1, Size: 5, Sort: "price,desc", Query: "pix"})

	require.NoError(t, err)
	assert.Equal(t, "/api/v2/products", rec.path)
	assert.Equal(t, "page=1&q=pix&size=5&sort=price%2Cdesc", rec.query)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].HasDiscount())
	require.NotNil(t, page.Items[0].Rating)
	assert.Equal(t, 4.5, *page.Items[0].Rating)
}

func TestProductsV3_ListCategoryFilter(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"items":[],"page":0,"size":12,"totalElements":0,"totalPages":0}`)
	api := NewProductsV3(c)

	_, err := api.List(context.Background(), dtos.ListProductsV3Params{
		ListProductsParams: dtos.ListProductsParams{Size: 12},
		CategoryID:         "3",
	})
	require.NoError(t, err)
	assert.Equal(t, "categoryId=3&page=0&size=12", rec.query)

	_, err = api.List(context.Background(), dtos.ListProductsV3Params{
		ListProductsParams: dtos.ListProductsParams{Size: 12},
	})
	require.NoError(t, err)
	assert.Equal(t, "page=0&size=12", rec.query)
}

func TestProductsV3_GetUnwrapsEnvelope(t *testing.T) {
	c, rec := newServer(t, http.StatusOK,
		`{"product":{"id":"a/b","name":"Pixel 9","price":799,"currency":"USD","category":{"id":"1","name":"Smartphones"}}}`)

	p, err := NewProductsV3(c).Get(context.Background(), "a/b")

	require.NoError(t, err)
	assert.Equal(t, "/api/v3/products/a%2Fb", rec.path)
	assert.Equal(t, "Pixel 9", p.Name)
	assert.Equal(t, "Smartphones", p.Category.Name)
}

func TestProductsV3_CreateSendsBody(t *testing.T) {
	c, rec := newServer(t, http.StatusCreated,
		`{"product":{"id":"prd_200","name":"Galaxy","price":10.5,"currency":"EUR","category":{"id":"1","name":"Smartphones"}}}`)

	req := dtos.CreateProductV3Request{Name: "Galaxy", Currency: "EUR", CategoryID: "1"}
	p, err := NewProductsV3(c).Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "prd_200", p.ID)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(rec.body), &sent))
	assert.Equal(t, "Galaxy", sent["name"])
	assert.Equal(t, "1", sent["categoryId"])
	assert.Equal(t, float64(0), sent["price"])
}

func TestProductsV3_ReplaceAndPatch(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"product":{"id":"prd_001","name":"Renamed","price":1,"currency":"USD"}}`)
	api := NewProductsV3(c)

	_, err := api.Replace(context.Background(), "prd_001", dtos.UpdateProductV3Request{Name: "Renamed", CategoryID: "1"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/v3/products/prd_001", rec.path)

	name := "Renamed"
	_, err = api.Patch(context.Background(), "prd_001", dtos.PatchProductV3Request{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, rec.method)
	assert.JSONEq(t, `{"name":"Renamed"}`, rec.body)
}

func TestProductsV3_DeleteNoContent(t *testing.T) {
	c, rec := newServer(t, http.StatusNoContent, "")

	err := NewProductsV3(c).Delete(context.Background(), "prd_001")

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, rec.method)
}

func TestCategories_ListPlainArray(t *testing.T) {
	c, rec := newServer(t, http.StatusOK,
		`[{"id":"1","name":"Smartphones","createdAt":"2024-01-15T10:00:00Z","updatedAt":"2024-01-15T10:00:00Z"}]`)

	cats, err := NewCategories(c).List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/categories", rec.path)
	assert.Empty(t, rec.query)
	require.Len(t, cats, 1)
	assert.Equal(t, "Smartphones", cats[0].Name)
	assert.Equal(t, 2024, cats[0].CreatedAt.Year())
}

func TestCategories_ListNullIsEmpty(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `null`)

	cats, err := NewCategories(c).List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, cats)
	assert.Empty(t, cats)
}

func TestCategories_MutationsUseExpectedVerbs(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"id":"6","name":"Cameras"}`)
	api := NewCategories(c)

	created, err := api.Create(context.Background(), dtos.CreateCategoryRequest{Name: "Cameras"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/v1/categories", rec.path)
	assert.JSONEq(t, `{"name":"Cameras"}`, rec.body)
	assert.Equal(t, "6", created.ID)

	_, err = api.Update(context.Background(), "6", dtos.UpdateCategoryRequest{Name: "Cameras"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/v1/categories/6", rec.path)

	_, err = api.Get(context.Background(), "6")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.method)
}

func TestCategories_ConflictPassesThroughUnmodified(t *testing.T) {
	c, _ := newServer(t, http.StatusConflict, `{"message":"Category with name 'Laptops' already exists"}`)

	_, err := NewCategories(c).Create(context.Background(), dtos.CreateCategoryRequest{Name: "Laptops"})

	require.Error(t, err)
	assert.Equal(t, "Category with name 'Laptops' already exists", err.Error())
	httpErr, ok := apierror.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
}

func TestCategories_DeleteConflict(t *testing.T) {
	c, rec := newServer(t, http.StatusConflict, `{"message":"Cannot delete category with id 1 because it has products"}`)

	err := NewCategories(c).Delete(context.Background(), "1")

	assert.True(t, apierror.IsStatus(err, http.StatusConflict))
	assert.Equal(t, http.MethodDelete, rec.method)
}

// fakeRequester records the call without any HTTP.
type fakeRequester struct {
	method string
	path   string
	opts   httpclient.RequestOptions
	err    error
}

func (f *fakeRequester) Do(_ context.Context, method, path string, opts httpclient.RequestOptions, _ any) error {
	f.method, f.path, f.opts = method, path, opts
	return f.err
}

func TestRoutesAreTemplates(t *testing.T) {
	f := &fakeRequester{}

	require.NoError(t, NewProductsV3(f).Delete(context.Background(), "prd_9"))
	assert.Equal(t, "/api/v3/products/prd_9", f.path)
	assert.Equal(t, "/api/v3/products/{id}", f.opts.Route)

	_, _ = NewCategories(f).Get(context.Background(), "2")
	assert.Equal(t, "/api/v1/categories/{id}", f.opts.Route)
}

func TestErrorsAreNotWrapped(t *testing.T) {
	sentinel := errors.New("boom")
	f := &fakeRequester{err: sentinel}

	_, err := NewProductsV1(f).List(context.Background(), dtos.ListProductsParams{})
	assert.Same(t, sentinel, err)

	_, err = NewCategories(f).List(context.Background())
	assert.Same(t, sentinel, err)
}
