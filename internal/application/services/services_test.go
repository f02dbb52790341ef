package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haleralex/storefront/internal/application/dtos"
	domainerrors "github.com/Haleralex/storefront/internal/domain/errors"
	"github.com/Haleralex/storefront/internal/pkg/apierror"
)

// ============================================
// Mocks
// ============================================

type mockCategoriesAPI struct {
	calls      int
	listFunc   func(ctx context.Context) ([]dtos.Category, error)
	createFunc func(ctx context.Context, req dtos.CreateCategoryRequest) (*dtos.Category, error)
	updateFunc func(ctx context.Context, id string, req dtos.UpdateCategoryRequest) (*dtos.Category, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockCategoriesAPI) List(ctx context.Context) ([]dtos.Category, error) {
	m.calls++
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []dtos.Category{}, nil
}

func (m *mockCategoriesAPI) Get(ctx context.Context, id string) (*dtos.Category, error) {
	m.calls++
	return &dtos.Category{ID: id}, nil
}

func (m *mockCategoriesAPI) Create(ctx context.Context, req dtos.CreateCategoryRequest) (*dtos.Category, error) {
	m.calls++
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &dtos.Category{ID: "6", Name: req.Name}, nil
}

func (m *mockCategoriesAPI) Update(ctx context.Context, id string, req dtos.UpdateCategoryRequest) (*dtos.Category, error) {
	m.calls++
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return &dtos.Category{ID: id, Name: req.Name}, nil
}

func (m *mockCategoriesAPI) Delete(ctx context.Context, id string) error {
	m.calls++
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockProductsV3API struct {
	calls      int
	createFunc func(ctx context.Context, req dtos.CreateProductV3Request) (*dtos.ProductV3, error)
}

func (m *mockProductsV3API) List(ctx context.Context, params dtos.ListProductsV3Params) (*dtos.Page[dtos.ProductV3], error) {
	m.calls++
	return &dtos.Page[dtos.ProductV3]{Items: []dtos.ProductV3{}, Size: params.Size}, nil
}

func (m *mockProductsV3API) Get(ctx context.Context, id string) (*dtos.ProductV3, error) {
	m.calls++
	p := &dtos.ProductV3{}
	p.ID = id
	return p, nil
}

func (m *mockProductsV3API) Create(ctx context.Context, req dtos.CreateProductV3Request) (*dtos.ProductV3, error) {
	m.calls++
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	p := &dtos.ProductV3{}
	p.Name = req.Name
	return p, nil
}

func (m *mockProductsV3API) Replace(ctx context.Context, id string, req dtos.UpdateProductV3Request) (*dtos.ProductV3, error) {
	m.calls++
	return &dtos.ProductV3{}, nil
}

func (m *mockProductsV3API) Patch(ctx context.Context, id string, req dtos.PatchProductV3Request) (*dtos.ProductV3, error) {
	m.calls++
	return &dtos.ProductV3{}, nil
}

func (m *mockProductsV3API) Delete(ctx context.Context, id string) error {
	m.calls++
	return nil
}

// ============================================
// CategoryService
// ============================================

func TestCategoryService_NameLengthBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{"too short", 1, true},
		{"min", 2, false},
		{"max", 50, false},
		{"too long", 51, true},
		{"empty", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockCategoriesAPI{}
			svc := NewCategoryService(api)

			_, err := svc.Create(context.Background(), dtos.CreateCategoryRequest{Name: strings.Repeat("a", tt.length)})

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, CategoryNameMessage, err.Error())
				assert.ErrorIs(t, err, domainerrors.ErrInvalidCategoryName)
				assert.True(t, domainerrors.IsValidationError(err))
				assert.Equal(t, 0, api.calls, "no network call on invalid input")
			} else {
				require.NoError(t, err)
				assert.Equal(t, 1, api.calls)
			}
		})
	}
}

func TestCategoryService_NameCountsCharacters(t *testing.T) {
	api := &mockCategoriesAPI{}
	svc := NewCategoryService(api)

	// 2 runes, 4 bytes
	_, err := svc.Create(context.Background(), dtos.CreateCategoryRequest{Name: "ğü"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "1", dtos.UpdateCategoryRequest{Name: strings.Repeat("ş", 51)})
	require.Error(t, err)
	assert.Equal(t, 1, api.calls)
}

func TestCategoryService_HTTPErrorsPassThrough(t *testing.T) {
	conflict := apierror.NewHTTPError(http.StatusConflict, "Conflict",
		&apierror.ErrorResponse{Message: "Cannot delete category with id 1 because it has products"})
	api := &mockCategoriesAPI{
		deleteFunc: func(ctx context.Context, id string) error { return conflict },
	}
	svc := NewCategoryService(api)

	err := svc.Delete(context.Background(), "1")

	assert.Same(t, conflict, err)
	assert.True(t, apierror.IsStatus(err, http.StatusConflict))
}

func TestCategoryService_DeleteSucceeds(t *testing.T) {
	svc := NewCategoryService(&mockCategoriesAPI{})
	assert.NoError(t, svc.Delete(context.Background(), "5"))
}

func TestCategoryService_ListPage(t *testing.T) {
	api := &mockCategoriesAPI{
		listFunc: func(ctx context.Context) ([]dtos.Category, error) {
			return []dtos.Category{{ID: "1", Name: "Smartphones"}, {ID: "2", Name: "Laptops"}}, nil
		},
	}
	svc := NewCategoryService(api)

	page, err := svc.ListPage(context.Background())

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 2, page.TotalElements)

	api.listFunc = func(ctx context.Context) ([]dtos.Category, error) { return nil, errors.New("boom") }
	_, err = svc.ListPage(context.Background())
	assert.EqualError(t, err, "boom")
}

// ============================================
// ProductV3Service
// ============================================

func validCreate() dtos.CreateProductV3Request {
	return dtos.CreateProductV3Request{
		Name:       "iPhone 15",
		Price:      decimal.RequireFromString("999.99"),
		Currency:   "USD",
		CategoryID: "1",
	}
}

func TestProductV3Service_CreateRequiresCategory(t *testing.T) {
	for _, id := range []string{"", "   "} {
		api := &mockProductsV3API{}
		svc := NewProductV3Service(api)

		req := validCreate()
		req.CategoryID = id
		_, err := svc.Create(context.Background(), req)

		require.Error(t, err)
		assert.Equal(t, CategoryRequiredOnCreate, err.Error())
		assert.ErrorIs(t, err, domainerrors.ErrCategoryRequired)
		assert.Equal(t, 0, api.calls)
	}
}

func TestProductV3Service_ReplaceRequiresCategory(t *testing.T) {
	api := &mockProductsV3API{}
	svc := NewProductV3Service(api)

	req := dtos.UpdateProductV3Request(validCreate())
	req.CategoryID = ""
	_, err := svc.Replace(context.Background(), "prd_001", req)

	require.Error(t, err)
	assert.Equal(t, CategoryRequiredOnUpdate, err.Error())
	assert.Equal(t, 0, api.calls)

	req.CategoryID = "2"
	_, err = svc.Replace(context.Background(), "prd_001", req)
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)
}

func TestProductV3Service_CreateFieldValidation(t *testing.T) {
	long := strings.Repeat("x", 2001)

	tests := []struct {
		name    string
		mutate  func(r *dtos.CreateProductV3Request)
		field   string
		message string
	}{
		{"blank name", func(r *dtos.CreateProductV3Request) { r.Name = "  " }, "name", "Product name is required"},
		{"short name", func(r *dtos.CreateProductV3Request) { r.Name = "ab" }, "name", "Product name must be at least 3 characters"},
		{"long name", func(r *dtos.CreateProductV3Request) { r.Name = strings.Repeat("n", 121) }, "name", "Product name must not exceed 120 characters"},
		{"long description", func(r *dtos.CreateProductV3Request) { r.Description = &long }, "description", "Description must not exceed 2000 characters"},
		{"negative price", func(r *dtos.CreateProductV3Request) { r.Price = decimal.RequireFromString("-1") }, "price", "Price must be zero or positive"},
		{"bad currency", func(r *dtos.CreateProductV3Request) { r.Currency = "usd" }, "currency", "Currency must be a 3-letter uppercase code"},
		{"bad image", func(r *dtos.CreateProductV3Request) { r.ImageURL = "nope" }, "imageUrl", "Image URL must be a valid URL"},
		{"discount over 100", func(r *dtos.CreateProductV3Request) { r.DiscountPercent = 101 }, "discountPercent", "Discount must be between 0 and 100"},
		{"rating over 5", func(r *dtos.CreateProductV3Request) { r.Rating = 5.5 }, "rating", "Rating must be between 0 and 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockProductsV3API{}
			svc := NewProductV3Service(api)

			req := validCreate()
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), req)

			require.Error(t, err)
			var verrs domainerrors.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.message, verrs.Fields()[tt.field])
			assert.ErrorIs(t, err, domainerrors.ErrInvalidProduct)
			assert.Equal(t, 0, api.calls)
		})
	}
}

func TestProductV3Service_CreateValid(t *testing.T) {
	api := &mockProductsV3API{}
	svc := NewProductV3Service(api)

	req := validCreate()
	req.ImageURL = "https://placehold.co/600x400/EEE/31343C"
	req.DiscountPercent = 100
	req.Rating = 5
	p, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "iPhone 15", p.Name)
	assert.Equal(t, 1, api.calls)
}

func TestProductV3Service_Patch(t *testing.T) {
	api := &mockProductsV3API{}
	svc := NewProductV3Service(api)

	blank := " "
	_, err := svc.Patch(context.Background(), "prd_001", dtos.PatchProductV3Request{CategoryID: &blank})
	assert.EqualError(t, err, CategoryRequiredOnUpdate)

	short := "ab"
	_, err = svc.Patch(context.Background(), "prd_001", dtos.PatchProductV3Request{Name: &short})
	assert.EqualError(t, err, "Product name must be at least 3 characters")
	assert.Equal(t, 0, api.calls)

	price := decimal.RequireFromString("10")
	_, err = svc.Patch(context.Background(), "prd_001", dtos.PatchProductV3Request{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)
}

func TestProductV3Service_NetworkErrorPassesThrough(t *testing.T) {
	netErr := apierror.NewNetworkError(errors.New("connection refused"))
	api := &mockProductsV3API{
		createFunc: func(ctx context.Context, req dtos.CreateProductV3Request) (*dtos.ProductV3, error) {
			return nil, netErr
		},
	}
	svc := NewProductV3Service(api)

	_, err := svc.Create(context.Background(), validCreate())

	assert.Same(t, netErr, err)
}

func TestProductV3Service_ReadsAndDelete(t *testing.T) {
	api := &mockProductsV3API{}
	svc := NewProductV3Service(api)

	page, err := svc.List(context.Background(), dtos.ListProductsV3Params{ListProductsParams: dtos.ListProductsParams{Size: 12}})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Size)

	p, err := svc.Get(context.Background(), "prd_002")
	require.NoError(t, err)
	assert.Equal(t, "prd_002", p.ID)

	require.NoError(t, svc.Delete(context.Background(), "prd_002"))
	assert.Equal(t, 3, api.calls)
}
