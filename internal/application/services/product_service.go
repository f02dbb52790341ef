package services

import (
	"context"

	"github.com/Haleralex/storefront/internal/application/dtos"
	"github.com/Haleralex/storefront/internal/application/ports"
	"github.com/Haleralex/storefront/internal/application/validation"
	domainerrors "github.com/Haleralex/storefront/internal/domain/errors"
)

// Тексты ошибок проверки товара.
const (
	CategoryRequiredOnCreate = "Category is required for creating a product"
	CategoryRequiredOnUpdate = "Category is required for updating a product"
)

var productMessages = validation.Messages{
	"name.notblank":   "Product name is required",
	"name.min":        "Product name must be at least 3 characters",
	"name.max":        "Product name must not exceed 120 characters",
	"description":     "Description must not exceed 2000 characters",
	"price":           "Price must be zero or positive",
	"currency":        "Currency must be a 3-letter uppercase code",
	"imageUrl":        "Image URL must be a valid URL",
	"discountPercent": "Discount must be between 0 and 100",
	"rating":          "Rating must be between 0 and 5",
}

// ============================================
// v1 / v2
// ============================================

// ProductService - список товаров v1, без проверок.
type ProductService struct {
	api ports.ProductsV1API
}

// NewProductService создаёт сервис товаров v1.
func NewProductService(api ports.ProductsV1API) *ProductService {
	return &ProductService{api: api}
}

// List возвращает страницу товаров.
func (s *ProductService) List(ctx context.Context, params dtos.ListProductsParams) (*dtos.Page[dtos.Product], error) {
	return s.api.List(ctx, params)
}

// ProductV2Service - список товаров v2.
type ProductV2Service struct {
	api ports.ProductsV2API
}

// NewProductV2Service создаёт сервис товаров v2.
func NewProductV2Service(api ports.ProductsV2API) *ProductV2Service {
	return &ProductV2Service{api: api}
}

// List возвращает страницу товаров v2.
func (s *ProductV2Service) List(ctx context.Context, params dtos.ListProductsParams) (*dtos.Page[dtos.ProductV2], error) {
	return s.api.List(ctx, params)
}

// ============================================
// v3
// ============================================

// ProductV3Service - товары v3 с категориями.
//
// Бизнес-правила:
// - create и replace требуют categoryId
// - поля товара проверяются до запроса (name 3..120, price >= 0, ...)
type ProductV3Service struct {
	api ports.ProductsV3API
}

// NewProductV3Service создаёт сервис товаров v3.
func NewProductV3Service(api ports.ProductsV3API) *ProductV3Service {
	return &ProductV3Service{api: api}
}

// List возвращает страницу товаров, опционально по категории.
func (s *ProductV3Service) List(ctx context.Context, params dtos.ListProductsV3Params) (*dtos.Page[dtos.ProductV3], error) {
	return s.api.List(ctx, params)
}

// Get возвращает товар по ID.
func (s *ProductV3Service) Get(ctx context.Context, id string) (*dtos.ProductV3, error) {
	return s.api.Get(ctx, id)
}

// Create создаёт товар.
func (s *ProductV3Service) Create(ctx context.Context, req dtos.CreateProductV3Request) (*dtos.ProductV3, error) {
	if !validation.IsNonEmptyString(req.CategoryID) {
		return nil, domainerrors.NewValidationError("categoryId", CategoryRequiredOnCreate, domainerrors.ErrCategoryRequired)
	}
	if err := validation.Struct(req, productMessages, domainerrors.ErrInvalidProduct); err != nil {
		return nil, err
	}
	return s.api.Create(ctx, req)
}

// Replace полностью заменяет товар.
func (s *ProductV3Service) Replace(ctx context.Context, id string, req dtos.UpdateProductV3Request) (*dtos.ProductV3, error) {
	if !validation.IsNonEmptyString(req.CategoryID) {
		return nil, domainerrors.NewValidationError("categoryId", CategoryRequiredOnUpdate, domainerrors.ErrCategoryRequired)
	}
	if err := validation.Struct(req, productMessages, domainerrors.ErrInvalidProduct); err != nil {
		return nil, err
	}
	return s.api.Replace(ctx, id, req)
}

// Patch частично обновляет товар. Only the fields that are set are checked;
// an explicitly blank categoryId is rejected.
func (s *ProductV3Service) Patch(ctx context.Context, id string, req dtos.PatchProductV3Request) (*dtos.ProductV3, error) {
	if req.CategoryID != nil && !validation.IsNonEmptyString(*req.CategoryID) {
		return nil, domainerrors.NewValidationError("categoryId", CategoryRequiredOnUpdate, domainerrors.ErrCategoryRequired)
	}
	if err := validation.Struct(req, productMessages, domainerrors.ErrInvalidProduct); err != nil {
		return nil, err
	}
	return s.api.Patch(ctx, id, req)
}

// Delete удаляет товар.
func (s *ProductV3Service) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, id)
}
