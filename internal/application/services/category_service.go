// Package services оборачивает API-клиенты каталога проверками до запроса.
//
// Правила:
//   - невалидный ввод отклоняется до любого сетевого вызова
//   - ошибки HTTP и сети возвращаются без изменений (их переводит в текст errmsg)
package services

import (
	"context"

	"github.com/Haleralex/storefront/internal/application/dtos"
	"github.com/Haleralex/storefront/internal/application/ports"
	"github.com/Haleralex/storefront/internal/application/validation"
	domainerrors "github.com/Haleralex/storefront/internal/domain/errors"
)

// CategoryNameMessage - текст ошибки при неверной длине имени категории.
const CategoryNameMessage = "Category name must be between 2 and 50 characters"

var categoryMessages = validation.Messages{
	"name": CategoryNameMessage,
}

// CategoryService - CRUD категорий с проверкой имени.
type CategoryService struct {
	api ports.CategoriesAPI
}

// NewCategoryService создаёт новый сервис категорий.
func NewCategoryService(api ports.CategoriesAPI) *CategoryService {
	return &CategoryService{api: api}
}

// List возвращает все категории.
func (s *CategoryService) List(ctx context.Context) ([]dtos.Category, error) {
	return s.api.List(ctx)
}

// ListPage returns all categories as one page, for the paginated resource.
func (s *CategoryService) ListPage(ctx context.Context) (*dtos.Page[dtos.Category], error) {
	items, err := s.api.List(ctx)
	if err != nil {
		return nil, err
	}
	return dtos.SinglePage(items), nil
}

// Get возвращает категорию по ID.
func (s *CategoryService) Get(ctx context.Context, id string) (*dtos.Category, error) {
	return s.api.Get(ctx, id)
}

// Create создаёт категорию. Name must be 2..50 characters.
func (s *CategoryService) Create(ctx context.Context, req dtos.CreateCategoryRequest) (*dtos.Category, error) {
	if err := validateCategoryName(req); err != nil {
		return nil, err
	}
	return s.api.Create(ctx, req)
}

// Update переименовывает категорию. Same name rule as Create.
func (s *CategoryService) Update(ctx context.Context, id string, req dtos.UpdateCategoryRequest) (*dtos.Category, error) {
	if err := validateCategoryName(req); err != nil {
		return nil, err
	}
	return s.api.Update(ctx, id, req)
}

// Delete удаляет категорию. A 409 comes back while products still reference it.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, id)
}

// validateCategoryName returns a single *ValidationError for the name field.
func validateCategoryName(req any) error {
	if err := validation.Struct(req, categoryMessages, domainerrors.ErrInvalidCategoryName); err != nil {
		return domainerrors.NewValidationError("name", CategoryNameMessage, domainerrors.ErrInvalidCategoryName)
	}
	return nil
}
