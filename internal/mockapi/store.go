package mockapi

import (
	"cmp"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Haleralex/storefront/internal/application/dtos"
	"github.com/Haleralex/storefront/internal/pkg/pagination"
)

// ============================================
// Errors
// ============================================

// Failure is a store error that maps straight onto an HTTP status.
type Failure struct {
	Status  int
	Message string
}

func (f *Failure) Error() string { return f.Message }

func categoryNotFound(id string) *Failure {
	return &Failure{Status: http.StatusNotFound, Message: "Category not found with id: " + id}
}

func productNotFound(id string) *Failure {
	return &Failure{Status: http.StatusNotFound, Message: "Product not found with id: " + id}
}

func productID(n int) string {
	return fmt.Sprintf("prd_%03d", n)
}

// ============================================
// Queries
// ============================================

// ListQuery - параметры списка: page, size, sort ("field,asc|desc"), q, categoryId.
type ListQuery struct {
	Page       int
	Size       int
	Sort       string
	Q          string
	CategoryID string
}

// productKey exposes the fields lists filter and sort on.
type productKey struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	CreatedAt   time.Time
	CategoryID  string
}

func keyOf(p dtos.Product) productKey {
	k := productKey{ID: p.ID, Name: p.Name, Price: p.Price, CreatedAt: p.CreatedAt}
	if p.Description != nil {
		k.Description = *p.Description
	}
	return k
}

func keyV1(p dtos.Product) productKey   { return keyOf(p) }
func keyV2(p dtos.ProductV2) productKey { return keyOf(p.Product) }

func keyV3(p dtos.ProductV3) productKey {
	k := keyOf(p.Product)
	k.CategoryID = p.Category.ID
	return k
}

// pageOf filters, sorts and slices items. The input slice is not modified.
func pageOf[T any](items []T, q ListQuery, key func(T) productKey) *dtos.Page[T] {
	needle := strings.ToLower(strings.TrimSpace(q.Q))

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if q.CategoryID != "" && k.CategoryID != q.CategoryID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(k.Name), needle) &&
			!strings.Contains(strings.ToLower(k.Description), needle) {
			continue
		}
		filtered = append(filtered, item)
	}

	if cmpFn := comparator(q.Sort); cmpFn != nil {
		slices.SortStableFunc(filtered, func(a, b T) int { return cmpFn(key(a), key(b)) })
	}

	size := pagination.ClampSize(q.Size)
	total := len(filtered)
	start := min(q.Page*size, total)
	end := min(start+size, total)

	return &dtos.Page[T]{
		Items:         filtered[start:end],
		Page:          q.Page,
		Size:          size,
		TotalElements: total,
		TotalPages:    dtos.TotalPagesFor(total, size),
	}
}

// comparator parses "field,dir". Unknown fields leave the order unchanged.
func comparator(sortParam string) func(a, b productKey) int {
	field, dir, _ := strings.Cut(sortParam, ",")

	var fn func(a, b productKey) int
	switch strings.TrimSpace(field) {
	case "name":
		fn = func(a, b productKey) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) }
	case "price":
		fn = func(a, b productKey) int { return a.Price.Cmp(b.Price) }
	case "createdAt":
		fn = func(a, b productKey) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case "id":
		fn = func(a, b productKey) int { return cmp.Compare(a.ID, b.ID) }
	default:
		return nil
	}

	if strings.EqualFold(strings.TrimSpace(dir), "desc") {
		return func(a, b productKey) int { return -fn(a, b) }
	}
	return fn
}

// ============================================
// Store
// ============================================

// Store - потокобезопасное in-memory хранилище каталога.
type Store struct {
	mu             sync.RWMutex
	productsV1     []dtos.Product
	productsV2     []dtos.ProductV2
	productsV3     []dtos.ProductV3
	categories     []dtos.Category
	nextProduct    int
	nextCategoryID int
	now            func() time.Time
}

// NewStore creates a store seeded from f. A nil f means DefaultFixtures.
func NewStore(f *Fixtures) *Store {
	s := &Store{now: func() time.Time { return time.Now().UTC().Truncate(time.Second) }}
	s.Reset(f)
	return s
}

// Reset replaces all data with f (DefaultFixtures when nil).
func (s *Store) Reset(f *Fixtures) {
	if f == nil {
		f = DefaultFixtures()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.productsV1 = slices.Clone(f.ProductsV1)
	s.productsV2 = slices.Clone(f.ProductsV2)
	s.productsV3 = slices.Clone(f.ProductsV3)
	s.categories = slices.Clone(f.Categories)
	s.nextProduct = 301

	s.nextCategoryID = 1
	for _, c := range s.categories {
		if n, err := strconv.Atoi(c.ID); err == nil && n >= s.nextCategoryID {
			s.nextCategoryID = n + 1
		}
	}
}

// ProductsV1 returns one page of v1 products.
func (s *Store) ProductsV1(q ListQuery) *dtos.Page[dtos.Product] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pageOf(s.productsV1, q, keyV1)
}

// ProductsV2 returns one page of v2 products.
func (s *Store) ProductsV2(q ListQuery) *dtos.Page[dtos.ProductV2] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pageOf(s.productsV2, q, keyV2)
}

// ProductsV3 returns one page of v3 products.
func (s *Store) ProductsV3(q ListQuery) *dtos.Page[dtos.ProductV3] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pageOf(s.productsV3, q, keyV3)
}

// ============================================
// Products v3
// ============================================

// ProductV3 returns a product by id.
func (s *Store) ProductV3(id string) (dtos.ProductV3, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.productIndexLocked(id)
	if i < 0 {
		return dtos.ProductV3{}, productNotFound(id)
	}
	return s.productsV3[i], nil
}

// CreateProductV3 stores a new product in an existing category.
func (s *Store) CreateProductV3(req dtos.CreateProductV3Request) (dtos.ProductV3, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref, err := s.categoryRefLocked(req.CategoryID)
	if err != nil {
		return dtos.ProductV3{}, err
	}

	now := s.now()
	p := productFromRequest(req, ref)
	p.ID = productID(s.nextProduct)
	p.CreatedAt = now
	p.UpdatedAt = now
	s.nextProduct++

	s.productsV3 = append(s.productsV3, p)
	return p, nil
}

// ReplaceProductV3 overwrites every field of product id.
func (s *Store) ReplaceProductV3(id string, req dtos.UpdateProductV3Request) (dtos.ProductV3, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndexLocked(id)
	if i < 0 {
		return dtos.ProductV3{}, productNotFound(id)
	}
	ref, err := s.categoryRefLocked(req.CategoryID)
	if err != nil {
		return dtos.ProductV3{}, err
	}

	old := s.productsV3[i]
	p := productFromRequest(dtos.CreateProductV3Request(req), ref)
	p.ID = old.ID
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = s.now()

	s.productsV3[i] = p
	return p, nil
}

// PatchProductV3 applies the non-nil fields of req to product id.
func (s *Store) PatchProductV3(id string, req dtos.PatchProductV3Request) (dtos.ProductV3, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndexLocked(id)
	if i < 0 {
		return dtos.ProductV3{}, productNotFound(id)
	}

	p := s.productsV3[i]
	if req.CategoryID != nil {
		ref, err := s.categoryRefLocked(*req.CategoryID)
		if err != nil {
			return dtos.ProductV3{}, err
		}
		p.Category = ref
	}
	if req.SKU != nil {
		p.SKU = ptr(*req.SKU)
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = ptr(*req.Description)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Currency != nil {
		p.Currency = *req.Currency
	}
	if req.InStock != nil {
		p.InStock = *req.InStock
	}
	if req.ImageURL != nil {
		p.ImageURL = ptr(*req.ImageURL)
	}
	if req.DiscountPercent != nil {
		p.DiscountPercent = ptr(*req.DiscountPercent)
	}
	if req.Rating != nil {
		p.Rating = ptr(*req.Rating)
	}
	p.UpdatedAt = s.now()

	s.productsV3[i] = p
	return p, nil
}

// DeleteProductV3 removes product id.
func (s *Store) DeleteProductV3(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndexLocked(id)
	if i < 0 {
		return productNotFound(id)
	}
	s.productsV3 = slices.Delete(s.productsV3, i, i+1)
	return nil
}

func (s *Store) productIndexLocked(id string) int {
	return slices.IndexFunc(s.productsV3, func(p dtos.ProductV3) bool { return p.ID == id })
}

func productFromRequest(req dtos.CreateProductV3Request, ref dtos.CategoryRef) dtos.ProductV3 {
	p := dtos.ProductV3{
		ProductV2: dtos.ProductV2{
			Product: dtos.Product{
				SKU:         req.SKU,
				Name:        strings.TrimSpace(req.Name),
				Description: req.Description,
				Price:       req.Price,
				Currency:    req.Currency,
				InStock:     req.InStock,
			},
			DiscountPercent: ptr(req.DiscountPercent),
			Rating:          ptr(req.Rating),
		},
		Category: ref,
	}
	if req.ImageURL != "" {
		p.ImageURL = ptr(req.ImageURL)
	}
	return p
}

// ============================================
// Categories
// ============================================

// Categories returns all categories in insertion order.
func (s *Store) Categories() []dtos.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// Category returns a category by id.
func (s *Store) Category(id string) (dtos.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.categoryIndexLocked(id)
	if i < 0 {
		return dtos.Category{}, categoryNotFound(id)
	}
	return s.categories[i], nil
}

// CreateCategory adds a category; names are unique regardless of case.
func (s *Store) CreateCategory(name string) (dtos.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTakenLocked(name, "") {
		return dtos.Category{}, duplicateName(name)
	}

	now := s.now()
	c := dtos.Category{
		ID:        strconv.Itoa(s.nextCategoryID),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextCategoryID++
	s.categories = append(s.categories, c)
	return c, nil
}

// UpdateCategory renames category id. Embedded references in products follow.
func (s *Store) UpdateCategory(id, name string) (dtos.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndexLocked(id)
	if i < 0 {
		return dtos.Category{}, categoryNotFound(id)
	}
	if s.nameTakenLocked(name, id) {
		return dtos.Category{}, duplicateName(name)
	}

	s.categories[i].Name = name
	s.categories[i].UpdatedAt = s.now()
	for j := range s.productsV3 {
		if s.productsV3[j].Category.ID == id {
			s.productsV3[j].Category.Name = name
		}
	}
	return s.categories[i], nil
}

// DeleteCategory removes category id unless products still reference it.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndexLocked(id)
	if i < 0 {
		return categoryNotFound(id)
	}
	inUse := slices.ContainsFunc(s.productsV3, func(p dtos.ProductV3) bool { return p.Category.ID == id })
	if inUse {
		return &Failure{
			Status:  http.StatusConflict,
			Message: fmt.Sprintf("Cannot delete category with id %s because it has products", id),
		}
	}

	s.categories = slices.Delete(s.categories, i, i+1)
	return nil
}

func duplicateName(name string) *Failure {
	return &Failure{
		Status:  http.StatusConflict,
		Message: fmt.Sprintf("Category with name '%s' already exists", name),
	}
}

func (s *Store) categoryIndexLocked(id string) int {
	return slices.IndexFunc(s.categories, func(c dtos.Category) bool { return c.ID == id })
}

func (s *Store) nameTakenLocked(name, exceptID string) bool {
	return slices.ContainsFunc(s.categories, func(c dtos.Category) bool {
		return c.ID != exceptID && strings.EqualFold(c.Name, name)
	})
}

func (s *Store) categoryRefLocked(id string) (dtos.CategoryRef, error) {
	i := s.categoryIndexLocked(id)
	if i < 0 {
		return dtos.CategoryRef{}, categoryNotFound(id)
	}
	return dtos.CategoryRef{ID: s.categories[i].ID, Name: s.categories[i].Name}, nil
}
