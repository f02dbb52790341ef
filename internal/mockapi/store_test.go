package mockapi

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haleralex/storefront/internal/application/dtos"
)

func names[T any](page *dtos.Page[T], name func(T) string) []string {
	out := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		out = append(out, name(item))
	}
	return out
}

func v3Name(p dtos.ProductV3) string { return p.Name }

func TestFixtures_AreIndependent(t *testing.T) {
	a := DefaultFixtures()
	b := DefaultFixtures()

	a.Categories[0].Name = "Changed"
	*a.ProductsV1[0].Description = "Changed"

	assert.Equal(t, "Smartphones", b.Categories[0].Name)
	assert.Equal(t, "Latest Apple iPhone", *b.ProductsV1[0].Description)
}

func TestStore_PageOf(t *testing.T) {
	s := NewStore(nil)

	page := s.ProductsV3(ListQuery{Page: 1, Size: 5})
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.Size)
	assert.Equal(t, 14, page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)

	last := s.ProductsV3(ListQuery{Page: 2, Size: 5})
	assert.Len(t, last.Items, 4)

	beyond := s.ProductsV3(ListQuery{Page: 9, Size: 5})
	assert.NotNil(t, beyond.Items)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 14, beyond.TotalElements)
}

func TestStore_SizeIsClamped(t *testing.T) {
	s := NewStore(nil)

	assert.Equal(t, 10, s.ProductsV3(ListQuery{Size: 0}).Size)
	assert.Equal(t, 100, s.ProductsV3(ListQuery{Size: 1000}).Size)
}

func TestStore_SearchMatchesNameAndDescription(t *testing.T) {
	s := NewStore(nil)

	assert.Equal(t, []string{"Pixel 9"}, names(s.ProductsV3(ListQuery{Size: 10, Q: "PIXEL"}), v3Name))
	assert.Equal(t, []string{"AirPods Pro"}, names(s.ProductsV3(ListQuery{Size: 10, Q: "earbuds"}), v3Name))
	assert.Empty(t, s.ProductsV3(ListQuery{Size: 10, Q: "toaster"}).Items)
}

func TestStore_CategoryFilter(t *testing.T) {
	s := NewStore(nil)

	page := s.ProductsV3(ListQuery{Size: 20, CategoryID: "5"})
	assert.Equal(t, 3, page.TotalElements)
	for _, p := range page.Items {
		assert.Equal(t, "Audio", p.Category.Name)
	}
	assert.Zero(t, s.ProductsV3(ListQuery{Size: 20, CategoryID: "4"}).TotalElements)
}

func TestStore_Sort(t *testing.T) {
	s := NewStore(nil)

	asc := s.ProductsV3(ListQuery{Size: 3, Sort: "price,asc"})
	assert.Equal(t, []string{"JBL Flip 6", "Kindle Paperwhite", "AirPods Pro"}, names(asc, v3Name))

	desc := s.ProductsV3(ListQuery{Size: 1, Sort: "price,desc"})
	assert.Equal(t, []string{"Dell XPS 15"}, names(desc, v3Name))

	byName := s.ProductsV1(ListQuery{Size: 10, Sort: "name,desc"})
	assert.Equal(t, []string{"Pixel 9", "iPhone 15"}, names(byName, func(p dtos.Product) string { return p.Name }))

	unknown := s.ProductsV1(ListQuery{Size: 10, Sort: "color,asc"})
	assert.Equal(t, "prd_001", unknown.Items[0].ID)
}

func TestStore_CategoryLifecycle(t *testing.T) {
	s := NewStore(nil)

	created, err := s.CreateCategory("Cameras")
	require.NoError(t, err)
	assert.Equal(t, "6", created.ID)

	_, err = s.CreateCategory("laptops")
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, http.StatusConflict, f.Status)
	assert.Equal(t, "Category with name 'laptops' already exists", f.Message)

	renamed, err := s.UpdateCategory("1", "Phones")
	require.NoError(t, err)
	assert.Equal(t, "Phones", renamed.Name)

	p, err := s.ProductV3("prd_201")
	require.NoError(t, err)
	assert.Equal(t, "Phones", p.Category.Name)

	// renaming to its own name is not a conflict
	_, err = s.UpdateCategory("1", "phones")
	assert.NoError(t, err)

	err = s.DeleteCategory("1")
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "Cannot delete category with id 1 because it has products", f.Message)

	require.NoError(t, s.DeleteCategory("4"))
	_, err = s.Category("4")
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "Category not found with id: 4", f.Message)
}

func TestStore_ProductLifecycle(t *testing.T) {
	s := NewStore(nil)

	created, err := s.CreateProductV3(dtos.CreateProductV3Request{
		Name:       "Steam Deck",
		Price:      decimal.RequireFromString("549"),
		Currency:   "USD",
		InStock:    true,
		CategoryID: "4",
	})
	require.NoError(t, err)
	assert.Equal(t, "prd_301", created.ID)
	assert.Equal(t, dtos.CategoryRef{ID: "4", Name: "Gaming"}, created.Category)
	assert.Nil(t, created.ImageURL)

	_, err = s.CreateProductV3(dtos.CreateProductV3Request{Name: "Ghost", CategoryID: "99"})
	assert.EqualError(t, err, "Category not found with id: 99")

	name := "Steam Deck OLED"
	patched, err := s.PatchProductV3("prd_301", dtos.PatchProductV3Request{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Steam Deck OLED", patched.Name)
	assert.True(t, patched.Price.Equal(decimal.NewFromInt(549)))

	replaced, err := s.ReplaceProductV3("prd_301", dtos.UpdateProductV3Request{
		Name: "Switch", Price: decimal.NewFromInt(299), Currency: "EUR", CategoryID: "4",
	})
	require.NoError(t, err)
	assert.Equal(t, "Switch", replaced.Name)
	assert.Equal(t, created.CreatedAt, replaced.CreatedAt)

	assert.Error(t, s.DeleteCategory("4"))
	require.NoError(t, s.DeleteProductV3("prd_301"))
	assert.EqualError(t, s.DeleteProductV3("prd_301"), "Product not found with id: prd_301")
	assert.NoError(t, s.DeleteCategory("4"))
}

func TestStore_Reset(t *testing.T) {
	s := NewStore(EmptyFixtures())
	assert.Empty(t, s.Categories())

	_, err := s.CreateCategory("First")
	require.NoError(t, err)
	assert.Equal(t, "1", s.Categories()[0].ID)

	s.Reset(nil)
	assert.Len(t, s.Categories(), 5)
}
