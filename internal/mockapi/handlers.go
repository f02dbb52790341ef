package mockapi

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Haleralex/storefront/internal/application/dtos"
	"github.com/Haleralex/storefront/internal/application/validation"
	"github.com/Haleralex/storefront/internal/pkg/apierror"
	"github.com/Haleralex/storefront/internal/pkg/pagination"
)

var setupOnce sync.Once

// SetupValidator makes gin validate request bodies with the same `validate`
// tags and custom rules the client services use.
func SetupValidator() {
	setupOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.SetTagName("validate")
			validation.Register(v)
		}
	})
}

// ============================================
// Query parsing
// ============================================

func parseListQuery(c *gin.Context) (ListQuery, bool) {
	q := ListQuery{
		Page:       pagination.DefaultPageIndex,
		Size:       pagination.DefaultPageSize,
		Sort:       c.Query("sort"),
		Q:          c.Query("q"),
		CategoryID: c.Query("categoryId"),
	}

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			ValidationErrorResponse(c, []apierror.ErrorDetail{
				{Field: "page", Message: "must be greater than or equal to 0"},
			})
			return q, false
		}
		q.Page = n
	}
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			ValidationErrorResponse(c, []apierror.ErrorDetail{
				{Field: "size", Message: "must be a number"},
			})
			return q, false
		}
		q.Size = n
	}
	return q, true
}

// ============================================
// Product Handlers
// ============================================

type productHandler struct {
	store *Store
}

func (h *productHandler) listV1(c *gin.Context) {
	if q, ok := parseListQuery(c); ok {
		c.JSON(http.StatusOK, h.store.ProductsV1(q))
	}
}

func (h *productHandler) listV2(c *gin.Context) {
	if q, ok := parseListQuery(c); ok {
		c.JSON(http.StatusOK, h.store.ProductsV2(q))
	}
}

func (h *productHandler) listV3(c *gin.Context) {
	if q, ok := parseListQuery(c); ok {
		c.JSON(http.StatusOK, h.store.ProductsV3(q))
	}
}

func (h *productHandler) getV3(c *gin.Context) {
	p, err := h.store.ProductV3(c.Param("id"))
	if err != nil {
		HandleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.ProductResponse[dtos.ProductV3]{Product: p})
}

func (h *productHandler) createV3(c *gin.Context) {
	var req dtos.CreateProductV3Request
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleBindError(c, err)
		return
	}
	if !requireCategory(c, req.CategoryID) {
		return
	}

	p, err := h.store.CreateProductV3(req)
	if err != nil {
		HandleStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.ProductResponse[dtos.ProductV3]{Product: p})
}

func (h *productHandler) replaceV3(c *gin.Context) {
	var req dtos.UpdateProductV3Request
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleBindError(c, err)
		return
	}
	if !requireCategory(c, req.CategoryID) {
		return
	}

	p, err := h.store.ReplaceProductV3(c.Param("id"), req)
	if err != nil {
		HandleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.ProductResponse[dtos.ProductV3]{Product: p})
}

func (h *productHandler) patchV3(c *gin.Context) {
	var req dtos.PatchProductV3Request
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleBindError(c, err)
		return
	}
	if req.CategoryID != nil && !requireCategory(c, *req.CategoryID) {
		return
	}

	p, err := h.store.PatchProductV3(c.Param("id"), req)
	if err != nil {
		HandleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.ProductResponse[dtos.ProductV3]{Product: p})
}

func (h *productHandler) deleteV3(c *gin.Context) {
	if err := h.store.DeleteProductV3(c.Param("id")); err != nil {
		HandleStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func requireCategory(c *gin.Context, id string) bool {
	if validation.IsNonEmptyString(id) {
		return true
	}
	ValidationErrorResponse(c, []apierror.ErrorDetail{{Field: "categoryId", Message: "must not be null"}})
	return false
}

// ============================================
// Category Handlers
// ============================================

type categoryHandler struct {
	store *Store
}

func (h *categoryHandler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Categories())
}

func (h *categoryHandler) get(c *gin.Context) {
	cat, err := h.store.Category(c.Param("id"))
	if err != nil {
		HandleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *categoryHandler) create(c *gin.Context) {
	var req dtos.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleBindError(c, err)
		return
	}

	cat, err := h.store.CreateCategory(req.Name)
	if err != nil {
		HandleStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *categoryHandler) update(c *gin.Context) {
	var req dtos.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleBindError(c, err)
		return
	}

	cat, err := h.store.UpdateCategory(c.Param("id"), req.Name)
	if err != nil {
		HandleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *categoryHandler) delete(c *gin.Context) {
	if err := h.store.DeleteCategory(c.Param("id")); err != nil {
		HandleStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ============================================
// Health
// ============================================

func healthHandler(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version})
	}
}
