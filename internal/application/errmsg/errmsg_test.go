package errmsg

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/Haleralex/storefront/internal/domain/errors"
	"github.com/Haleralex/storefront/internal/pkg/apierror"
)

func httpErr(status int, message string) error {
	var body *apierror.ErrorResponse
	if message != "" {
		body = &apierror.ErrorResponse{Message: message}
	}
	return apierror.NewHTTPError(status, http.StatusText(status), body)
}

func TestNormalize_HTTPStatuses(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		label string
		want  string
	}{
		{"400 with message", httpErr(400, "Page size too large"), "products", "Page size too large"},
		{"400 without message", httpErr(400, ""), "products", MsgBadRequest},
		{"401", httpErr(401, "token expired"), "", MsgUnauthorized},
		{"403", httpErr(403, ""), "", MsgForbidden},
		{"404 with label", httpErr(404, "Product not found with id: x"), "products", "Products not found. Please try again later."},
		{"404 without label", httpErr(404, ""), "", "Resource not found. Please try again later."},
		{"409", httpErr(409, "Category with name 'Audio' already exists"), "", MsgConflict},
		{"422 with message", httpErr(422, "Price must be positive"), "", "Price must be positive"},
		{"422 without message", httpErr(422, ""), "", MsgValidationFailed},
		{"429", httpErr(429, ""), "", MsgTooManyRequests},
		{"500", httpErr(500, "NullPointerException"), "products", MsgServerError},
		{"502", httpErr(502, ""), "", MsgUnavailable},
		{"503", httpErr(503, ""), "", MsgUnavailable},
		{"504", httpErr(504, ""), "", MsgGatewayTimeout},
		{"418 with message", httpErr(418, "I'm a teapot"), "products", "I'm a teapot"},
		{"418 without message", httpErr(418, ""), "categories", "Failed to load categories. Please try again."},
		{"418 without label", httpErr(418, ""), "", "Failed to load resource. Please try again."},
		{"wrapped", fmt.Errorf("listing: %w", httpErr(404, "")), "categories", "Categories not found. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.err, tt.label))
		})
	}
}

func TestNormalize_GenericErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		label string
		want  string
	}{
		{"failed to fetch", errors.New("Failed to fetch"), "", MsgConnection},
		{"network error", apierror.NewNetworkError(errors.New("dial tcp: connection refused")), "", MsgConnection},
		{"timeout text", errors.New("gateway Timeout reached"), "", MsgTimedOut},
		{"timed out text", errors.New("operation timed out"), "", MsgTimedOut},
		{"abort", errors.New("The user aborted a request"), "", MsgCancelled},
		{"cors", errors.New("blocked by CORS policy"), "", MsgSecurityPolicy},
		{"json", errors.New("Unexpected token < in JSON at position 0"), "", MsgInvalidResponse},
		{"parse", errors.New("parse response json: invalid character"), "", MsgInvalidResponse},
		{"other with label", errors.New("something odd"), "products", "Failed to load products. Please try again."},
		{"other without label", errors.New("something odd"), "", "Failed to load data. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.err, tt.label))
		})
	}
}

func TestNormalize_RuleOrder(t *testing.T) {
	// "network error" wins over "timeout" when both appear
	assert.Equal(t, MsgConnection, Normalize(errors.New("Network error: timeout"), ""))
	// "timeout" wins over "json"
	assert.Equal(t, MsgTimedOut, Normalize(errors.New("json decode timeout"), ""))
}

func TestNormalize_ContextErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		// transport failures are connectivity problems, whatever the cause
		{"aborted request", apierror.NewNetworkError(fmt.Errorf("Get \"x\": %w", context.Canceled)), MsgConnection},
		{"request deadline", apierror.NewNetworkError(fmt.Errorf("Get \"x\": %w", context.DeadlineExceeded)), MsgConnection},
		{"network error text", errors.New("Network error: context canceled"), MsgConnection},
		// bare context errors fall back to the context classification
		{"bare canceled", context.Canceled, MsgCancelled},
		{"bare deadline", fmt.Errorf("load: %w", context.DeadlineExceeded), MsgTimedOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.err, "products"))
		})
	}
}

func TestNormalize_DomainErrors(t *testing.T) {
	verr := domainerrors.NewValidationError("name", "Category name must be between 2 and 50 characters", domainerrors.ErrInvalidCategoryName)
	assert.Equal(t, "Category name must be between 2 and 50 characters", Normalize(verr, "categories"))

	conflict := httpErr(409, "Category with name 'Audio' already exists")
	de := domainerrors.NewDomainError(domainerrors.CodeDuplicateName, "Bu isimde bir kategori zaten mevcut", conflict)
	assert.Equal(t, "Bu isimde bir kategori zaten mevcut", Normalize(de, "categories"))
}

func TestNormalize_Unexpected(t *testing.T) {
	assert.Equal(t, MsgUnexpected, Normalize(nil, "products"))
	assert.Equal(t, MsgUnexpected, NormalizeRecovered("boom", "products"))
	assert.Equal(t, MsgUnexpected, NormalizeRecovered(42, ""))
	assert.Equal(t, MsgServerError, NormalizeRecovered(httpErr(500, ""), "products"))
}

func TestNormalize_Deterministic(t *testing.T) {
	err := httpErr(404, "")
	first := Normalize(err, "products")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Normalize(err, "products"))
	}
}

func TestFieldErrors(t *testing.T) {
	body := &apierror.ErrorResponse{
		Message: "Validation failed",
		Details: []apierror.ErrorDetail{
			{Field: "name", Message: "must not be blank"},
			{Field: "name", Message: "must be at least 3 characters"},
			{Field: "price", Message: "must be positive"},
			{Message: "no field"},
		},
	}
	err := apierror.NewHTTPError(422, "Unprocessable Entity", body)

	assert.Equal(t, map[string]string{"name": "must be at least 3 characters", "price": "must be positive"}, FieldErrors(err))
}

func TestFieldErrors_Empty(t *testing.T) {
	for _, err := range []error{nil, errors.New("plain"), httpErr(422, ""), httpErr(500, "x")} {
		got := FieldErrors(err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestFieldErrors_Validation(t *testing.T) {
	var verrs domainerrors.ValidationErrors
	verrs.Add("name", "Product name is required", domainerrors.ErrInvalidProduct)
	verrs.Add("price", "Price must be zero or positive", domainerrors.ErrInvalidProduct)

	assert.Equal(t, map[string]string{
		"name":  "Product name is required",
		"price": "Price must be zero or positive",
	}, FieldErrors(verrs))

	single := domainerrors.NewValidationError("categoryId", "Category is required for creating a product", domainerrors.ErrCategoryRequired)
	assert.Equal(t, map[string]string{"categoryId": "Category is required for creating a product"}, FieldErrors(single))
}

func TestClassifiers(t *testing.T) {
	netErr := apierror.NewNetworkError(errors.New("refused"))

	assert.True(t, IsNetworkError(netErr))
	assert.False(t, IsNetworkError(httpErr(500, "")))

	assert.True(t, IsClientError(httpErr(404, "")))
	assert.True(t, IsClientError(httpErr(409, "")))
	assert.False(t, IsClientError(httpErr(500, "")))
	assert.False(t, IsClientError(netErr))

	assert.True(t, IsServerError(httpErr(503, "")))
	assert.False(t, IsServerError(httpErr(422, "")))
	assert.False(t, IsServerError(nil))
}
