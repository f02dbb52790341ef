package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError(t *testing.T) {
	cause := errors.New("Category with name 'Audio' already exists")
	err := NewDomainError(CodeDuplicateName, "Bu isimde bir kategori zaten mevcut", cause)

	assert.Equal(t, "Bu isimde bir kategori zaten mevcut", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsDomainError(fmt.Errorf("wrap: %w", err), CodeDuplicateName))
	assert.False(t, IsDomainError(err, CodeHasProducts))
	assert.False(t, IsDomainError(cause, CodeDuplicateName))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("name", "Category name must be between 2 and 50 characters", ErrInvalidCategoryName)

	assert.Equal(t, "Category name must be between 2 and 50 characters", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidCategoryName))
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(errors.New("plain")))
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.False(t, errs.HasErrors())
	assert.NoError(t, errs.ErrOrNil())
	assert.Equal(t, "validation failed", errs.Error())

	errs.Add("name", "Product name is required", ErrInvalidProductName)
	errs.Add("currency", "Currency must be a 3-letter ISO code", ErrInvalidCurrency)
	errs.Add("name", "Product name must be at least 3 characters", ErrInvalidProductName)

	require.True(t, errs.HasErrors())
	err := errs.ErrOrNil()
	assert.Equal(t, "Product name is required; Currency must be a 3-letter ISO code; Product name must be at least 3 characters", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidCurrency))
	assert.True(t, IsValidationError(err))
	assert.Equal(t, map[string]string{
		"name":     "Product name must be at least 3 characters",
		"currency": "Currency must be a 3-letter ISO code",
	}, errs.Fields())

	var single *ValidationError
	require.True(t, errors.As(err, &single))
	assert.Equal(t, "name", single.Field)
}
