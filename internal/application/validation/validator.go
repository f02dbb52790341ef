// Package validation wraps go-playground/validator for pre-flight checks of
// catalog requests.
//
// Field names in errors are the json names ("name", "categoryId").
// Messages can be overridden per field ("name") or per field and tag ("name.min").
package validation

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	domainerrors "github.com/Haleralex/storefront/internal/domain/errors"
	"github.com/Haleralex/storefront/internal/domain/valueobjects"
)

// ============================================
// Custom Validator Setup
// ============================================

var (
	setupOnce sync.Once
	validate  *validator.Validate
)

// Validator returns the shared, fully configured validator.
func Validator() *validator.Validate {
	setupOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		Register(validate)
	})
	return validate
}

// Register installs the json tag name func, the decimal type func and the
// custom validations on v. The mock backend registers them on gin's engine too.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// decimal.Decimal is validated as a float64 (gte, lte, ...)
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	_ = v.RegisterValidation("notblank", validateNotBlank)
}

// ============================================
// Custom Validators
// ============================================

// validateCurrencyCode проверяет код валюты (3 заглавные буквы).
func validateCurrencyCode(fl validator.FieldLevel) bool {
	return valueobjects.IsValidCurrencyCode(fl.Field().String())
}

// validateNotBlank rejects empty and whitespace-only strings.
func validateNotBlank(fl validator.FieldLevel) bool {
	return IsNonEmptyString(fl.Field().String())
}

// ============================================
// Struct validation
// ============================================

// Messages maps "field" or "field.tag" to a user-facing message.
type Messages map[string]string

func (m Messages) lookup(fe validator.FieldError) string {
	if msg, ok := m[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := m[fe.Field()]; ok {
		return msg
	}
	return getValidationMessage(fe)
}

// Struct validates s and converts failures into domain ValidationErrors.
// Every item wraps sentinel so callers can match with errors.Is.
func Struct(s any, msgs Messages, sentinel error) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domainerrors.NewValidationError("", err.Error(), sentinel)
	}

	var out domainerrors.ValidationErrors
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), msgs.lookup(fe), sentinel)
	}
	return out.ErrOrNil()
}

// getValidationMessage возвращает человекочитаемое сообщение об ошибке.
func getValidationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required"
	case "min":
		return "Value is too short (minimum: " + fe.Param() + ")"
	case "max":
		return "Value is too long (maximum: " + fe.Param() + ")"
	case "gte":
		return "Value must be at least " + fe.Param()
	case "lte":
		return "Value must be at most " + fe.Param()
	case "url":
		return "Invalid URL"
	case "currency_code":
		return "Invalid currency code (must be 3 uppercase letters)"
	default:
		return "Invalid value"
	}
}

// ============================================
// Plain helpers
// ============================================

// IsNonEmptyString reports whether s has a non-whitespace character.
func IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidURL reports whether raw parses as an absolute URL with a scheme and host.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// IsPositiveInteger reports whether n is strictly positive.
func IsPositiveInteger(n int) bool {
	return n > 0
}
