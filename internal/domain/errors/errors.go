// Package errors defines the client-side domain errors of the storefront.
// These are raised before any network call (pre-flight validation) or when a
// failed mutation is translated into a user-facing message.
//
// Pattern: Sentinel Errors + Custom Error Types
package errors

import (
	"errors"
	"strings"
)

// Common sentinel errors for pre-flight validation
var (
	// Category errors
	ErrInvalidCategoryName = errors.New("invalid category name")
	ErrCategoryRequired    = errors.New("category is required")

	// Product errors
	ErrInvalidProductName        = errors.New("invalid product name")
	ErrInvalidProductDescription = errors.New("invalid product description")
	ErrInvalidPrice              = errors.New("invalid price")
	ErrInvalidCurrency           = errors.New("invalid currency code")
	ErrInvalidProduct            = errors.New("invalid product")
)

// Machine-readable codes for DomainError.
const (
	CodeDuplicateName  = "DUPLICATE_NAME"
	CodeHasProducts    = "HAS_PRODUCTS"
	CodeMutationFailed = "MUTATION_FAILED"
)

// DomainError carries a user-facing message together with a machine-readable
// code and the underlying error.
//
// Error() returns only Message: the text is shown to the user as is.
type DomainError struct {
	Code    string // Machine-readable error code (e.g., "DUPLICATE_NAME")
	Message string // Human-readable message
	Err     error  // Underlying error (for error chains)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError is a single pre-flight validation failure.
// Its text is the fixed user-facing message; Err is the matching sentinel.
type ValidationError struct {
	Field   string // Field name that failed validation (json name)
	Message string // What went wrong
	Err     error  // Sentinel, optional
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, sentinel error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: sentinel}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

// Error joins all messages.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

// Add appends a validation error.
func (e *ValidationErrors) Add(field, message string, sentinel error) {
	*e = append(*e, NewValidationError(field, message, sentinel))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Unwrap exposes every item so errors.Is/As see through the collection.
func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(e))
	for _, v := range e {
		errs = append(errs, v)
	}
	return errs
}

// Fields returns a field → message mapping (last message per field wins).
func (e ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, v := range e {
		out[v.Field] = v.Message
	}
	return out
}

// ErrOrNil returns nil for an empty collection.
func (e ValidationErrors) ErrOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Helper functions for common error checking

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var valErr *ValidationError
	var valErrs ValidationErrors
	return errors.As(err, &valErr) || errors.As(err, &valErrs)
}

// IsDomainError checks if an error carries the given domain code.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
