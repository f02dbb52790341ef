// Package errmsg converts any failure of the catalog stack into a stable,
// display-ready message.
//
// Normalize is pure: the same error and context always give the same text.
package errmsg

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	domainerrors "github.com/Haleralex/storefront/internal/domain/errors"
	"github.com/Haleralex/storefront/internal/pkg/apierror"
)

// Fixed messages.
const (
	MsgBadRequest       = "Invalid request. Please check your input."
	MsgUnauthorized     = "Authentication required. Please log in."
	MsgForbidden        = "You do not have permission to perform this action."
	MsgConflict         = "This action conflicts with existing data. Please refresh and try again."
	MsgValidationFailed = "Validation failed. Please check your input."
	MsgTooManyRequests  = "Too many requests. Please wait a moment and try again."
	MsgServerError      = "Server error. Please contact support if the problem persists."
	MsgUnavailable      = "Service temporarily unavailable. Please try again later."
	MsgGatewayTimeout   = "Request timeout. Please check your connection and try again."

	MsgConnection      = "Unable to connect to server. Please check your connection."
	MsgTimedOut        = "Request timed out. Please try again."
	MsgCancelled       = "Request was cancelled. Please try again."
	MsgSecurityPolicy  = "Connection blocked by security policy. Please contact support."
	MsgInvalidResponse = "Invalid response format. Please contact support."

	MsgUnexpected = "An unexpected error occurred. Please try again."
)

// statusMessages - статусы с фиксированным текстом (server message ignored).
var statusMessages = map[int]string{
	http.StatusUnauthorized:        MsgUnauthorized,
	http.StatusForbidden:           MsgForbidden,
	http.StatusConflict:            MsgConflict,
	http.StatusTooManyRequests:     MsgTooManyRequests,
	http.StatusInternalServerError: MsgServerError,
	http.StatusBadGateway:          MsgUnavailable,
	http.StatusServiceUnavailable:  MsgUnavailable,
	http.StatusGatewayTimeout:      MsgGatewayTimeout,
}

// textRule maps substrings of a lower-cased error text to a message.
// Rules are tried in order.
type textRule struct {
	needles []string
	message string
}

var textRules = []textRule{
	{[]string{"network error", "failed to fetch"}, MsgConnection},
	{[]string{"timeout", "timed out"}, MsgTimedOut},
	{[]string{"abort"}, MsgCancelled},
	{[]string{"cors"}, MsgSecurityPolicy},
	{[]string{"json", "parse"}, MsgInvalidResponse},
}

// Normalize returns the user-facing message for err. label names the
// resource being loaded ("products", "categories") and may be empty.
func Normalize(err error, label string) string {
	if err == nil {
		return MsgUnexpected
	}

	// Domain and pre-flight errors already carry user-facing text.
	var de *domainerrors.DomainError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	if domainerrors.IsValidationError(err) {
		return err.Error()
	}

	if httpErr, ok := apierror.AsHTTPError(err); ok {
		return fromHTTPError(httpErr, label)
	}

	text := strings.ToLower(err.Error())
	for _, rule := range textRules {
		for _, needle := range rule.needles {
			if strings.Contains(text, needle) {
				return rule.message
			}
		}
	}

	if msg, ok := fromContextError(err); ok {
		return msg
	}

	return fmt.Sprintf("Failed to load %s. Please try again.", orDefault(label, "data"))
}

// NormalizeRecovered handles values caught with recover(): errors go through
// Normalize, anything else gives the unexpected-error message.
func NormalizeRecovered(v any, label string) string {
	if err, ok := v.(error); ok {
		return Normalize(err, label)
	}
	return MsgUnexpected
}

func fromHTTPError(e *apierror.HTTPError, label string) string {
	switch e.Status {
	case http.StatusBadRequest:
		return orDefault(e.ServerMessage(), MsgBadRequest)
	case http.StatusUnprocessableEntity:
		return orDefault(e.ServerMessage(), MsgValidationFailed)
	case http.StatusNotFound:
		return fmt.Sprintf("%s not found. Please try again later.", capitalize(orDefault(label, "resource")))
	}
	if msg, ok := statusMessages[e.Status]; ok {
		return msg
	}
	if msg := e.ServerMessage(); msg != "" {
		return msg
	}
	return fmt.Sprintf("Failed to load %s. Please try again.", orDefault(label, "resource"))
}

// fromContextError classifies bare cancellation and deadline errors that no
// text rule matched. Transport failures carry the "Network error: " prefix and
// never get here.
func fromContextError(err error) (string, bool) {
	if errors.Is(err, context.Canceled) {
		return MsgCancelled, true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return MsgTimedOut, true
	}
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return MsgTimedOut, true
	}
	return "", false
}

// ============================================
// Field errors and classifiers
// ============================================

// FieldErrors extracts field → message pairs from a 422-style error body or
// from client-side validation errors. It never returns nil.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	if httpErr, ok := apierror.AsHTTPError(err); ok {
		for _, d := range httpErr.Details() {
			if d.Field == "" {
				continue
			}
			out[d.Field] = d.Message
		}
		return out
	}

	var verrs domainerrors.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Fields()
	}
	var verr *domainerrors.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		out[verr.Field] = verr.Message
	}
	return out
}

// IsNetworkError reports whether no response was received.
func IsNetworkError(err error) bool {
	return apierror.IsNetwork(err)
}

// IsClientError reports a 4xx HTTP error.
func IsClientError(err error) bool {
	e, ok := apierror.AsHTTPError(err)
	return ok && e.Status >= 400 && e.Status < 500
}

// IsServerError reports a 5xx HTTP error.
func IsServerError(err error) bool {
	e, ok := apierror.AsHTTPError(err)
	return ok && e.Status >= 500 && e.Status < 600
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
