// Package apierror defines the error values produced by the catalog HTTP client.
//
// Two kinds of failures leave the transport layer:
//   - HTTPError: the server answered with a non-2xx status (body optional)
//   - NetworkError: no response was received at all
//
// Both are plain error values, so callers inspect them with errors.As.
package apierror

import (
	"errors"
	"fmt"
)

// NetworkErrorPrefix marks transport failures in error text.
const NetworkErrorPrefix = "Network error: "

// ErrorDetail is a single field-level problem reported by the server.
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON error envelope returned with non-2xx statuses.
type ErrorResponse struct {
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
	TraceID string        `json:"traceId,omitempty"`
}

// HTTPError is returned for any non-2xx response.
// Body is nil when the response body was missing or was not a valid envelope.
type HTTPError struct {
	Status     int
	StatusText string
	Body       *ErrorResponse
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(status int, statusText string, body *ErrorResponse) *HTTPError {
	return &HTTPError{
		Status:     status,
		StatusText: statusText,
		Body:       body,
	}
}

// Error returns the server message when present, otherwise the status text.
func (e *HTTPError) Error() string {
	if msg := e.ServerMessage(); msg != "" {
		return msg
	}
	if e.StatusText != "" {
		return e.StatusText
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// ServerMessage returns the message field of the error body, if any.
func (e *HTTPError) ServerMessage() string {
	if e.Body == nil {
		return ""
	}
	return e.Body.Message
}

// Details returns the field-level details of the error body, if any.
func (e *HTTPError) Details() []ErrorDetail {
	if e.Body == nil {
		return nil
	}
	return e.Body.Details
}

// NetworkError wraps a failure that happened before any response arrived.
type NetworkError struct {
	Err error
}

// NewNetworkError wraps err as a network error.
func NewNetworkError(err error) *NetworkError {
	return &NetworkError{Err: err}
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Err == nil {
		return NetworkErrorPrefix + "unknown"
	}
	return NetworkErrorPrefix + e.Err.Error()
}

// Unwrap exposes the transport error for errors.Is (e.g. context.Canceled).
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AsHTTPError extracts an *HTTPError from the error chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsStatus reports whether err carries an HTTP error with the given status.
func IsStatus(err error, status int) bool {
	httpErr, ok := AsHTTPError(err)
	return ok && httpErr.Status == status
}

// IsNetwork reports whether err is a transport failure.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
