package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned for any 401 response. Callers treat it as
	// session expiry: the configured OnUnauthorized hook has already fired
	// by the time this error is observed.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoContent marks a 204 or empty-body response. Do treats it as
	// success and never attempts JSON decoding of such responses.
	ErrNoContent = errors.New("no content")
)

// APIError is the normalized form of every non-2xx response other than 401.
// Message carries the backend's human-readable "message" field when the
// error body parses as JSON, otherwise a generic "HTTP <code>".
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError builds an APIError, falling back to "HTTP <code>" when the
// backend supplied no usable message.
func NewAPIError(statusCode int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("HTTP %d", statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: message}
}
