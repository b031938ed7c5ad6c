package provider

import (
	"errors"
	"fmt"
)

// APIError is a failure reported by the provider API itself, as opposed to
// a transport or decoding problem.
type APIError struct {
	// Code is the provider's machine-readable error kind,
	// e.g. SoftLayer_Exception_NotFound.
	Code string
	// Message is the provider's human-readable explanation.
	Message string
	// StatusCode is the HTTP status the error arrived with, if any.
	StatusCode int
}

// Error renders the code and message, whichever are present.
func (e *APIError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Message != "":
		return e.Message
	case e.Code != "":
		return e.Code
	default:
		return fmt.Sprintf("provider API error (HTTP %d)", e.StatusCode)
	}
}

// Is allows errors.Is() to match any APIError.
func (e *APIError) Is(target error) bool {
	_, ok := target.(*APIError)
	return ok
}

// AsAPIError returns the APIError wrapped in err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
