package explorer

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrMissingDataField indicates a page response without the expected list field.
	// It points at a wrong field name passed to Paginate, not at a server failure.
	ErrMissingDataField = errors.New("page response is missing the data field")
	// ErrInvalidPageSize indicates a non-positive page size
	ErrInvalidPageSize = errors.New("page size must be positive")
	// ErrNoTransactions indicates an empty batch transaction lookup
	ErrNoTransactions = errors.New("at least one transaction id is required")
)

// UnexpectedStatusError is returned for every response whose status is not 200
type UnexpectedStatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%s %s responded with unexpected status %d and content %q", e.Method, e.URL, e.StatusCode, e.Body)
}

// IsNotFound checks if the explorer did not know the requested resource
func (e *UnexpectedStatusError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsServerError checks if the explorer failed internally
func (e *UnexpectedStatusError) IsServerError() bool {
	return e.StatusCode >= 500
}

// UnexpectedContentTypeError is returned when a JSON endpoint answers with another content type
type UnexpectedContentTypeError struct {
	Method      string
	URL         string
	StatusCode  int
	ContentType string
	Body        string
}

// Error implements the error interface
func (e *UnexpectedContentTypeError) Error() string {
	return fmt.Sprintf("%s %s responded with status %d and unexpected content type %q: %q", e.Method, e.URL, e.StatusCode, e.ContentType, e.Body)
}
