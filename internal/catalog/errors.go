package catalog

import (
	"fmt"
	"net/http"
)

// ErrMsgConnection is shown for every failure that is not an HTTP status error.
const ErrMsgConnection = "Failed to fetch skip data. Please check your connection and try again."

// APIError is the only error kind FetchByLocation returns. Message is safe to
// show to users; Err keeps the underlying cause for diagnostics.
type APIError struct {
	Message    string
	StatusCode int // zero for transport failures
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newStatusError(code int) *APIError {
	return &APIError{
		Message:    fmt.Sprintf("API request failed: %d %s", code, http.StatusText(code)),
		StatusCode: code,
	}
}

func newConnectionError(cause error) *APIError {
	return &APIError{
		Message: ErrMsgConnection,
		Err:     cause,
	}
}
