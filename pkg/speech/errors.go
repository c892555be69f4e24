package speech

import (
	"errors"
	"fmt"
)

// Sentinel errors for the speech layer.
var (
	// ErrEmptyAnswer is returned when the model responds without content.
	ErrEmptyAnswer = errors.New("speech: empty answer from model")
)

// APIError represents an error response from the AI endpoint.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the response body, trimmed.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("speech: API error %d: %s", e.StatusCode, e.Message)
}

// IsRetryable returns true if the request should be retried.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode == 429 || (e.StatusCode >= 500 && e.StatusCode < 600)
}
