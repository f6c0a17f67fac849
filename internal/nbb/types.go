// Package nbb provides a client for the National Bank of Belgium (CBSO) consult API,
// which publishes the annual account deposits of Belgian companies.
package nbb

import (
	"fmt"
	"time"
)

// APIError represents a non-200 answer from the CBSO API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("NBB API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// RateLimitError represents a rate limit error.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("NBB rate limit exceeded, retry after %v", e.RetryAfter)
}
