// Package kbo reads the public search site of the Crossroads Bank for Enterprises
// (KBO/BCE), the Belgian company registry.
package kbo

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEntityNotFound is returned when the registry page holds no company data
	ErrEntityNotFound = errors.New("entity not found in registry")

	// ErrNoEstablishmentTable is returned when the establishment page has no unit table
	ErrNoEstablishmentTable = errors.New("establishment unit table not found")
)

// APIError represents a non-200 answer from the registry site.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("KBO error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// RateLimitError represents a rate limit error.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("KBO rate limit exceeded, retry after %v", e.RetryAfter)
}
