// ABOUTME: Custom error types for the feed pipeline
// ABOUTME: Separates errors shown to the user from cache errors absorbed internally

package errors

import (
	"errors"
	"fmt"
)

// NetworkError represents a transport or I/O failure while fetching the feed
type NetworkError struct {
	URL        string
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network error fetching %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying cause
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// ParseError represents malformed feed content
type ParseError struct {
	Cause error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %v", e.Cause)
}

// Unwrap returns the underlying cause
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// CacheReadError represents a failure reading the cached feed.
// It never leaves the feed package.
type CacheReadError struct {
	Op    string
	Cause error
}

// Error implements the error interface
func (e *CacheReadError) Error() string {
	return fmt.Sprintf("cache read %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause
func (e *CacheReadError) Unwrap() error {
	return e.Cause
}

// CacheWriteError represents a failure persisting the fetched feed
type CacheWriteError struct {
	Op    string
	Cause error
}

// Error implements the error interface
func (e *CacheWriteError) Error() string {
	return fmt.Sprintf("cache write %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause
func (e *CacheWriteError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// IsNetwork checks if an error is a NetworkError
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsParse checks if an error is a ParseError
func IsParse(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsCache checks if an error is a CacheReadError or CacheWriteError
func IsCache(err error) bool {
	var readErr *CacheReadError
	var writeErr *CacheWriteError
	return errors.As(err, &readErr) || errors.As(err, &writeErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
