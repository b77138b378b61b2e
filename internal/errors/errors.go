// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidSymbol = errors.New("invalid symbol")
	ErrInvalidQuery  = errors.New("invalid query")
	ErrQuotaExceeded = errors.New("upstream quota exceeded")
	ErrRefreshFailed = errors.New("catalog refresh failed")
	ErrConfigInvalid = errors.New("invalid configuration")
)

// UpstreamError represents a failed call to an upstream data source.
// The resolution pipeline treats every UpstreamError as a tier failure
// and falls through; it must never reach a caller of Resolve.
type UpstreamError struct {
	Source   string
	Endpoint string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream error [%s] %s: status %d", e.Source, e.Endpoint, e.Status)
	}
	return fmt.Sprintf("upstream error [%s] %s: %v", e.Source, e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates a new UpstreamError.
func NewUpstreamError(source, endpoint string, status int, err error) *UpstreamError {
	return &UpstreamError{
		Source:   source,
		Endpoint: endpoint,
		Status:   status,
		Err:      err,
	}
}

// DataError represents a malformed or schema-violating upstream payload.
// Treated identically to a transient upstream failure.
type DataError struct {
	Source  string
	Symbol  string
	Message string
	Err     error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s] %s: %s: %v", e.Source, e.Symbol, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s] %s: %s", e.Source, e.Symbol, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(source, symbol, message string, err error) *DataError {
	return &DataError{
		Source:  source,
		Symbol:  symbol,
		Message: message,
		Err:     err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
