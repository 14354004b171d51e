package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code, so an error built with NewDomainError
// compares equal to the shared sentinel carrying the same code under errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidRequest      = NewDomainError("INVALID_REQUEST", "Invalid request")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrInternal            = NewDomainError("INTERNAL", "Internal error")
)

// InsufficientStockError reports a shortfall between the requested quantity
// and the quantity actually available. It unwraps to ErrInsufficientStock so
// callers can match it with errors.Is.
type InsufficientStockError struct {
	Required  int64
	Available int64
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: required %d, available %d", e.Required, e.Available)
}

// Unwrap allows errors.Is(err, ErrInsufficientStock) to match
func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// NewInsufficientStockError creates an InsufficientStockError with the given quantities
func NewInsufficientStockError(required, available int64) *InsufficientStockError {
	return &InsufficientStockError{Required: required, Available: available}
}
