package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory groups dashboard errors by the layer that raised them
type ErrorCategory string

const (
	ErrorCategoryValidation    ErrorCategory = "VALIDATION"
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"
	ErrorCategoryMarket        ErrorCategory = "MARKET"
	ErrorCategoryOrder         ErrorCategory = "ORDER"
	ErrorCategoryExport        ErrorCategory = "EXPORT"
)

// DashboardError represents a categorized error with context
type DashboardError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
	Context    map[string]interface{}
}

// Error implements the error interface
func (e *DashboardError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %s: %v", e.Category, e.Component, e.Operation, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *DashboardError) Unwrap() error {
	return e.Underlying
}

// NewDashboardError creates a new categorized error
func NewDashboardError(category ErrorCategory, component, operation, message string) *DashboardError {
	return &DashboardError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
		Context:   make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with dashboard context. A nil error stays nil.
func WrapError(err error, category ErrorCategory, component, operation string) error {
	if err == nil {
		return nil
	}

	return &DashboardError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    "operation failed",
		Underlying: err,
		Context:    make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (e *DashboardError) WithContext(key string, value interface{}) *DashboardError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// IsCategory reports whether any DashboardError in err's chain has the category.
func IsCategory(err error, category ErrorCategory) bool {
	var dashErr *DashboardError
	for err != nil {
		if !stderrors.As(err, &dashErr) {
			return false
		}
		if dashErr.Category == category {
			return true
		}
		err = dashErr.Underlying
	}
	return false
}

// Validation is shorthand for a VALIDATION error.
func Validation(component, operation, format string, args ...interface{}) *DashboardError {
	return NewDashboardError(ErrorCategoryValidation, component, operation, fmt.Sprintf(format, args...))
}
