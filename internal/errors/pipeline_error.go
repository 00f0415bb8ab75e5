// Package errors provides standardized error types for pipeline operations.
// This package defines PipelineError for consistent error handling across
// all public APIs, with operation context and error wrapping support.
package errors

import (
	"errors"
	"fmt"
)

// PipelineError represents standardized errors across all pipeline stages
type PipelineError struct {
	Op      string // Stage or operation name (e.g., "normalize", "merge", "filter")
	Column  string // Column name if applicable
	Message string // Human-readable error description
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s failed on column '%s': %s", e.Op, e.Column, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause for error wrapping support
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is()
func (e *PipelineError) Is(target error) bool {
	if pe, ok := target.(*PipelineError); ok {
		return e.Op == pe.Op && e.Column == pe.Column && e.Message == pe.Message
	}
	return false
}

const schemaOp = "normalize"

// NewSchemaError creates the fatal error raised when a required column is
// missing after column-name normalization. A SchemaError aborts the load.
func NewSchemaError(table, column string) *PipelineError {
	return &PipelineError{
		Op:      schemaOp,
		Column:  column,
		Message: fmt.Sprintf("required column missing from %s table", table),
	}
}

// IsSchemaError reports whether err is a fatal schema validation error
func IsSchemaError(err error) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Op == schemaOp
	}
	return false
}

// NewColumnNotFoundError creates an error for operations on non-existent columns
func NewColumnNotFoundError(op, column string) *PipelineError {
	return &PipelineError{
		Op:      op,
		Column:  column,
		Message: "column does not exist",
	}
}

// NewInvalidInputError creates an error for invalid operation inputs
func NewInvalidInputError(op, message string) *PipelineError {
	return &PipelineError{
		Op:      op,
		Message: message,
	}
}

// NewUnsupportedTypeError creates an error for unsupported column types
func NewUnsupportedTypeError(op, column, typeName string) *PipelineError {
	return &PipelineError{
		Op:      op,
		Column:  column,
		Message: fmt.Sprintf("unsupported type: %s", typeName),
	}
}

// NewInternalError creates an error for internal operation failures
func NewInternalError(op string, cause error) *PipelineError {
	return &PipelineError{
		Op:      op,
		Message: "internal error occurred",
		Cause:   cause,
	}
}

// ErrEmptyView marks the empty-result terminal state. It is reported by
// aggregations that are undefined over zero rows; an empty filtered view
// itself is valid and is never an error.
var ErrEmptyView = &PipelineError{
	Op:      "aggregate",
	Message: "view contains no rows",
}
