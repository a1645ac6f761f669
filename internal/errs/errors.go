package errs

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates field errors so callers see every failing
// field at once instead of only the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return strings.Join(msgs, "; ")
}

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// NewValidation builds a single-field validation error.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Entity  string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// UniquenessError signals a unique-constraint violation.
type UniquenessError struct {
	Field   string
	Message string
}

func (e *UniquenessError) Error() string {
	return e.Message
}

// EmptySelectionError signals that a selection resolved to zero entities
// where at least one is required.
type EmptySelectionError struct {
	Message string
}

func (e *EmptySelectionError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var v *NotFoundError
	return errors.As(err, &v)
}

// IsUniqueness reports whether err is (or wraps) a UniquenessError.
func IsUniqueness(err error) bool {
	var v *UniquenessError
	return errors.As(err, &v)
}

// IsEmptySelection reports whether err is (or wraps) an EmptySelectionError.
func IsEmptySelection(err error) bool {
	var v *EmptySelectionError
	return errors.As(err, &v)
}
