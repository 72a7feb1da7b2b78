package apperrors

import "fmt"

// ValidationError indicates malformed or empty input, caught before any
// store interaction.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError creates a ValidationError
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

// NotFoundError indicates a referenced resource does not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// NewNotFoundError creates a NotFoundError
func NewNotFoundError(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

// InternalError indicates the store behaved unexpectedly, e.g. no generated
// identifier after an insert. Not recoverable by the caller.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return e.Msg
}

// NewInternalError creates an InternalError
func NewInternalError(msg string) *InternalError {
	return &InternalError{Msg: msg}
}

// StoreError wraps a fault raised by the storage engine during a unit of
// work. The cause is retained for diagnostics.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError wrapping the underlying cause
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
