package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record, position or cash flow does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStorageQuotaExceeded is returned when the local durable store is full.
	ErrStorageQuotaExceeded = errors.New("local storage quota exceeded")
	// ErrOffline is returned by destructive operations that need the remote store.
	ErrOffline = errors.New("remote store unreachable: offline")
)

// ValidationError reports invalid user input. It is never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError carries the kind and id of a missing item.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// NetworkError is a transport failure: connection error, non-2xx status or timeout.
type NetworkError struct {
	Op         string
	StatusCode int
	Timeout    bool
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s: request timed out: %v", e.Op, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RemoteError is a 2xx response whose payload reports a failure.
type RemoteError struct {
	Op      string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: remote error: %s", e.Op, e.Message)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRetryable reports whether err should be recovered by queueing and retrying later.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return true
	}
	var re *RemoteError
	if errors.As(err, &re) {
		return true
	}
	return errors.Is(err, ErrOffline)
}
