package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for pipeline failures.
var (
	ErrInvalidURL   = errors.New("invalid YouTube URL")
	ErrNoTranscript = errors.New("no subtitles available")
	ErrNotFound     = errors.New("video not found")
	ErrRateLimited  = errors.New("rate limited by upstream service")
)

// ExternalServiceError wraps a failure from an external collaborator.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// NewExternalServiceError creates an ExternalServiceError.
func NewExternalServiceError(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Err: err}
}

// StorageError wraps a failure from the transcript store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %s", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError creates a StorageError.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
