// Package services provides the course and template application services
// behind the HTTP surface.
package services

import (
	"errors"
	"fmt"
)

// Business logic errors. These indicate client errors (4xx responses).
var (
	// Validation errors (400 Bad Request).
	ErrInvalidRequest   = errors.New("invalid request")
	ErrCourseNil        = errors.New("course cannot be nil")
	ErrCodeRequired     = errors.New("course code is required")
	ErrTitleRequired    = errors.New("course title is required")
	ErrEmptyCloneSource = errors.New("clone source ID cannot be empty")
	ErrInvalidStatus    = errors.New("invalid course status")

	// Business logic conflicts (409 Conflict).
	ErrCodeTaken = errors.New("course code already in use")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrCourseNil) ||
		errors.Is(err, ErrCodeRequired) ||
		errors.Is(err, ErrTitleRequired) ||
		errors.Is(err, ErrEmptyCloneSource) ||
		errors.Is(err, ErrInvalidStatus)
}

// IsConflictError checks if an error is a business logic conflict that should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrCodeTaken)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
