package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrCourseNotFound indicates a course was not found by the given identifier.
	ErrCourseNotFound = errors.New("course not found")

	// ErrTemplateNotFound indicates a template was not found by the given identifier.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrCourseAlreadyExists indicates a course with the same identifier already exists.
	ErrCourseAlreadyExists = errors.New("course already exists")
)

// CourseError wraps course-related persistence errors with context.
type CourseError struct {
	Op       string // Operation being performed (e.g., "GetByID", "Save", "Delete")
	CourseID string
	Err      error
	Message  string
}

func (e *CourseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s operation failed for course %s: %s (%v)", e.Op, e.CourseID, e.Message, e.Err)
	}

	return fmt.Sprintf("%s operation failed for course %s: %v", e.Op, e.CourseID, e.Err)
}

func (e *CourseError) Unwrap() error {
	return e.Err
}

// NewCourseError creates a course error with operation context.
func NewCourseError(op, courseID string, err error) *CourseError {
	return &CourseError{Op: op, CourseID: courseID, Err: err}
}

// IsCourseNotFound checks if an error indicates a missing course.
func IsCourseNotFound(err error) bool {
	return errors.Is(err, ErrCourseNotFound)
}

// IsTemplateNotFound checks if an error indicates a missing template.
func IsTemplateNotFound(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}
