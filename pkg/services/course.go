package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/persistence"
	"github.com/coursedesk/coursedesk/pkg/templates"
	"github.com/google/uuid"
)

var (
	// ErrCourseNotFound is returned when a course is not found.
	ErrCourseNotFound = persistence.ErrCourseNotFound
)

// Course is the application service over the course repository. It also
// implements session.Submitter, so the editing session submits through the
// same path the update endpoint uses.
type Course struct {
	persistence persistence.Persistence
	engine      *templates.Engine
	logger      *slog.Logger
}

// NewCourse creates a new course service.
func NewCourse(persistence persistence.Persistence, logger *slog.Logger) *Course {
	return &Course{
		persistence: persistence,
		engine:      templates.NewEngine(logger),
		logger:      logger.With("module", "services.course"),
	}
}

// HealthCheck checks the health of the persistence layer.
func (s *Course) HealthCheck(ctx context.Context) (string, bool) {
	if s.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := s.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List retrieves all courses.
func (s *Course) List(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.persistence.Courses().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, nil
}

// FetchByID retrieves one course.
func (s *Course) FetchByID(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.persistence.Courses().GetByID(ctx, id)
	if err != nil {
		if persistence.IsCourseNotFound(err) {
			return nil, ErrCourseNotFound
		}

		return nil, fmt.Errorf("failed to fetch course %s: %w", id, err)
	}

	return course, nil
}

// Create validates and persists a new course record.
func (s *Course) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	if course == nil {
		return nil, ErrCourseNil
	}

	if strings.TrimSpace(course.BasicInfo.Code) == "" {
		return nil, NewValidationError("Create", "CODE_REQUIRED", "course code is required", ErrCodeRequired)
	}

	if strings.TrimSpace(course.BasicInfo.Title) == "" {
		return nil, NewValidationError("Create", "TITLE_REQUIRED", "course title is required", ErrTitleRequired)
	}

	available, err := s.CheckCodeAvailability(ctx, course.BasicInfo.Code)
	if err != nil {
		return nil, err
	}

	if !available {
		return nil, NewValidationError("Create", "CODE_TAKEN",
			fmt.Sprintf("course code %q is already in use", course.BasicInfo.Code), ErrCodeTaken)
	}

	now := time.Now().UTC()

	if course.ID == "" {
		course.ID = uuid.New().String()
	}

	if course.Status == "" {
		course.Status = models.CourseStatusDraft
	}

	course.CreatedAt = now
	course.UpdatedAt = now

	if err := s.persistence.Courses().Save(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return course, nil
}

// Update persists changes to an existing course.
func (s *Course) Update(ctx context.Context, course *models.Course) (*models.Course, error) {
	if course == nil {
		return nil, ErrCourseNil
	}

	existing, err := s.FetchByID(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	course.CreatedAt = existing.CreatedAt
	course.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Courses().Save(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course %s: %w", course.ID, err)
	}

	return course, nil
}

// SubmitCourse persists an assembled submission payload. Create or update
// is decided by whether the record already exists.
func (s *Course) SubmitCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	_, err := s.persistence.Courses().GetByID(ctx, course.ID)

	switch {
	case err == nil:
		return s.Update(ctx, course)
	case persistence.IsCourseNotFound(err):
		return s.Create(ctx, course)
	default:
		return nil, fmt.Errorf("failed to check course %s: %w", course.ID, err)
	}
}

// Delete removes a course.
func (s *Course) Delete(ctx context.Context, id string) error {
	err := s.persistence.Courses().Delete(ctx, id)
	if err != nil {
		if persistence.IsCourseNotFound(err) {
			return ErrCourseNotFound
		}

		return fmt.Errorf("failed to delete course %s: %w", id, err)
	}

	return nil
}

// CheckCodeAvailability reports whether a candidate course code is free.
func (s *Course) CheckCodeAvailability(ctx context.Context, code string) (bool, error) {
	courses, err := s.persistence.Courses().List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check code availability: %w", err)
	}

	for _, course := range courses {
		if strings.EqualFold(course.BasicInfo.Code, code) {
			return false, nil
		}
	}

	return true, nil
}

// GenerateCode suggests a unique course code derived from a title.
func (s *Course) GenerateCode(ctx context.Context, title string) (string, error) {
	for range 5 {
		candidate := templates.SuggestCode(title)

		available, err := s.CheckCodeAvailability(ctx, candidate)
		if err != nil {
			return "", err
		}

		if available {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("failed to generate an available code for %q", title)
}
