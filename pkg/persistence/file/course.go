package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/persistence"
)

// CourseRepository stores each course as one JSON file under
// <root>/courses.
type CourseRepository struct {
	root string
}

// NewCourseRepository creates a course repository rooted at the given
// directory.
func NewCourseRepository(root string) *CourseRepository {
	return &CourseRepository{root: root}
}

func (cr *CourseRepository) dir() string {
	return filepath.Join(cr.root, "courses")
}

func (cr *CourseRepository) path(id string) string {
	return filepath.Join(cr.dir(), id+".json")
}

// List returns all courses sorted by creation time, newest first.
func (cr *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	root := os.DirFS(cr.dir())

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list course files: %w", err)
	}

	courses := make([]*models.Course, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		id := file[:len(file)-5] // Remove .json extension

		course, err := cr.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load course %s: %w", id, err)
		}

		courses = append(courses, course)
	}

	sort.Slice(courses, func(i, j int) bool {
		return courses[i].CreatedAt.After(courses[j].CreatedAt)
	})

	return courses, nil
}

// GetByID loads one course.
func (cr *CourseRepository) GetByID(_ context.Context, id string) (*models.Course, error) {
	data, err := os.ReadFile(cr.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, persistence.ErrCourseNotFound
		}

		return nil, persistence.NewCourseError("GetByID", id, err)
	}

	var course models.Course
	if err := json.Unmarshal(data, &course); err != nil {
		return nil, persistence.NewCourseError("GetByID", id, err)
	}

	return &course, nil
}

// Save writes a course atomically via a temp file rename.
func (cr *CourseRepository) Save(_ context.Context, course *models.Course) error {
	if err := os.MkdirAll(cr.dir(), 0o755); err != nil {
		return persistence.NewCourseError("Save", course.ID, err)
	}

	data, err := json.MarshalIndent(course, "", "  ")
	if err != nil {
		return persistence.NewCourseError("Save", course.ID, err)
	}

	tmp := cr.path(course.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return persistence.NewCourseError("Save", course.ID, err)
	}

	if err := os.Rename(tmp, cr.path(course.ID)); err != nil {
		return persistence.NewCourseError("Save", course.ID, err)
	}

	return nil
}

// Delete removes a course file.
func (cr *CourseRepository) Delete(_ context.Context, id string) error {
	err := os.Remove(cr.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return persistence.ErrCourseNotFound
		}

		return persistence.NewCourseError("Delete", id, err)
	}

	return nil
}
