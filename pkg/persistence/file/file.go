// Package file provides file-based persistence for courses and templates,
// suited to development and tests.
package file

import (
	"context"
	"os"
	"strings"

	"github.com/coursedesk/coursedesk/pkg/persistence"
)

// Persistence implements persistence.Persistence on the file system.
type Persistence struct {
	root         string
	courseRepo   *CourseRepository
	templateRepo *TemplateRepository
}

// NewPersistence creates a file persistence rooted at the given directory.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:         cleanRoot,
		courseRepo:   NewCourseRepository(cleanRoot),
		templateRepo: NewTemplateRepository(cleanRoot),
	}
}

// Close performs any necessary cleanup. For file-based persistence, there
// is nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Courses returns the course repository.
func (fp *Persistence) Courses() persistence.CourseRepository {
	return fp.courseRepo
}

// Templates returns the template repository.
func (fp *Persistence) Templates() persistence.TemplateRepository {
	return fp.templateRepo
}
