// Package persistence provides the data storage abstraction for course
// records and the read-mostly template store.
package persistence

import (
	"context"

	"github.com/coursedesk/coursedesk/pkg/models"
)

// Persistence bundles the repositories one deployment runs on.
type Persistence interface {
	Courses() CourseRepository
	Templates() TemplateRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// CourseRepository stores submitted course records.
type CourseRepository interface {
	List(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	Save(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

// TemplateRepository stores de-identified course templates. The editor
// reads templates; writing happens only as the secondary effect of a
// clone.
type TemplateRepository interface {
	List(ctx context.Context) ([]*models.CourseTemplate, error)
	GetByID(ctx context.Context, id string) (*models.CourseTemplate, error)
	Save(ctx context.Context, template *models.CourseTemplate) error
}
