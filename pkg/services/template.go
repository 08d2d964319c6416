package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/persistence"
)

var (
	// ErrTemplateNotFound is returned when a template is not found.
	ErrTemplateNotFound = persistence.ErrTemplateNotFound
)

// Template is the read-only application service over the template store.
type Template struct {
	persistence persistence.Persistence
	logger      *slog.Logger
}

// NewTemplate creates a new template service.
func NewTemplate(persistence persistence.Persistence, logger *slog.Logger) *Template {
	return &Template{
		persistence: persistence,
		logger:      logger.With("module", "services.template"),
	}
}

// List retrieves all templates.
func (s *Template) List(ctx context.Context) ([]*models.CourseTemplate, error) {
	templates, err := s.persistence.Templates().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	return templates, nil
}

// FetchByID retrieves one template.
func (s *Template) FetchByID(ctx context.Context, id string) (*models.CourseTemplate, error) {
	template, err := s.persistence.Templates().GetByID(ctx, id)
	if err != nil {
		if persistence.IsTemplateNotFound(err) {
			return nil, ErrTemplateNotFound
		}

		return nil, fmt.Errorf("failed to fetch template %s: %w", id, err)
	}

	return template, nil
}
