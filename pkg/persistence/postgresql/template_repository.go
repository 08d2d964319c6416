package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/persistence"
	"github.com/coursedesk/coursedesk/pkg/templates"
)

// TemplateRepository stores template documents whole in a JSONB column.
type TemplateRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTemplateRepository creates a template repository.
func NewTemplateRepository(db *sql.DB, logger *slog.Logger) *TemplateRepository {
	return &TemplateRepository{db: db, logger: logger.With("module", "postgresql.templates")}
}

// List returns all templates, newest first.
func (tr *TemplateRepository) List(ctx context.Context) ([]*models.CourseTemplate, error) {
	rows, err := tr.db.QueryContext(ctx,
		`SELECT document FROM course_templates ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.CourseTemplate

	for rows.Next() {
		var document []byte
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}

		var template models.CourseTemplate
		if err := json.Unmarshal(document, &template); err != nil {
			return nil, fmt.Errorf("failed to decode template: %w", err)
		}

		templates = append(templates, &template)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	return templates, nil
}

// GetByID loads one template.
func (tr *TemplateRepository) GetByID(ctx context.Context, id string) (*models.CourseTemplate, error) {
	var document []byte

	err := tr.db.QueryRowContext(ctx,
		`SELECT document FROM course_templates WHERE id = $1`, id).Scan(&document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrTemplateNotFound
		}

		return nil, fmt.Errorf("failed to load template %s: %w", id, err)
	}

	if err := templates.ValidateDocument(document); err != nil {
		return nil, fmt.Errorf("template %s: %w", id, err)
	}

	var template models.CourseTemplate
	if err := json.Unmarshal(document, &template); err != nil {
		return nil, fmt.Errorf("failed to decode template %s: %w", id, err)
	}

	return &template, nil
}

// Save upserts a template.
func (tr *TemplateRepository) Save(ctx context.Context, template *models.CourseTemplate) error {
	document, err := json.Marshal(template)
	if err != nil {
		return fmt.Errorf("failed to encode template %s: %w", template.ID, err)
	}

	_, err = tr.db.ExecContext(ctx, `
		INSERT INTO course_templates (id, name, document, source_course_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			document = EXCLUDED.document
	`, template.ID, template.Name, document, template.SourceCourseID, template.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save template %s: %w", template.ID, err)
	}

	return nil
}
