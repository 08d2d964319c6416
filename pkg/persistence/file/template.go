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
	"github.com/coursedesk/coursedesk/pkg/templates"
)

// TemplateRepository stores each template as one JSON file under
// <root>/templates.
type TemplateRepository struct {
	root string
}

// NewTemplateRepository creates a template repository rooted at the given
// directory.
func NewTemplateRepository(root string) *TemplateRepository {
	return &TemplateRepository{root: root}
}

func (tr *TemplateRepository) dir() string {
	return filepath.Join(tr.root, "templates")
}

func (tr *TemplateRepository) path(id string) string {
	return filepath.Join(tr.dir(), id+".json")
}

// List returns all templates sorted by creation time, newest first.
func (tr *TemplateRepository) List(ctx context.Context) ([]*models.CourseTemplate, error) {
	root := os.DirFS(tr.dir())

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list template files: %w", err)
	}

	templates := make([]*models.CourseTemplate, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		id := file[:len(file)-5]

		template, err := tr.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load template %s: %w", id, err)
		}

		templates = append(templates, template)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].CreatedAt.After(templates[j].CreatedAt)
	})

	return templates, nil
}

// GetByID loads one template.
func (tr *TemplateRepository) GetByID(_ context.Context, id string) (*models.CourseTemplate, error) {
	data, err := os.ReadFile(tr.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, persistence.ErrTemplateNotFound
		}

		return nil, fmt.Errorf("failed to read template %s: %w", id, err)
	}

	if err := templates.ValidateDocument(data); err != nil {
		return nil, fmt.Errorf("template %s: %w", id, err)
	}

	var template models.CourseTemplate
	if err := json.Unmarshal(data, &template); err != nil {
		return nil, fmt.Errorf("failed to decode template %s: %w", id, err)
	}

	return &template, nil
}

// Save writes a template atomically via a temp file rename.
func (tr *TemplateRepository) Save(_ context.Context, template *models.CourseTemplate) error {
	if err := os.MkdirAll(tr.dir(), 0o755); err != nil {
		return fmt.Errorf("failed to create template directory: %w", err)
	}

	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode template %s: %w", template.ID, err)
	}

	tmp := tr.path(template.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write template %s: %w", template.ID, err)
	}

	if err := os.Rename(tmp, tr.path(template.ID)); err != nil {
		return fmt.Errorf("failed to write template %s: %w", template.ID, err)
	}

	return nil
}
