package services

import (
	"context"
	"strings"

	"github.com/coursedesk/coursedesk/pkg/models"
)

// CloneRequest carries the inputs of the clone endpoint.
type CloneRequest struct {
	SourceID  string                `json:"source_id"  validate:"required"`
	Overrides models.CloneOverrides `json:"overrides"  validate:"required"`
	Options   models.CloneOptions   `json:"options"`
}

// CloneResult is the clone outcome, including the fate of the secondary
// save-as-template attempt.
type CloneResult struct {
	Course            *models.Course `json:"course"`
	TemplateSaved     bool           `json:"template_saved"`
	TemplateID        string         `json:"template_id,omitempty"`
	TemplateSaveError string         `json:"template_save_error,omitempty"`
}

// Clone creates a new course from an existing one with selective field
// carry-over. When save-as-template is requested, the de-identified
// projection of the source is persisted as a secondary effect; its failure
// is reported in the result but never fails the clone.
func (s *Course) Clone(ctx context.Context, req CloneRequest) (*CloneResult, error) {
	if strings.TrimSpace(req.SourceID) == "" {
		return nil, NewValidationError("Clone", "SOURCE_REQUIRED", "clone source ID is required", ErrEmptyCloneSource)
	}

	source, err := s.FetchByID(ctx, req.SourceID)
	if err != nil {
		return nil, err
	}

	clone := s.engine.Clone(source, req.Overrides, req.Options)

	created, err := s.Create(ctx, clone)
	if err != nil {
		return nil, err
	}

	result := &CloneResult{Course: created}

	if req.Options.SaveAsTemplate {
		template := s.engine.Project(source, req.Options.TemplateKeywords)

		if err := s.persistence.Templates().Save(ctx, template); err != nil {
			s.logger.WarnContext(ctx, "secondary template save failed",
				"source_id", source.ID, "error", err)
			result.TemplateSaveError = err.Error()
		} else {
			result.TemplateSaved = true
			result.TemplateID = template.ID
		}
	}

	return result, nil
}
