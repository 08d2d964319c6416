package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/persistence/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSourceCourse(t *testing.T, service *Course) *models.Course {
	t.Helper()

	source := &models.Course{
		BasicInfo: models.BasicInfoSection{
			Code:     "MAR-101",
			Title:    "Coastal Navigation",
			Category: "maritime",
		},
		Enrollment: models.EnrollmentSection{MaxSeats: 12, CurrentEnrollment: 9},
		Content:    models.ContentSection{Overview: "A practical introduction."},
		Collections: map[models.CollectionName][]map[string]any{
			models.CollectionObjectives: {{"text": "Plot a coastal passage"}},
		},
	}

	created, err := service.Create(context.Background(), source)
	require.NoError(t, err)

	return created
}

func TestCourse_Clone(t *testing.T) {
	service := setupCourseService(t)
	ctx := context.Background()
	source := seedSourceCourse(t, service)

	result, err := service.Clone(ctx, CloneRequest{
		SourceID: source.ID,
		Overrides: models.CloneOverrides{
			Code:  "MAR-102",
			Title: "Coastal Navigation II",
		},
		Options: models.CloneOptions{
			CopyContent:     true,
			ResetEnrollment: true,
		},
	})
	require.NoError(t, err)

	clone := result.Course
	assert.NotEqual(t, source.ID, clone.ID)
	assert.Equal(t, "MAR-102", clone.BasicInfo.Code)
	assert.Equal(t, 0, clone.Enrollment.CurrentEnrollment)
	assert.Equal(t, "A practical introduction.", clone.Content.Overview)
	assert.Len(t, clone.Collections[models.CollectionObjectives], 1)
	assert.False(t, result.TemplateSaved)

	// The clone is persisted, not just returned.
	loaded, err := service.FetchByID(ctx, clone.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coastal Navigation II", loaded.BasicInfo.Title)
}

func TestCourse_Clone_EmptySource(t *testing.T) {
	service := setupCourseService(t)

	_, err := service.Clone(context.Background(), CloneRequest{SourceID: "  "})
	assert.ErrorIs(t, err, ErrEmptyCloneSource)
}

func TestCourse_Clone_SourceNotFound(t *testing.T) {
	service := setupCourseService(t)

	_, err := service.Clone(context.Background(), CloneRequest{SourceID: "missing"})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourse_Clone_DuplicateCode(t *testing.T) {
	service := setupCourseService(t)
	source := seedSourceCourse(t, service)

	_, err := service.Clone(context.Background(), CloneRequest{
		SourceID:  source.ID,
		Overrides: models.CloneOverrides{Code: "MAR-101", Title: "Same Code"},
	})
	assert.ErrorIs(t, err, ErrCodeTaken)
}

func TestCourse_Clone_SaveAsTemplate(t *testing.T) {
	store := file.NewPersistence(t.TempDir())
	service := NewCourse(store, slog.Default())
	ctx := context.Background()
	source := seedSourceCourse(t, service)

	result, err := service.Clone(ctx, CloneRequest{
		SourceID:  source.ID,
		Overrides: models.CloneOverrides{Code: "MAR-102", Title: "Coastal Navigation II"},
		Options: models.CloneOptions{
			SaveAsTemplate:   true,
			TemplateKeywords: []string{"navigation"},
		},
	})
	require.NoError(t, err)

	assert.True(t, result.TemplateSaved)
	require.NotEmpty(t, result.TemplateID)
	assert.Empty(t, result.TemplateSaveError)

	template, err := store.Templates().GetByID(ctx, result.TemplateID)
	require.NoError(t, err)
	assert.Equal(t, source.ID, template.SourceCourseID)
	assert.Equal(t, []string{"navigation"}, template.Keywords)
}
