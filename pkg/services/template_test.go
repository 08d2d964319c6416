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

func TestTemplate_ListAndFetch(t *testing.T) {
	store := file.NewPersistence(t.TempDir())
	service := NewTemplate(store, slog.Default())
	ctx := context.Background()

	templates, err := service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, templates)

	require.NoError(t, store.Templates().Save(ctx, &models.CourseTemplate{
		ID:   "tpl-1",
		Name: "Coastal Navigation",
	}))

	templates, err = service.List(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)

	template, err := service.FetchByID(ctx, "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, "Coastal Navigation", template.Name)
}

func TestTemplate_FetchByID_NotFound(t *testing.T) {
	service := NewTemplate(file.NewPersistence(t.TempDir()), slog.Default())

	_, err := service.FetchByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
