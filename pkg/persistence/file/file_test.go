package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/persistence"
	"github.com/coursedesk/coursedesk/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCourse(id, code string) *models.Course {
	return &models.Course{
		ID:     id,
		Status: models.CourseStatusDraft,
		BasicInfo: models.BasicInfoSection{
			Code:  code,
			Title: "Coastal Navigation",
		},
		Collections: map[models.CollectionName][]map[string]any{
			models.CollectionModules: {{"title": "Charts"}},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestCourseRepository_SaveAndGet(t *testing.T) {
	p := NewPersistence(t.TempDir())
	ctx := context.Background()

	course := testCourse("course-1", "MAR-101")
	require.NoError(t, p.Courses().Save(ctx, course))

	loaded, err := p.Courses().GetByID(ctx, "course-1")
	require.NoError(t, err)
	assert.Equal(t, "MAR-101", loaded.BasicInfo.Code)
	require.Len(t, loaded.Collections[models.CollectionModules], 1)
	assert.Equal(t, "Charts", loaded.Collections[models.CollectionModules][0]["title"])
}

func TestCourseRepository_GetByID_NotFound(t *testing.T) {
	p := NewPersistence(t.TempDir())

	_, err := p.Courses().GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, persistence.ErrCourseNotFound)
}

func TestCourseRepository_List(t *testing.T) {
	p := NewPersistence(t.TempDir())
	ctx := context.Background()

	courses, err := p.Courses().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, courses)

	older := testCourse("course-1", "MAR-101")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := testCourse("course-2", "MAR-102")

	require.NoError(t, p.Courses().Save(ctx, older))
	require.NoError(t, p.Courses().Save(ctx, newer))

	courses, err = p.Courses().List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "course-2", courses[0].ID)
	assert.Equal(t, "course-1", courses[1].ID)
}

func TestCourseRepository_Delete(t *testing.T) {
	p := NewPersistence(t.TempDir())
	ctx := context.Background()

	require.NoError(t, p.Courses().Save(ctx, testCourse("course-1", "MAR-101")))
	require.NoError(t, p.Courses().Delete(ctx, "course-1"))

	_, err := p.Courses().GetByID(ctx, "course-1")
	assert.ErrorIs(t, err, persistence.ErrCourseNotFound)

	err = p.Courses().Delete(ctx, "course-1")
	assert.ErrorIs(t, err, persistence.ErrCourseNotFound)
}

func TestCourseRepository_SaveOverwrites(t *testing.T) {
	p := NewPersistence(t.TempDir())
	ctx := context.Background()

	course := testCourse("course-1", "MAR-101")
	require.NoError(t, p.Courses().Save(ctx, course))

	course.BasicInfo.Title = "Coastal Navigation II"
	require.NoError(t, p.Courses().Save(ctx, course))

	loaded, err := p.Courses().GetByID(ctx, "course-1")
	require.NoError(t, err)
	assert.Equal(t, "Coastal Navigation II", loaded.BasicInfo.Title)

	courses, err := p.Courses().List(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestTemplateRepository_SaveAndGet(t *testing.T) {
	p := NewPersistence(t.TempDir())
	ctx := context.Background()

	template := &models.CourseTemplate{
		ID:   "tpl-1",
		Name: "Coastal Navigation",
		Collections: map[models.CollectionName][]map[string]any{
			models.CollectionObjectives: {{"text": "Plot a passage"}},
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, p.Templates().Save(ctx, template))

	loaded, err := p.Templates().GetByID(ctx, "tpl-1")
	require.NoError(t, err)
	assert.Equal(t, "Coastal Navigation", loaded.Name)

	templates, err := p.Templates().List(ctx)
	require.NoError(t, err)
	assert.Len(t, templates, 1)
}

func TestTemplateRepository_GetByID_NotFound(t *testing.T) {
	p := NewPersistence(t.TempDir())

	_, err := p.Templates().GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, persistence.ErrTemplateNotFound)
}

func TestTemplateRepository_GetByID_RejectsInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	p := NewPersistence(dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "templates", "tpl-bad.json"),
		[]byte(`{"id": "tpl-bad", "keywords": ["navigation"]}`), 0o644))

	_, err := p.Templates().GetByID(context.Background(), "tpl-bad")
	assert.ErrorIs(t, err, templates.ErrInvalidTemplateDocument)
}

func TestPersistence_FileURLPrefix(t *testing.T) {
	dir := t.TempDir()
	p := NewPersistence("file://" + dir)

	require.NoError(t, p.HealthCheck(context.Background()))
	require.NoError(t, p.Close(context.Background()))
}

func TestPersistence_HealthCheck_MissingRoot(t *testing.T) {
	p := NewPersistence("/nonexistent/coursedesk-test")

	assert.Error(t, p.HealthCheck(context.Background()))
}
