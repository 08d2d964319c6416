package steps

import (
	"testing"

	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_TwelveOrderedSteps(t *testing.T) {
	r := NewRegistry()

	all := r.Steps()
	require.Len(t, all, Last)

	for i, step := range all {
		assert.Equal(t, i+1, step.Index)
		assert.NotEmpty(t, step.Name)
	}

	assert.Equal(t, "basic_info", all[0].Name)
	assert.Equal(t, "review", all[Last-1].Name)
}

func TestRegistry_Step_Bounds(t *testing.T) {
	r := NewRegistry()

	step, err := r.Step(First)
	require.NoError(t, err)
	assert.Equal(t, First, step.Index)

	_, err = r.Step(0)
	assert.Error(t, err)

	_, err = r.Step(Last + 1)
	assert.Error(t, err)
}

func TestRegistry_EveryCollectionHasAHome(t *testing.T) {
	r := NewRegistry()

	seen := make(map[models.CollectionName]bool)
	for _, step := range r.Steps() {
		for _, c := range step.VisibleCollections {
			assert.False(t, seen[c], "collection %s appears on two steps", c)
			seen[c] = true
		}
	}

	for _, c := range models.AllCollections() {
		assert.True(t, seen[c], "collection %s is not visible on any step", c)
	}
}

func TestRegistry_EveryUploadTypeHasAHome(t *testing.T) {
	r := NewRegistry()

	seen := make(map[models.UploadType]bool)
	for _, step := range r.Steps() {
		for _, u := range step.VisibleUploadTypes {
			seen[u] = true
		}
	}

	for _, u := range models.AllUploadTypes() {
		assert.True(t, seen[u], "upload type %s is not visible on any step", u)
	}
}
