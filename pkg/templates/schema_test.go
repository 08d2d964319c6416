package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument(t *testing.T) {
	valid := []byte(`{
		"id": "tpl-1",
		"name": "Coastal Navigation",
		"keywords": ["navigation"],
		"collections": {
			"objectives": [{"text": "Plot a passage"}]
		}
	}`)
	require.NoError(t, ValidateDocument(valid))
}

func TestValidateDocument_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "missing name", raw: `{"id": "tpl-1"}`},
		{name: "empty id", raw: `{"id": "", "name": "X"}`},
		{name: "keywords not strings", raw: `{"id": "tpl-1", "name": "X", "keywords": [1]}`},
		{name: "collections not objects", raw: `{"id": "tpl-1", "name": "X", "collections": {"objectives": ["text"]}}`},
		{name: "not json", raw: `{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrInvalidTemplateDocument)
		})
	}
}
