package templates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidTemplateDocument is returned when a template document fails
// schema validation.
var ErrInvalidTemplateDocument = errors.New("invalid template document")

// templateSchema guards template documents coming back from the template
// store before they are allowed to seed a draft.
const templateSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["id", "name"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"name": {"type": "string", "minLength": 1},
		"keywords": {"type": "array", "items": {"type": "string"}},
		"category": {"type": "string"},
		"language": {"type": "string"},
		"description": {"type": "string"},
		"collections": {
			"type": "object",
			"additionalProperties": {
				"type": "array",
				"items": {"type": "object"}
			}
		},
		"source_course_id": {"type": "string"}
	}
}`

// ValidateDocument checks a raw template JSON document against the
// template schema.
func ValidateDocument(raw []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(templateSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTemplateDocument, err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, resultError := range result.Errors() {
			details = append(details, resultError.String())
		}

		return fmt.Errorf("%w: %s", ErrInvalidTemplateDocument, strings.Join(details, "; "))
	}

	return nil
}
