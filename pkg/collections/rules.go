package collections

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/coursedesk/coursedesk/pkg/models"
)

// ObjectiveMaxLen is the character ceiling for a single learning
// objective.
const ObjectiveMaxLen = 300

// saveRule checks the collection-specific required fields of an item
// before it may transition to Saved. A nil return means the item is
// save-eligible.
func saveRule(item *models.CollectionItem) error {
	switch item.Collection {
	case models.CollectionObjectives:
		text := strings.TrimSpace(item.StringField("text"))
		if text == "" {
			return failed(item, "text", "objective text is required")
		}

		if utf8.RuneCountInString(text) > ObjectiveMaxLen {
			return failed(item, "text", fmt.Sprintf("objective exceeds %d characters", ObjectiveMaxLen))
		}
	case models.CollectionModules:
		if strings.TrimSpace(item.StringField("title")) == "" {
			return failed(item, "title", "module title is required")
		}
	case models.CollectionAdditionalInstructors:
		if strings.TrimSpace(item.StringField("name")) == "" {
			return failed(item, "name", "instructor name is required")
		}
	case models.CollectionTargetAudience:
		if strings.TrimSpace(item.StringField("text")) == "" {
			return failed(item, "text", "audience description is required")
		}
	case models.CollectionProcedures:
		if strings.TrimSpace(item.StringField("title")) == "" {
			return failed(item, "title", "procedure title is required")
		}
	case models.CollectionEquipment:
		if strings.TrimSpace(item.StringField("name")) == "" {
			return failed(item, "name", "equipment name is required")
		}
	case models.CollectionQuizQuestions:
		if strings.TrimSpace(item.StringField("question")) == "" {
			return failed(item, "question", "question text is required")
		}

		answer, ok := item.IntField("correct_answer")
		if !ok || answer < 1 || answer > 4 {
			return failed(item, "correct_answer", "correct answer must be between 1 and 4")
		}
	case models.CollectionPartnerHotels:
		if strings.TrimSpace(item.StringField("name")) == "" {
			return failed(item, "name", "hotel name is required")
		}
	case models.CollectionVideoLinks, models.CollectionExternalLinks:
		if err := checkURL(item); err != nil {
			return err
		}
	case models.CollectionCertificationBodies:
		if strings.TrimSpace(item.StringField("body_name")) == "" {
			return failed(item, "body_name", "certification body name is required")
		}
	default:
		return ErrUnknownCollection
	}

	return nil
}

func checkURL(item *models.CollectionItem) error {
	raw := strings.TrimSpace(item.StringField("url"))
	if raw == "" {
		return failed(item, "url", "url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return failed(item, "url", "not a valid absolute http(s) url")
	}

	return nil
}

func failed(item *models.CollectionItem, field, message string) *ValidationError {
	return &ValidationError{
		Collection: item.Collection,
		ItemID:     item.ID,
		Field:      field,
		Message:    message,
	}
}
