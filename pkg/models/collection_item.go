package models

import "time"

// ItemState is the staged-commit state of a dynamic collection item.
// Transitions are forward only: an item is created Entered and may move to
// Saved exactly once per save action. There is no transition back; callers
// delete and recreate instead.
type ItemState string

const (
	ItemStateEntered ItemState = "entered" // Present in the draft, not yet committed
	ItemStateSaved   ItemState = "saved"   // Committed copy exists, submission-eligible
)

// CollectionName identifies one of the repeatable sub-entity lists.
type CollectionName string

const (
	CollectionObjectives            CollectionName = "objectives"
	CollectionModules               CollectionName = "modules"
	CollectionAdditionalInstructors CollectionName = "additional_instructors"
	CollectionTargetAudience        CollectionName = "target_audience"
	CollectionProcedures            CollectionName = "procedures"
	CollectionEquipment             CollectionName = "equipment"
	CollectionQuizQuestions         CollectionName = "quiz_questions"
	CollectionPartnerHotels         CollectionName = "partner_hotels"
	CollectionVideoLinks            CollectionName = "video_links"
	CollectionExternalLinks         CollectionName = "external_links"
	CollectionCertificationBodies   CollectionName = "certification_bodies"
)

// AllCollections lists every collection in a stable order, used when
// iterating the whole draft (assembly, template instantiation).
func AllCollections() []CollectionName {
	return []CollectionName{
		CollectionObjectives,
		CollectionModules,
		CollectionAdditionalInstructors,
		CollectionTargetAudience,
		CollectionProcedures,
		CollectionEquipment,
		CollectionQuizQuestions,
		CollectionPartnerHotels,
		CollectionVideoLinks,
		CollectionExternalLinks,
		CollectionCertificationBodies,
	}
}

// CollectionItem is one repeatable sub-entity inside a draft. The ID is
// generated once at creation and never reused. Fields carries the
// collection-specific payload; the committed copy kept by the manager is a
// deep copy taken at save time, so later in-place edits do not leak into
// the submission payload without an explicit re-save.
type CollectionItem struct {
	ID         string         `json:"id"`
	Collection CollectionName `json:"collection"`
	Fields     map[string]any `json:"fields"`
	State      ItemState      `json:"state"`
	CreatedAt  time.Time      `json:"created_at"`
	SavedAt    *time.Time     `json:"saved_at,omitempty"`
}

// StringField returns the named field as a string, or "" when absent or of
// another type.
func (i *CollectionItem) StringField(name string) string {
	v, ok := i.Fields[name].(string)
	if !ok {
		return ""
	}

	return v
}

// IntField returns the named field as an int. JSON round-trips store
// numbers as float64, so both are accepted.
func (i *CollectionItem) IntField(name string) (int, bool) {
	switch v := i.Fields[name].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}

	return 0, false
}

// DeletionMarker records the explicit disassociation of a sub-entity that
// referenced an already-persisted identity, so the backend can tell
// "explicitly removed" apart from "never associated".
type DeletionMarker struct {
	Collection   CollectionName `json:"collection"`
	ReferencedID string         `json:"referenced_id"`
	CapturedRole string         `json:"captured_role,omitempty"`
}
