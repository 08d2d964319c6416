// Package steps defines the fixed 12-step layout of the course editor and
// the bounded step pointer that walks it.
package steps

import (
	"fmt"

	"github.com/coursedesk/coursedesk/pkg/models"
)

const (
	// First and Last bound the step pointer.
	First = 1
	Last  = 12
)

// Step describes one editor step: the scalar fields that must be filled,
// the collections rendered there, and the upload types staged there.
type Step struct {
	Index              int
	Name               string
	RequiredFieldPaths []string
	VisibleCollections []models.CollectionName
	VisibleUploadTypes []models.UploadType
}

// Registry holds the static, ordered step definitions.
type Registry struct {
	steps []Step
}

// NewRegistry returns the registry with the canonical 12-step layout.
func NewRegistry() *Registry {
	return &Registry{steps: []Step{
		{
			Index:              1,
			Name:               "basic_info",
			RequiredFieldPaths: []string{"basic_info.code", "basic_info.title"},
		},
		{
			Index:              2,
			Name:               "schedule",
			RequiredFieldPaths: []string{"schedule.start_date", "schedule.end_date"},
		},
		{
			Index:              3,
			Name:               "enrollment",
			RequiredFieldPaths: []string{"enrollment.max_seats", "enrollment.price"},
		},
		{
			Index:              4,
			Name:               "instructors",
			RequiredFieldPaths: []string{"instructors.lead_instructor"},
			VisibleCollections: []models.CollectionName{models.CollectionAdditionalInstructors},
		},
		{
			Index:              5,
			Name:               "venue",
			RequiredFieldPaths: []string{"venue.name", "venue.city"},
			VisibleCollections: []models.CollectionName{models.CollectionPartnerHotels},
		},
		{
			Index:              6,
			Name:               "content",
			RequiredFieldPaths: []string{"content.overview"},
			VisibleCollections: []models.CollectionName{
				models.CollectionObjectives,
				models.CollectionModules,
				models.CollectionTargetAudience,
			},
		},
		{
			Index: 7,
			Name:  "practical",
			VisibleCollections: []models.CollectionName{
				models.CollectionProcedures,
				models.CollectionEquipment,
			},
			VisibleUploadTypes: []models.UploadType{models.UploadTypeDocuments},
		},
		{
			Index:              8,
			Name:               "assessment",
			RequiredFieldPaths: []string{"assessment.pass_score"},
			VisibleCollections: []models.CollectionName{models.CollectionQuizQuestions},
		},
		{
			Index:              9,
			Name:               "certification",
			RequiredFieldPaths: []string{"certification.certificate_title"},
			VisibleCollections: []models.CollectionName{models.CollectionCertificationBodies},
		},
		{
			Index: 10,
			Name:  "inclusions",
		},
		{
			Index: 11,
			Name:  "media",
			VisibleCollections: []models.CollectionName{
				models.CollectionVideoLinks,
				models.CollectionExternalLinks,
			},
			VisibleUploadTypes: []models.UploadType{
				models.UploadTypeMainImage,
				models.UploadTypeImages,
				models.UploadTypeVideos,
			},
		},
		{
			Index:              12,
			Name:               "review",
			RequiredFieldPaths: []string{"contact.email"},
		},
	}}
}

// Step returns the definition at the given 1-based index.
func (r *Registry) Step(index int) (Step, error) {
	if index < First || index > Last {
		return Step{}, fmt.Errorf("step index %d out of range [%d,%d]", index, First, Last)
	}

	return r.steps[index-1], nil
}

// Steps returns all step definitions in order.
func (r *Registry) Steps() []Step {
	return r.steps
}
