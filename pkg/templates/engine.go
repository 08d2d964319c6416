// Package templates transforms existing course records into new drafts:
// cloning with selective field carry-over, de-identified template
// projection, and instantiation of a fresh draft from a stored template.
package templates

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/coursedesk/coursedesk/pkg/collections"
	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/google/uuid"
)

// structuralCollections lists the collections a template projection and a
// clone's content copy carry. Instructor identities never travel.
var structuralCollections = []models.CollectionName{
	models.CollectionObjectives,
	models.CollectionModules,
	models.CollectionTargetAudience,
	models.CollectionProcedures,
	models.CollectionEquipment,
	models.CollectionQuizQuestions,
	models.CollectionVideoLinks,
	models.CollectionExternalLinks,
	models.CollectionCertificationBodies,
}

// Engine performs the course ↔ template transforms.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a transform engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger.With("module", "templates")}
}

// Clone builds a new course from a source. Identity-bearing scalars come
// exclusively from the overrides; structural sections are deep-copied only
// when the matching option is set; enrollment counters are zeroed when
// requested.
func (e *Engine) Clone(source *models.Course, overrides models.CloneOverrides, opts models.CloneOptions) *models.Course {
	now := time.Now().UTC()

	status := overrides.Status
	if status == "" {
		status = models.CourseStatusDraft
	}

	clone := &models.Course{
		ID:     uuid.New().String(),
		Status: status,
		BasicInfo: models.BasicInfoSection{
			Code:        overrides.Code,
			Title:       overrides.Title,
			Category:    source.BasicInfo.Category,
			Language:    source.BasicInfo.Language,
			Description: source.BasicInfo.Description,
		},
		Schedule: models.ScheduleSection{
			StartDate:    overrides.StartDate,
			DurationDays: source.Schedule.DurationDays,
		},
		Enrollment:  source.Enrollment,
		Venue:       source.Venue,
		Attendance:  source.Attendance,
		Contact:     source.Contact,
		Metadata: models.MetadataSection{
			Owner:     source.Metadata.Owner,
			Keywords:  append([]string(nil), source.Metadata.Keywords...),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Collections: make(map[models.CollectionName][]map[string]any),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if opts.ResetEnrollment {
		clone.Enrollment.CurrentEnrollment = 0
	}

	if opts.CopyInstructors {
		clone.Instructors = source.Instructors
		e.copyCollections(clone, source, models.CollectionAdditionalInstructors)
	}

	if opts.CopyContent {
		clone.Content = source.Content
		clone.Practical = source.Practical
		e.copyCollections(clone, source,
			models.CollectionObjectives,
			models.CollectionModules,
			models.CollectionTargetAudience,
			models.CollectionProcedures,
			models.CollectionEquipment,
		)
	}

	if opts.CopyAssessment {
		clone.Assessment = source.Assessment
		e.copyCollections(clone, source, models.CollectionQuizQuestions)
	}

	if opts.CopyInclusions {
		clone.Inclusions = source.Inclusions
		e.copyCollections(clone, source, models.CollectionPartnerHotels)
	}

	if opts.CopyMedia {
		clone.Media = source.Media
		clone.Attachments = copyAttachments(source.Attachments)
		e.copyCollections(clone, source,
			models.CollectionVideoLinks,
			models.CollectionExternalLinks,
		)
	}

	clone.Certification = source.Certification
	e.copyCollections(clone, source, models.CollectionCertificationBodies)

	return clone
}

// Project builds the de-identified template projection of a course:
// content, practical, assessment, and inclusion structure plus
// operator-supplied keywords survive; dates, pricing, venue, and
// instructor identities are dropped.
func (e *Engine) Project(source *models.Course, keywords []string) *models.CourseTemplate {
	template := &models.CourseTemplate{
		ID:             uuid.New().String(),
		Name:           source.BasicInfo.Title,
		Keywords:       append([]string(nil), keywords...),
		Category:       source.BasicInfo.Category,
		Language:       source.BasicInfo.Language,
		Description:    source.BasicInfo.Description,
		Content:        source.Content,
		Practical:      source.Practical,
		Assessment:     source.Assessment,
		Certification:  source.Certification,
		Inclusions:     source.Inclusions,
		Collections:    make(map[models.CollectionName][]map[string]any),
		SourceCourseID: source.ID,
		CreatedAt:      time.Now().UTC(),
	}

	for _, collection := range structuralCollections {
		records := source.Collections[collection]
		if len(records) == 0 {
			continue
		}

		copied := make([]map[string]any, 0, len(records))

		for _, record := range records {
			fields := copyRecord(record)
			// Live draft identities do not belong in a template.
			delete(fields, "persisted_id")
			copied = append(copied, fields)
		}

		template.Collections[collection] = copied
	}

	return template
}

// Instantiate populates a brand-new draft and collection manager from a
// template. Identity, date, price, instructor, and venue fields stay blank
// for operator completion. Every sub-entity is recreated as a fresh item
// and committed immediately: the template carries no live identities, so
// there is nothing left pending.
//
// A certification-body reference whose identifier no longer resolves
// against the lookup list keeps its captured display name with the
// identifier cleared for manual reselection.
func (e *Engine) Instantiate(
	template *models.CourseTemplate,
	knownBodies []models.CertificationBody,
	cols *collections.Manager,
) (*models.Draft, error) {
	draft := models.NewDraft(uuid.New().String())
	draft.BasicInfo.Category = template.Category
	draft.BasicInfo.Language = template.Language
	draft.BasicInfo.Description = template.Description
	draft.Content = template.Content
	draft.Practical = template.Practical
	draft.Assessment = template.Assessment
	draft.Certification = template.Certification
	draft.Inclusions = template.Inclusions
	draft.Metadata.Keywords = append([]string(nil), template.Keywords...)

	resolvable := make(map[string]bool, len(knownBodies))
	for _, body := range knownBodies {
		resolvable[body.ID] = true
	}

	for _, collection := range structuralCollections {
		for _, record := range template.Collections[collection] {
			fields := copyRecord(record)

			if collection == models.CollectionCertificationBodies {
				id, _ := fields["body_id"].(string)
				if id != "" && id != models.InHouseIssuerID && !resolvable[id] {
					e.logger.Warn("template references unknown certification body",
						"template_id", template.ID, "body_id", id)
					fields["body_id"] = ""
				}
			}

			item, err := cols.AddItem(collection, fields)
			if err != nil {
				return nil, fmt.Errorf("recreate %s item: %w", collection, err)
			}

			if err := cols.SaveItem(item.ID); err != nil {
				return nil, fmt.Errorf("commit recreated %s item: %w", collection, err)
			}
		}
	}

	return draft, nil
}

// SuggestCode derives a candidate course code from a title, used by the
// auto-generation endpoint.
func SuggestCode(title string) string {
	var b strings.Builder

	for _, word := range strings.Fields(strings.ToUpper(title)) {
		for _, r := range word {
			if r >= 'A' && r <= 'Z' {
				b.WriteRune(r)

				break
			}
		}
	}

	prefix := b.String()
	if prefix == "" {
		prefix = "CRS"
	}

	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.New().String()[:6]))
}

func (e *Engine) copyCollections(dst, src *models.Course, names ...models.CollectionName) {
	for _, name := range names {
		records := src.Collections[name]
		if len(records) == 0 {
			continue
		}

		copied := make([]map[string]any, 0, len(records))
		for _, record := range records {
			copied = append(copied, copyRecord(record))
		}

		dst.Collections[name] = copied
	}
}

func copyAttachments(src map[models.UploadType][]string) map[models.UploadType][]string {
	if src == nil {
		return nil
	}

	out := make(map[models.UploadType][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}

	return out
}

func copyRecord(record map[string]any) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[k] = v
	}

	return out
}
