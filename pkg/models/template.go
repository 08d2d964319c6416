package models

import "time"

// CourseTemplate is a de-identified projection of a course: structural
// sections and sub-entities survive, while dates, pricing, venue, and
// instructor identities are stripped. Templates live in their own store
// and seed brand-new drafts.
type CourseTemplate struct {
	ID       string   `json:"id"`
	Name     string   `json:"name" validate:"required"`
	Keywords []string `json:"keywords,omitempty"`

	Category      string               `json:"category"`
	Language      string               `json:"language"`
	Description   string               `json:"description"`
	Content       ContentSection       `json:"content"`
	Practical     PracticalSection     `json:"practical"`
	Assessment    AssessmentSection    `json:"assessment"`
	Certification CertificationSection `json:"certification"`
	Inclusions    InclusionsSection    `json:"inclusions"`

	Collections map[CollectionName][]map[string]any `json:"collections,omitempty"`

	SourceCourseID string    `json:"source_course_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CloneOptions selects which structural sections a clone deep-copies from
// its source. Identity-bearing scalars always come from the overrides, not
// the source.
type CloneOptions struct {
	CopyInstructors  bool     `json:"copy_instructors"`
	CopyContent      bool     `json:"copy_content"`
	CopyAssessment   bool     `json:"copy_assessment"`
	CopyInclusions   bool     `json:"copy_inclusions"`
	CopyMedia        bool     `json:"copy_media"`
	ResetEnrollment  bool     `json:"reset_enrollment"`
	SaveAsTemplate   bool     `json:"save_as_template"`
	TemplateKeywords []string `json:"template_keywords,omitempty"`
}

// CloneOverrides carries the identity-bearing scalars of a clone.
type CloneOverrides struct {
	Code      string       `json:"code"  validate:"required"`
	Title     string       `json:"title" validate:"required,min=3"`
	StartDate *time.Time   `json:"start_date,omitempty"`
	Status    CourseStatus `json:"status"`
}
