// Package models defines the core domain models for the staged course-draft editor.
package models

import "time"

// CourseStatus represents the lifecycle state of a course record.
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"     // Being assembled, not published
	CourseStatusScheduled CourseStatus = "scheduled" // Submitted, start date in the future
	CourseStatusArchived  CourseStatus = "archived"  // No longer offered
)

// Draft is the in-progress composite course record owned by one editing
// session. Sections are typed; optional scalars are pointers so "unset" is
// distinguishable from a zero value.
type Draft struct {
	ID            string               `json:"id"`
	BasicInfo     BasicInfoSection     `json:"basic_info"`
	Schedule      ScheduleSection      `json:"schedule"`
	Enrollment    EnrollmentSection    `json:"enrollment"`
	Instructors   InstructorsSection   `json:"instructors"`
	Venue         VenueSection         `json:"venue"`
	Content       ContentSection       `json:"content"`
	Practical     PracticalSection     `json:"practical"`
	Assessment    AssessmentSection    `json:"assessment"`
	Certification CertificationSection `json:"certification"`
	Inclusions    InclusionsSection    `json:"inclusions"`
	Media         MediaSection         `json:"media"`
	Attendance    AttendanceSection    `json:"attendance"`
	Contact       ContactSection       `json:"contact"`
	Metadata      MetadataSection      `json:"metadata"`
}

type BasicInfoSection struct {
	Code        string `json:"code"        validate:"required"`
	Title       string `json:"title"       validate:"required,min=3"`
	Category    string `json:"category"`
	Language    string `json:"language"`
	Description string `json:"description"`
}

type ScheduleSection struct {
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	DurationDays int        `json:"duration_days"`
	Notes        string     `json:"notes"`
}

type EnrollmentSection struct {
	MaxSeats           int      `json:"max_seats"`
	CurrentEnrollment  int      `json:"current_enrollment"`
	Price              *float64 `json:"price,omitempty"`
	EarlyBirdPrice     *float64 `json:"early_bird_price,omitempty"`
	DiscountWindowDays *int     `json:"discount_window_days,omitempty"`
}

type InstructorsSection struct {
	LeadInstructor string `json:"lead_instructor"`
}

type VenueSection struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
}

type ContentSection struct {
	Overview string `json:"overview"`
}

type PracticalSection struct {
	SafetyNotes string `json:"safety_notes"`
}

type AssessmentSection struct {
	PassScore *int `json:"pass_score,omitempty" validate:"omitempty,min=0,max=100"`
}

type CertificationSection struct {
	CertificateTitle string `json:"certificate_title"`
	ValidityMonths   int    `json:"validity_months"`
}

type InclusionsSection struct {
	Summary       string `json:"summary"`
	MealsIncluded bool   `json:"meals_included"`
	KitIncluded   bool   `json:"kit_included"`
}

type MediaSection struct {
	MainImageRef string `json:"main_image_ref"`
}

type AttendanceSection struct {
	MinAttendancePercent int `json:"min_attendance_percent"`
}

type ContactSection struct {
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type MetadataSection struct {
	Owner     string    `json:"owner"`
	Keywords  []string  `json:"keywords,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDraft returns an empty draft with timestamps initialized.
func NewDraft(id string) *Draft {
	now := time.Now().UTC()

	return &Draft{
		ID: id,
		Metadata: MetadataSection{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}
