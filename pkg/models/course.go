package models

import "time"

// Course is the persisted form of a submitted draft. Committed collections,
// committed attachments, and deletion markers travel as structured JSON
// alongside the scalar sections, which is also how the update endpoint
// accepts them.
type Course struct {
	ID     string       `json:"id"`
	Status CourseStatus `json:"status" validate:"required"`

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

	Collections     map[CollectionName][]map[string]any `json:"collections,omitempty"`
	Attachments     map[UploadType][]string             `json:"attachments,omitempty"`
	DeletionMarkers []DeletionMarker                    `json:"deletion_markers,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// CertificationBody is one entry from the certification-body lookup
// endpoint. Bodies are ranked by membership tier when presented for
// selection.
type CertificationBody struct {
	ID              string   `json:"id"`
	LegalName       string   `json:"legal_name"`
	DisplayName     string   `json:"display_name"`
	MembershipTier  string   `json:"membership_tier"`
	Specializations []string `json:"specializations,omitempty"`
}

// InHouseIssuerID is the pseudo-entry offered at the top of the
// certification-body list for courses certified by the operator itself.
const InHouseIssuerID = "in-house"

// DefaultCertificationRole is assigned to certification-body items that do
// not specify a role.
const DefaultCertificationRole = "co-issuer"
