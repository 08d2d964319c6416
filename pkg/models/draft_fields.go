package models

import (
	"strconv"
	"strings"
)

// FieldValue resolves a dotted section path to the scalar stored there,
// rendered as a trimmed string. The second return is false for unknown
// paths. Optional scalars that are unset resolve to the empty string, so a
// required-field check reduces to "resolved and non-empty".
func (d *Draft) FieldValue(path string) (string, bool) {
	switch path {
	case "basic_info.code":
		return strings.TrimSpace(d.BasicInfo.Code), true
	case "basic_info.title":
		return strings.TrimSpace(d.BasicInfo.Title), true
	case "basic_info.category":
		return strings.TrimSpace(d.BasicInfo.Category), true
	case "basic_info.language":
		return strings.TrimSpace(d.BasicInfo.Language), true
	case "basic_info.description":
		return strings.TrimSpace(d.BasicInfo.Description), true
	case "schedule.start_date":
		if d.Schedule.StartDate == nil {
			return "", true
		}

		return d.Schedule.StartDate.Format("2006-01-02"), true
	case "schedule.end_date":
		if d.Schedule.EndDate == nil {
			return "", true
		}

		return d.Schedule.EndDate.Format("2006-01-02"), true
	case "enrollment.max_seats":
		if d.Enrollment.MaxSeats <= 0 {
			return "", true
		}

		return strconv.Itoa(d.Enrollment.MaxSeats), true
	case "enrollment.price":
		if d.Enrollment.Price == nil {
			return "", true
		}

		return strconv.FormatFloat(*d.Enrollment.Price, 'f', -1, 64), true
	case "instructors.lead_instructor":
		return strings.TrimSpace(d.Instructors.LeadInstructor), true
	case "venue.name":
		return strings.TrimSpace(d.Venue.Name), true
	case "venue.city":
		return strings.TrimSpace(d.Venue.City), true
	case "content.overview":
		return strings.TrimSpace(d.Content.Overview), true
	case "assessment.pass_score":
		if d.Assessment.PassScore == nil {
			return "", true
		}

		return strconv.Itoa(*d.Assessment.PassScore), true
	case "certification.certificate_title":
		return strings.TrimSpace(d.Certification.CertificateTitle), true
	case "contact.email":
		return strings.TrimSpace(d.Contact.Email), true
	case "contact.phone":
		return strings.TrimSpace(d.Contact.Phone), true
	}

	return "", false
}
