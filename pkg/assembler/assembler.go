// Package assembler merges the draft's scalar sections, every committed
// collection record set, every committed attachment reference, and pending
// deletion markers into the single submission payload.
package assembler

import (
	"errors"
	"fmt"
	"time"

	"github.com/coursedesk/coursedesk/pkg/collections"
	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/staging"
)

// ErrNotReady is returned when assembly is requested before the gate has
// approved every step.
var ErrNotReady = errors.New("draft is not ready for submission")

// TransportError wraps a submission transport failure. It is surfaced
// verbatim with context and is never partially applied: staged state is
// untouched when it occurs.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is a transport failure.
func IsTransportError(err error) bool {
	var te *TransportError

	return errors.As(err, &te)
}

// Assemble builds the submission payload. By construction only Saved
// collection items and Committed attachments contribute; everything else
// is invisible here.
func Assemble(draft *models.Draft, cols *collections.Manager, stage *staging.Manager) *models.Course {
	now := time.Now().UTC()

	course := &models.Course{
		ID:            draft.ID,
		Status:        models.CourseStatusScheduled,
		BasicInfo:     draft.BasicInfo,
		Schedule:      draft.Schedule,
		Enrollment:    draft.Enrollment,
		Instructors:   draft.Instructors,
		Venue:         draft.Venue,
		Content:       draft.Content,
		Practical:     draft.Practical,
		Assessment:    draft.Assessment,
		Certification: draft.Certification,
		Inclusions:    draft.Inclusions,
		Media:         draft.Media,
		Attendance:    draft.Attendance,
		Contact:       draft.Contact,
		Metadata:      draft.Metadata,
		Collections:   make(map[models.CollectionName][]map[string]any),
		Attachments:   make(map[models.UploadType][]string),
		CreatedAt:     draft.Metadata.CreatedAt,
		UpdatedAt:     now,
	}

	for _, collection := range models.AllCollections() {
		records := cols.Committed(collection)
		if len(records) > 0 {
			course.Collections[collection] = records
		}
	}

	for _, uploadType := range models.AllUploadTypes() {
		refs := stage.CommittedRefs(uploadType)
		if len(refs) > 0 {
			course.Attachments[uploadType] = refs
		}
	}

	if refs := course.Attachments[models.UploadTypeMainImage]; len(refs) > 0 {
		course.Media.MainImageRef = refs[0]
	}

	course.DeletionMarkers = cols.DeletionMarkers()

	return course
}
