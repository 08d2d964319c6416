// Package session hosts one editing session: the draft, the step pointer,
// both staging managers, and the validation gate, behind a single-writer
// surface. Sessions are explicit objects created per edit; nothing here is
// process-global.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/coursedesk/coursedesk/pkg/assembler"
	"github.com/coursedesk/coursedesk/pkg/collections"
	"github.com/coursedesk/coursedesk/pkg/gate"
	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/notify"
	"github.com/coursedesk/coursedesk/pkg/otelhelper"
	"github.com/coursedesk/coursedesk/pkg/staging"
	"github.com/coursedesk/coursedesk/pkg/steps"
	"github.com/coursedesk/coursedesk/pkg/templates"
	"github.com/google/uuid"
)

var (
	// ErrSubmissionInFlight rejects a re-entrant submission attempt while
	// one is already running.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")

	// ErrNotAtReviewStep is returned when submission is requested from any
	// step but the terminal one.
	ErrNotAtReviewStep = errors.New("submission is only available from the review step")

	// ErrStepBlocked is returned when Advance is refused by the gate.
	ErrStepBlocked = errors.New("step requirements not met")
)

// Submitter is the transport collaborator that persists an assembled
// course.
type Submitter interface {
	SubmitCourse(ctx context.Context, course *models.Course) (*models.Course, error)
}

// Session is one editing session. All public methods serialize on an
// internal mutex so the session behaves as a single logical thread of
// control no matter which goroutine calls in.
type Session struct {
	mu sync.Mutex

	id        string
	draft     *models.Draft
	registry  *steps.Registry
	gate      *gate.Gate
	cols      *collections.Manager
	stage     *staging.Manager
	bus       *notify.Bus
	submitter Submitter
	engine    *templates.Engine
	logger    *slog.Logger
	tracer    trace.Tracer

	step int
	busy bool
}

// New creates a session around an empty draft.
func New(logger *slog.Logger, uploader staging.Uploader, submitter Submitter, bus *notify.Bus, policies map[models.UploadType]staging.Policy) *Session {
	registry := steps.NewRegistry()

	return &Session{
		id:        uuid.New().String(),
		draft:     models.NewDraft(uuid.New().String()),
		registry:  registry,
		gate:      gate.New(registry),
		cols:      collections.NewManager(logger),
		stage:     staging.NewManager(logger, uploader, policies),
		bus:       bus,
		submitter: submitter,
		engine:    templates.NewEngine(logger),
		logger:    logger.With("module", "session"),
		tracer:    otel.Tracer("coursedesk/session"),
		step:      steps.First,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// LoadFromExisting replaces the session's draft with the state of a
// persisted course. Collection records are recreated as Saved items with
// their committed copies in place; persisted attachment references load as
// Committed attachments so step readiness reflects the stored record.
func (s *Session) LoadFromExisting(course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()

	draft := models.NewDraft(course.ID)
	draft.BasicInfo = course.BasicInfo
	draft.Schedule = course.Schedule
	draft.Enrollment = course.Enrollment
	draft.Instructors = course.Instructors
	draft.Venue = course.Venue
	draft.Content = course.Content
	draft.Practical = course.Practical
	draft.Assessment = course.Assessment
	draft.Certification = course.Certification
	draft.Inclusions = course.Inclusions
	draft.Media = course.Media
	draft.Attendance = course.Attendance
	draft.Contact = course.Contact
	draft.Metadata = course.Metadata
	s.draft = draft

	for _, collection := range models.AllCollections() {
		for _, record := range course.Collections[collection] {
			item, err := s.cols.AddItem(collection, record)
			if err != nil {
				return fmt.Errorf("load %s record: %w", collection, err)
			}

			if err := s.cols.SaveItem(item.ID); err != nil {
				return fmt.Errorf("commit loaded %s record: %w", collection, err)
			}
		}
	}

	for _, uploadType := range models.AllUploadTypes() {
		for _, ref := range course.Attachments[uploadType] {
			s.stage.Adopt(uploadType, path.Base(ref), ref)
		}
	}

	return nil
}

// LoadFromTemplate replaces the session's draft with a fresh one
// instantiated from a template. Recreated sub-entities arrive committed;
// identity, date, price, instructor, and venue fields stay blank.
func (s *Session) LoadFromTemplate(template *models.CourseTemplate, knownBodies []models.CertificationBody) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()

	draft, err := s.engine.Instantiate(template, knownBodies, s.cols)
	if err != nil {
		return err
	}

	s.draft = draft

	return nil
}

// Reset discards all session state and returns to an empty draft at step
// one.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.draft = models.NewDraft(uuid.New().String())
	s.cols.Clear()
	s.stage.Clear()
	s.step = steps.First
}

// CurrentStep returns the 1-based active step index.
func (s *Session) CurrentStep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.step
}

// UpdateDraft applies a scalar mutation to the draft under the session
// lock.
func (s *Session) UpdateDraft(mutate func(*models.Draft)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(s.draft)
}

// Snapshot returns a shallow copy of the draft for rendering.
func (s *Session) Snapshot() models.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.draft
}

// Advance moves forward one step if the gate approves the current one.
// When blocked, the step pointer does not move, the diagnostics are
// published, and ErrStepBlocked is returned alongside the readiness.
func (s *Session) Advance(ctx context.Context) (gate.Readiness, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	readiness, err := s.gate.StepReadiness(s.draft, s.cols, s.stage, s.step)
	if err != nil {
		return gate.Readiness{}, err
	}

	s.publishNotices(ctx, readiness)

	if !readiness.Ready {
		for _, diagnostic := range readiness.Blocking {
			s.bus.Publish(ctx, notify.Notification{
				Level:   notify.LevelError,
				Source:  "session",
				Message: diagnostic,
			})
		}

		return readiness, fmt.Errorf("%w: step %d", ErrStepBlocked, s.step)
	}

	if s.step < steps.Last {
		s.step++
	}

	return readiness, nil
}

// Retreat moves back one step. Moving backward never requires validation.
func (s *Session) Retreat() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step > steps.First {
		s.step--
	}

	return s.step
}

// CollectionItems returns the rendered items of a collection in insertion
// order. The returned items are read views; edits go through
// SetItemField and Dispatch.
func (s *Session) CollectionItems(collection models.CollectionName) []*models.CollectionItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cols.Items(collection)
}

// SetItemField writes one field on a rendered item. The committed record
// is untouched until the item is saved again.
func (s *Session) SetItemField(itemID, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cols.SetField(itemID, field, value)
}

// CommittedRecords returns deep copies of a collection's committed
// records.
func (s *Session) CommittedRecords(collection models.CollectionName) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cols.Committed(collection)
}

// AttachmentsCommitted reports whether every staged attachment of a type
// has been committed.
func (s *Session) AttachmentsCommitted(uploadType models.UploadType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stage.AllCommitted(uploadType)
}

// CommittedAttachmentRefs returns the committed remote references of a
// type.
func (s *Session) CommittedAttachmentRefs(uploadType models.UploadType) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stage.CommittedRefs(uploadType)
}

func (s *Session) publishNotices(ctx context.Context, readiness gate.Readiness) {
	for _, notice := range readiness.Notices {
		s.bus.Publish(ctx, notify.Notification{
			Level:   notify.LevelInfo,
			Source:  "session",
			Message: notice,
		})
	}
}

// Submit assembles and transmits the payload. It is only reachable from
// the terminal step with every step approved, and only one submission may
// be in flight at a time. On transport success all staged collection and
// attachment state is cleared; on failure it is left exactly as it was.
func (s *Session) Submit(ctx context.Context) (*models.Course, error) {
	s.mu.Lock()

	if s.busy {
		s.mu.Unlock()

		return nil, ErrSubmissionInFlight
	}

	if s.step != steps.Last {
		s.mu.Unlock()

		return nil, ErrNotAtReviewStep
	}

	readiness, err := s.gate.DraftReadiness(s.draft, s.cols, s.stage)
	if err != nil {
		s.mu.Unlock()

		return nil, err
	}

	if !readiness.Ready {
		s.mu.Unlock()

		return nil, fmt.Errorf("%w: %d blocking diagnostics", assembler.ErrNotReady, len(readiness.Blocking))
	}

	payload := assembler.Assemble(s.draft, s.cols, s.stage)
	s.busy = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "session.submit",
		attribute.String(otelhelper.SessionIDKey, s.id),
		attribute.String(otelhelper.DraftIDKey, payload.ID),
	)
	defer span.End()

	submitted, err := s.submitter.SubmitCourse(ctx, payload)
	if err != nil {
		transportErr := &assembler.TransportError{Op: "session.submit", Err: err}
		otelhelper.SetError(span, transportErr,
			attribute.String(otelhelper.DraftIDKey, payload.ID))
		s.bus.Publish(ctx, notify.Notification{
			Level:     notify.LevelError,
			Source:    "session",
			Message:   transportErr.Error(),
			Retryable: true,
		})

		return nil, transportErr
	}

	s.mu.Lock()
	s.cols.Clear()
	s.stage.Clear()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "draft submitted", "course_id", submitted.ID)

	return submitted, nil
}
