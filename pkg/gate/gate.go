// Package gate decides whether a step, and ultimately the whole draft, is
// ready to advance or submit. It consumes the draft's scalar fields, the
// dynamic collection states, and the attachment states.
package gate

import (
	"fmt"
	"time"

	"github.com/coursedesk/coursedesk/pkg/collections"
	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/staging"
	"github.com/coursedesk/coursedesk/pkg/steps"
)

// DefaultDiscountWindowDays is applied when an early-bird price is present
// but no discount validity window was chosen.
const DefaultDiscountWindowDays = 30

const enrollmentStep = 3

// Readiness is the gate's verdict for one step. Blocking diagnostics
// prevent advancing; notices are informational only.
type Readiness struct {
	Ready    bool
	Blocking []string
	Notices  []string
}

// Gate evaluates step readiness against the static step registry.
type Gate struct {
	registry *steps.Registry
	now      func() time.Time
}

// New creates a gate over the given step registry.
func New(registry *steps.Registry) *Gate {
	return &Gate{registry: registry, now: time.Now}
}

// StepReadiness evaluates one step: every visible required field must hold
// a non-empty trimmed value, every visible collection item must be Saved,
// and every visible attachment must be Committed. The enrollment step
// additionally enforces the pricing rule.
func (g *Gate) StepReadiness(
	draft *models.Draft,
	cols *collections.Manager,
	stage *staging.Manager,
	stepIndex int,
) (Readiness, error) {
	step, err := g.registry.Step(stepIndex)
	if err != nil {
		return Readiness{}, err
	}

	var readiness Readiness

	for _, path := range step.RequiredFieldPaths {
		value, known := draft.FieldValue(path)
		if !known {
			return Readiness{}, fmt.Errorf("step %d references unknown field path %q", stepIndex, path)
		}

		if value == "" {
			readiness.Blocking = append(readiness.Blocking, fmt.Sprintf("field %s is required", path))
		}
	}

	for _, collection := range step.VisibleCollections {
		if !cols.AllSaved(collection) {
			readiness.Blocking = append(readiness.Blocking,
				fmt.Sprintf("collection %s has unsaved entries", collection))
		}
	}

	for _, uploadType := range step.VisibleUploadTypes {
		if !stage.AllCommitted(uploadType) {
			readiness.Blocking = append(readiness.Blocking,
				fmt.Sprintf("attachment type %s has uncommitted files", uploadType))
		}
	}

	if stepIndex == enrollmentStep {
		g.checkPricing(draft, &readiness)
	}

	readiness.Ready = len(readiness.Blocking) == 0

	return readiness, nil
}

// DraftReadiness evaluates every step, as required before submission.
func (g *Gate) DraftReadiness(
	draft *models.Draft,
	cols *collections.Manager,
	stage *staging.Manager,
) (Readiness, error) {
	var combined Readiness

	for _, step := range g.registry.Steps() {
		readiness, err := g.StepReadiness(draft, cols, stage, step.Index)
		if err != nil {
			return Readiness{}, err
		}

		combined.Blocking = append(combined.Blocking, readiness.Blocking...)
		combined.Notices = append(combined.Notices, readiness.Notices...)
	}

	combined.Ready = len(combined.Blocking) == 0

	return combined, nil
}

// checkPricing enforces the discount rule: a discounted price must be
// strictly below the regular price, and a discount needs a validity
// window, defaulted to 30 days when unset. A cutoff already in the past is
// only a notice.
func (g *Gate) checkPricing(draft *models.Draft, readiness *Readiness) {
	enrollment := &draft.Enrollment
	if enrollment.EarlyBirdPrice == nil {
		return
	}

	if enrollment.Price != nil && *enrollment.EarlyBirdPrice >= *enrollment.Price {
		readiness.Blocking = append(readiness.Blocking,
			"early-bird price must be lower than the regular price")
	}

	if enrollment.DiscountWindowDays == nil {
		window := DefaultDiscountWindowDays
		enrollment.DiscountWindowDays = &window
	}

	if draft.Schedule.StartDate != nil {
		cutoff := draft.Schedule.StartDate.AddDate(0, 0, -*enrollment.DiscountWindowDays)
		if cutoff.Before(g.now()) {
			readiness.Notices = append(readiness.Notices,
				fmt.Sprintf("early-bird cutoff %s has already passed", cutoff.Format("2006-01-02")))
		}
	}
}
