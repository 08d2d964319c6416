package gate

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/coursedesk/coursedesk/pkg/collections"
	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/staging"
	"github.com/coursedesk/coursedesk/pkg/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGate(t *testing.T) (*Gate, *collections.Manager, *staging.Manager) {
	t.Helper()

	logger := slog.Default()

	return New(steps.NewRegistry()),
		collections.NewManager(logger),
		staging.NewManager(logger, nil, nil)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func timePtr(v time.Time) *time.Time {
	return &v
}

func TestGate_StepReadiness_RequiredFields(t *testing.T) {
	g, cols, stage := setupGate(t)
	draft := models.NewDraft("d-1")

	readiness, err := g.StepReadiness(draft, cols, stage, 1)
	require.NoError(t, err)
	assert.False(t, readiness.Ready)
	assert.Len(t, readiness.Blocking, 2)

	draft.BasicInfo.Code = "MAR-101"
	draft.BasicInfo.Title = "Coastal Navigation"

	readiness, err = g.StepReadiness(draft, cols, stage, 1)
	require.NoError(t, err)
	assert.True(t, readiness.Ready)
	assert.Empty(t, readiness.Blocking)
}

func TestGate_StepReadiness_UnsavedCollectionBlocks(t *testing.T) {
	g, cols, stage := setupGate(t)
	draft := models.NewDraft("d-1")
	draft.Content.Overview = "A practical introduction."

	item, err := cols.AddItem(models.CollectionModules, map[string]any{"title": "Charts"})
	require.NoError(t, err)

	readiness, err := g.StepReadiness(draft, cols, stage, 6)
	require.NoError(t, err)
	assert.False(t, readiness.Ready)

	require.NoError(t, cols.SaveItem(item.ID))

	readiness, err = g.StepReadiness(draft, cols, stage, 6)
	require.NoError(t, err)
	assert.True(t, readiness.Ready)
}

func TestGate_StepReadiness_UncommittedAttachmentBlocks(t *testing.T) {
	g, cols, _ := setupGate(t)
	draft := models.NewDraft("d-1")

	stage := staging.NewManager(slog.Default(), stagedUploader{}, nil)
	_, err := stage.Upload(context.Background(), models.UploadTypeDocuments, []staging.File{
		{Name: "briefing.pdf", Size: 1024, ContentType: "application/pdf"},
	})
	require.NoError(t, err)

	readiness, err := g.StepReadiness(draft, cols, stage, 7)
	require.NoError(t, err)
	assert.False(t, readiness.Ready)

	require.NoError(t, stage.Commit(models.UploadTypeDocuments, ""))

	readiness, err = g.StepReadiness(draft, cols, stage, 7)
	require.NoError(t, err)
	assert.True(t, readiness.Ready)
}

type stagedUploader struct{}

func (stagedUploader) UploadFile(_ context.Context, uploadType models.UploadType, f staging.File) (string, error) {
	return "courses/" + string(uploadType) + "/" + f.Name, nil
}

func (stagedUploader) DeleteRemote(_ context.Context, _ models.UploadType, _, _ string) error {
	return nil
}

func TestGate_Pricing_EarlyBirdAbovePriceBlocks(t *testing.T) {
	g, cols, stage := setupGate(t)
	draft := models.NewDraft("d-1")
	draft.Enrollment.MaxSeats = 12
	draft.Enrollment.Price = floatPtr(100)
	draft.Enrollment.EarlyBirdPrice = floatPtr(120)

	readiness, err := g.StepReadiness(draft, cols, stage, 3)
	require.NoError(t, err)
	assert.False(t, readiness.Ready)
	assert.Contains(t, readiness.Blocking[0], "early-bird price")
}

func TestGate_Pricing_DefaultDiscountWindow(t *testing.T) {
	g, cols, stage := setupGate(t)
	draft := models.NewDraft("d-1")
	draft.Enrollment.MaxSeats = 12
	draft.Enrollment.Price = floatPtr(100)
	draft.Enrollment.EarlyBirdPrice = floatPtr(80)
	draft.Schedule.StartDate = timePtr(time.Now().AddDate(0, 6, 0))

	readiness, err := g.StepReadiness(draft, cols, stage, 3)
	require.NoError(t, err)
	assert.True(t, readiness.Ready)
	assert.Empty(t, readiness.Notices)

	require.NotNil(t, draft.Enrollment.DiscountWindowDays)
	assert.Equal(t, DefaultDiscountWindowDays, *draft.Enrollment.DiscountWindowDays)
}

func TestGate_Pricing_PastCutoffIsNoticeOnly(t *testing.T) {
	g, cols, stage := setupGate(t)
	draft := models.NewDraft("d-1")
	draft.Enrollment.MaxSeats = 12
	draft.Enrollment.Price = floatPtr(100)
	draft.Enrollment.EarlyBirdPrice = floatPtr(80)
	draft.Enrollment.DiscountWindowDays = intPtr(30)
	// Ten days out: the 30-day cutoff is already behind us.
	draft.Schedule.StartDate = timePtr(time.Now().AddDate(0, 0, 10))

	readiness, err := g.StepReadiness(draft, cols, stage, 3)
	require.NoError(t, err)
	assert.True(t, readiness.Ready)
	require.Len(t, readiness.Notices, 1)
	assert.Contains(t, readiness.Notices[0], "already passed")
}

func TestGate_StepReadiness_OutOfRange(t *testing.T) {
	g, cols, stage := setupGate(t)

	_, err := g.StepReadiness(models.NewDraft("d-1"), cols, stage, 13)
	assert.Error(t, err)
}

func TestGate_DraftReadiness_AggregatesAllSteps(t *testing.T) {
	g, cols, stage := setupGate(t)
	draft := models.NewDraft("d-1")

	readiness, err := g.DraftReadiness(draft, cols, stage)
	require.NoError(t, err)
	assert.False(t, readiness.Ready)
	assert.NotEmpty(t, readiness.Blocking)

	fillDraft(draft)

	readiness, err = g.DraftReadiness(draft, cols, stage)
	require.NoError(t, err)
	assert.True(t, readiness.Ready, "blocking: %v", readiness.Blocking)
}

// fillDraft populates every required scalar of the 12-step layout.
func fillDraft(draft *models.Draft) {
	draft.BasicInfo.Code = "MAR-101"
	draft.BasicInfo.Title = "Coastal Navigation"
	draft.Schedule.StartDate = timePtr(time.Now().AddDate(0, 6, 0))
	draft.Schedule.EndDate = timePtr(time.Now().AddDate(0, 6, 5))
	draft.Enrollment.MaxSeats = 12
	draft.Enrollment.Price = floatPtr(100)
	draft.Instructors.LeadInstructor = "A. Mariner"
	draft.Venue.Name = "Harbour Training Centre"
	draft.Venue.City = "Rotterdam"
	draft.Content.Overview = "A practical introduction."
	draft.Assessment.PassScore = intPtr(70)
	draft.Certification.CertificateTitle = "Certificate of Competence"
	draft.Contact.Email = "training@example.com"
}
