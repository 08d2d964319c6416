package session

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/coursedesk/coursedesk/pkg/notify"
	"github.com/coursedesk/coursedesk/pkg/otelhelper"
	"github.com/coursedesk/coursedesk/pkg/staging"
)

// UploadBatchResult reports one upload batch: what was rejected locally,
// and the per-file outcome of everything that went to the wire.
type UploadBatchResult struct {
	Rejected []staging.Rejection
	Results  []staging.UploadResult
}

// UploadAttachments validates a batch and uploads the valid files
// sequentially, publishing a notification for every rejection, per-file
// failure, and folder-integrity warning. The ctx doubles as the abort
// signal for the in-flight batch; files not yet transmitted when it is
// cancelled are left untouched.
func (s *Session) UploadAttachments(ctx context.Context, uploadType models.UploadType, files []staging.File) (*UploadBatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "session.upload_batch",
		attribute.String(otelhelper.UploadTypeKey, string(uploadType)),
		attribute.Int("coursedesk.upload.batch_size", len(files)),
	)
	defer span.End()

	valid, rejected, err := s.stage.Validate(files, uploadType)
	if err != nil {
		otelhelper.SetError(span, err)
		s.bus.Publish(ctx, notify.Notification{
			Level:   notify.LevelError,
			Source:  "staging",
			Message: err.Error(),
		})

		return nil, err
	}

	for _, rejection := range rejected {
		s.bus.Publish(ctx, notify.Notification{
			Level:   notify.LevelError,
			Source:  "staging",
			Message: rejection.Reason.UserMessage(),
		})
	}

	results, err := s.stage.Upload(ctx, uploadType, valid)

	for _, result := range results {
		switch {
		case result.Err != nil:
			s.bus.Publish(ctx, notify.Notification{
				Level:     notify.LevelError,
				Source:    "staging",
				Message:   result.Err.UserMessage(),
				Retryable: result.Err.Retryable(),
			})
		case result.Warning != nil:
			s.bus.Publish(ctx, notify.Notification{
				Level:   notify.LevelWarning,
				Source:  "staging",
				Message: result.Warning.Error(),
			})
		}
	}

	if err != nil {
		otelhelper.SetError(span, err,
			attribute.String(otelhelper.UploadTypeKey, string(uploadType)))

		return &UploadBatchResult{Rejected: rejected, Results: results}, err
	}

	return &UploadBatchResult{Rejected: rejected, Results: results}, nil
}

// CommitAttachments promotes uploaded files of a type to Committed. An
// empty file name targets the whole type.
func (s *Session) CommitAttachments(uploadType models.UploadType, fileName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stage.Commit(uploadType, fileName)
}
