package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/coursedesk/coursedesk/pkg/models"
)

// File is one selected file handed to validation and upload.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// Uploader is the transport collaborator. UploadFile transmits one file
// and returns the remote reference the endpoint assigned. DeleteRemote
// asks the backend to remove a previously persisted asset.
type Uploader interface {
	UploadFile(ctx context.Context, uploadType models.UploadType, file File) (string, error)
	DeleteRemote(ctx context.Context, uploadType models.UploadType, remoteRef, parentID string) error
}

// Rejection pairs a rejected file with the reason it was refused.
type Rejection struct {
	File   File
	Reason *UploadError
}

// UploadResult reports the outcome for one file of a batch. Exactly one of
// Attachment, Err, or Warning is set.
type UploadResult struct {
	FileName   string
	Attachment *models.Attachment
	Err        *UploadError
	Warning    *FolderIntegrityWarning
}

// Manager owns the attachment staging state of one editing session.
type Manager struct {
	policies    map[models.UploadType]Policy
	uploader    Uploader
	attachments map[models.UploadType][]*models.Attachment
	logger      *slog.Logger
}

// NewManager creates a staging manager with the given per-type policies.
// A nil policies map falls back to the defaults.
func NewManager(logger *slog.Logger, uploader Uploader, policies map[models.UploadType]Policy) *Manager {
	if policies == nil {
		policies = DefaultPolicies()
	}

	return &Manager{
		policies:    policies,
		uploader:    uploader,
		attachments: make(map[models.UploadType][]*models.Attachment),
		logger:      logger.With("module", "staging"),
	}
}

// Validate partitions a batch into valid and rejected files. The whole
// batch is refused when its count exceeds the type's maximum; otherwise
// each file is checked for size, content type, and non-empty content.
func (m *Manager) Validate(files []File, uploadType models.UploadType) ([]File, []Rejection, error) {
	policy, ok := m.policies[uploadType]
	if !ok {
		return nil, nil, ErrUnknownUploadType
	}

	if len(files) > policy.MaxFiles {
		return nil, nil, fmt.Errorf("%w: %d files, maximum %d for %s",
			ErrTooManyFiles, len(files), policy.MaxFiles, uploadType)
	}

	var (
		valid    []File
		rejected []Rejection
	)

	for _, f := range files {
		switch {
		case f.Size == 0:
			rejected = append(rejected, Rejection{File: f, Reason: &UploadError{
				Kind:     UploadErrSize,
				FileName: f.Name,
				Message:  "file is empty",
			}})
		case f.Size > policy.MaxBytes:
			rejected = append(rejected, Rejection{File: f, Reason: &UploadError{
				Kind:     UploadErrSize,
				FileName: f.Name,
				Message:  fmt.Sprintf("file is %d bytes, limit is %d", f.Size, policy.MaxBytes),
			}})
		case !slices.Contains(policy.AllowedTypes, f.ContentType):
			rejected = append(rejected, Rejection{File: f, Reason: &UploadError{
				Kind:     UploadErrType,
				FileName: f.Name,
				Message:  fmt.Sprintf("content type %q not allowed for %s", f.ContentType, uploadType),
			}})
		default:
			valid = append(valid, f)
		}
	}

	return valid, rejected, nil
}

// Upload transmits each file of an already-validated batch sequentially,
// so per-file progress and error attribution stay accurate. A failure for
// one file never blocks the remaining files. The main image replaces any
// previous selection; other types append. A returned remote reference
// outside the type's storage prefix is excluded from the Uploaded set and
// reported as a folder-integrity warning instead of an error.
//
// Each result carries the file's tracking record: it enters the loop
// Selected, moves to Uploading before the wire call, and reaches Uploaded
// only when the returned reference passed the prefix check. Staged state
// is touched only on full per-file success: a failed or excluded file's
// record stays Uploading and is never staged.
func (m *Manager) Upload(ctx context.Context, uploadType models.UploadType, files []File) ([]UploadResult, error) {
	policy, ok := m.policies[uploadType]
	if !ok {
		return nil, ErrUnknownUploadType
	}

	results := make([]UploadResult, 0, len(files))

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			// Upload aborted; files not yet transmitted stay untouched.
			return results, err
		}

		attachment := &models.Attachment{
			UploadType:  uploadType,
			LocalName:   f.Name,
			Size:        f.Size,
			ContentType: f.ContentType,
			State:       models.AttachmentSelected,
		}
		result := UploadResult{FileName: f.Name, Attachment: attachment}

		attachment.State = models.AttachmentUploading

		ref, err := m.uploader.UploadFile(ctx, uploadType, f)
		if err != nil {
			result.Err = asUploadError(f.Name, err)
			m.logger.Warn("file upload failed",
				"upload_type", uploadType, "file", f.Name, "kind", result.Err.Kind)
			results = append(results, result)

			continue
		}

		if !strings.HasPrefix(ref, policy.StoragePrefix) {
			result.Warning = &FolderIntegrityWarning{
				UploadType: uploadType,
				FileName:   f.Name,
				RemoteRef:  ref,
				WantPrefix: policy.StoragePrefix,
			}
			m.logger.Warn("folder integrity check failed",
				"upload_type", uploadType, "file", f.Name, "remote_ref", ref)
			results = append(results, result)

			continue
		}

		attachment.RemoteRef = ref
		attachment.State = models.AttachmentUploaded

		if uploadType == models.UploadTypeMainImage {
			m.attachments[uploadType] = []*models.Attachment{attachment}
		} else {
			m.attachments[uploadType] = append(m.attachments[uploadType], attachment)
		}

		results = append(results, result)
	}

	return results, nil
}

// Commit promotes Uploaded attachments of a type to Committed. With a file
// name it targets that single attachment, otherwise the whole type.
// Recommitting an already-committed attachment is a no-op.
func (m *Manager) Commit(uploadType models.UploadType, fileName string) error {
	if _, ok := m.policies[uploadType]; !ok {
		return ErrUnknownUploadType
	}

	if fileName == "" {
		for _, a := range m.attachments[uploadType] {
			a.State = models.AttachmentCommitted
		}

		return nil
	}

	for _, a := range m.attachments[uploadType] {
		if a.LocalName == fileName {
			a.State = models.AttachmentCommitted

			return nil
		}
	}

	return ErrAttachmentNotFound
}

// DeleteExisting forwards a removal request for a previously persisted
// remote asset of an already-saved parent record. Staged local state is
// not involved.
func (m *Manager) DeleteExisting(ctx context.Context, uploadType models.UploadType, remoteRef, parentID string) error {
	if _, ok := m.policies[uploadType]; !ok {
		return ErrUnknownUploadType
	}

	if err := m.uploader.DeleteRemote(ctx, uploadType, remoteRef, parentID); err != nil {
		return fmt.Errorf("delete remote asset %q: %w", remoteRef, err)
	}

	return nil
}

// Adopt registers an already-persisted remote reference as a Committed
// attachment, used when an existing record is loaded for editing.
func (m *Manager) Adopt(uploadType models.UploadType, localName, remoteRef string) {
	attachment := &models.Attachment{
		UploadType: uploadType,
		LocalName:  localName,
		RemoteRef:  remoteRef,
		State:      models.AttachmentCommitted,
	}

	if uploadType == models.UploadTypeMainImage {
		m.attachments[uploadType] = []*models.Attachment{attachment}

		return
	}

	m.attachments[uploadType] = append(m.attachments[uploadType], attachment)
}

// Attachments returns the staged attachments of a type.
func (m *Manager) Attachments(uploadType models.UploadType) []*models.Attachment {
	return m.attachments[uploadType]
}

// CommittedRefs returns the remote references of Committed attachments of
// a type, the only attachments submission assembly may see.
func (m *Manager) CommittedRefs(uploadType models.UploadType) []string {
	var refs []string

	for _, a := range m.attachments[uploadType] {
		if a.State == models.AttachmentCommitted {
			refs = append(refs, a.RemoteRef)
		}
	}

	return refs
}

// AllCommitted reports whether every staged attachment of the type has
// reached Committed.
func (m *Manager) AllCommitted(uploadType models.UploadType) bool {
	for _, a := range m.attachments[uploadType] {
		if a.State != models.AttachmentCommitted {
			return false
		}
	}

	return true
}

// Policy returns the policy for an upload type.
func (m *Manager) Policy(uploadType models.UploadType) (Policy, bool) {
	p, ok := m.policies[uploadType]

	return p, ok
}

// Clear drops all staged attachments. Called after a successful
// submission.
func (m *Manager) Clear() {
	m.attachments = make(map[models.UploadType][]*models.Attachment)
}

func asUploadError(fileName string, err error) *UploadError {
	var ue *UploadError
	if errors.As(err, &ue) {
		return ue
	}

	return &UploadError{
		Kind:     ClassifyTransport(err),
		FileName: fileName,
		Message:  err.Error(),
		Err:      err,
	}
}
