package staging

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/coursedesk/coursedesk/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUploader returns canned refs or errors per file name.
type fakeUploader struct {
	refs   map[string]string
	errs   map[string]error
	calls  []string
	delRef string
}

func (f *fakeUploader) UploadFile(_ context.Context, uploadType models.UploadType, file File) (string, error) {
	f.calls = append(f.calls, file.Name)

	if err, ok := f.errs[file.Name]; ok {
		return "", err
	}

	if ref, ok := f.refs[file.Name]; ok {
		return ref, nil
	}

	return fmt.Sprintf("courses/%s/%s", uploadType, file.Name), nil
}

func (f *fakeUploader) DeleteRemote(_ context.Context, _ models.UploadType, remoteRef, _ string) error {
	f.delRef = remoteRef

	return nil
}

func newTestManager(t *testing.T, uploader Uploader) *Manager {
	t.Helper()

	return NewManager(slog.Default(), uploader, nil)
}

func pdf(name string, size int64) File {
	return File{Name: name, Size: size, ContentType: "application/pdf"}
}

func TestManager_Validate_SizeAndType(t *testing.T) {
	m := newTestManager(t, &fakeUploader{})

	files := []File{
		pdf("syllabus.pdf", 2*mib),
		pdf("manual.pdf", 15*mib),
		pdf("schedule.pdf", 1*mib),
	}

	valid, rejected, err := m.Validate(files, models.UploadTypeDocuments)
	require.NoError(t, err)

	require.Len(t, valid, 2)
	assert.Equal(t, "syllabus.pdf", valid[0].Name)
	assert.Equal(t, "schedule.pdf", valid[1].Name)

	require.Len(t, rejected, 1)
	assert.Equal(t, "manual.pdf", rejected[0].File.Name)
	assert.Equal(t, UploadErrSize, rejected[0].Reason.Kind)
}

func TestManager_Validate_BatchCountCeiling(t *testing.T) {
	m := newTestManager(t, &fakeUploader{})

	files := make([]File, 11)
	for i := range files {
		files[i] = pdf(fmt.Sprintf("doc-%d.pdf", i), mib)
	}

	_, _, err := m.Validate(files, models.UploadTypeDocuments)
	assert.ErrorIs(t, err, ErrTooManyFiles)
}

func TestManager_Validate_ContentType(t *testing.T) {
	m := newTestManager(t, &fakeUploader{})

	files := []File{
		{Name: "photo.gif", Size: mib, ContentType: "image/gif"},
		{Name: "photo.png", Size: mib, ContentType: "image/png"},
	}

	valid, rejected, err := m.Validate(files, models.UploadTypeImages)
	require.NoError(t, err)
	require.Len(t, valid, 1)
	require.Len(t, rejected, 1)
	assert.Equal(t, UploadErrType, rejected[0].Reason.Kind)
}

func TestManager_Validate_EmptyFile(t *testing.T) {
	m := newTestManager(t, &fakeUploader{})

	_, rejected, err := m.Validate([]File{pdf("empty.pdf", 0)}, models.UploadTypeDocuments)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, UploadErrSize, rejected[0].Reason.Kind)
}

func TestManager_Validate_UnknownType(t *testing.T) {
	m := newTestManager(t, &fakeUploader{})

	_, _, err := m.Validate(nil, "thumbnails")
	assert.ErrorIs(t, err, ErrUnknownUploadType)
}

func TestManager_Upload_Success(t *testing.T) {
	m := newTestManager(t, &fakeUploader{})

	results, err := m.Upload(context.Background(), models.UploadTypeDocuments,
		[]File{pdf("syllabus.pdf", mib)})
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.NotNil(t, results[0].Attachment)
	assert.Equal(t, models.AttachmentUploaded, results[0].Attachment.State)
	assert.Equal(t, "courses/documents/syllabus.pdf", results[0].Attachment.RemoteRef)

	assert.Len(t, m.Attachments(models.UploadTypeDocuments), 1)
	assert.False(t, m.AllCommitted(models.UploadTypeDocuments))
}

func TestManager_Upload_PerFileIsolation(t *testing.T) {
	uploader := &fakeUploader{errs: map[string]error{
		"broken.pdf": &UploadError{Kind: UploadErrServerUnavailable, FileName: "broken.pdf", Message: "503"},
	}}
	m := newTestManager(t, uploader)

	results, err := m.Upload(context.Background(), models.UploadTypeDocuments, []File{
		pdf("first.pdf", mib),
		pdf("broken.pdf", mib),
		pdf("last.pdf", mib),
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.NotNil(t, results[0].Attachment)
	assert.NotNil(t, results[2].Attachment)

	require.NotNil(t, results[1].Err)
	assert.Equal(t, UploadErrServerUnavailable, results[1].Err.Kind)
	assert.True(t, results[1].Err.Retryable())

	// The failed file's record stalled in flight, never reaching Uploaded.
	require.NotNil(t, results[1].Attachment)
	assert.Equal(t, models.AttachmentUploading, results[1].Attachment.State)
	assert.Empty(t, results[1].Attachment.RemoteRef)

	// The failed file left no staged attachment behind.
	assert.Len(t, m.Attachments(models.UploadTypeDocuments), 2)
	assert.Equal(t, []string{"first.pdf", "broken.pdf", "last.pdf"}, uploader.calls)
}

func TestManager_Upload_FolderIntegrityExclusion(t *testing.T) {
	uploader := &fakeUploader{refs: map[string]string{
		"stray.pdf": "shared/misc/stray.pdf",
	}}
	m := newTestManager(t, uploader)

	results, err := m.Upload(context.Background(), models.UploadTypeDocuments, []File{
		pdf("stray.pdf", mib),
		pdf("good.pdf", mib),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.NotNil(t, results[0].Warning)
	require.NotNil(t, results[0].Attachment)
	assert.Equal(t, models.AttachmentUploading, results[0].Attachment.State)
	assert.Empty(t, results[0].Attachment.RemoteRef)
	assert.Equal(t, "shared/misc/stray.pdf", results[0].Warning.RemoteRef)
	assert.Equal(t, "courses/documents/", results[0].Warning.WantPrefix)

	// Only the in-prefix file joined the Uploaded set.
	staged := m.Attachments(models.UploadTypeDocuments)
	require.Len(t, staged, 1)
	assert.Equal(t, "good.pdf", staged[0].LocalName)
}

func TestManager_Upload_MainImageReplaces(t *testing.T) {
	m := newTestManager(t, &fakeUploader{})
	png := func(name string) File {
		return File{Name: name, Size: mib, ContentType: "image/png"}
	}

	_, err := m.Upload(context.Background(), models.UploadTypeMainImage, []File{png("old.png")})
	require.NoError(t, err)
	_, err = m.Upload(context.Background(), models.UploadTypeMainImage, []File{png("new.png")})
	require.NoError(t, err)

	staged := m.Attachments(models.UploadTypeMainImage)
	require.Len(t, staged, 1)
	assert.Equal(t, "new.png", staged[0].LocalName)
}

func TestManager_Upload_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uploader := &fakeUploader{}
	m := newTestManager(t, uploader)

	results, err := m.Upload(ctx, models.UploadTypeDocuments, []File{pdf("a.pdf", mib)})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	assert.Empty(t, uploader.calls)
}

func TestManager_Commit(t *testing.T) {
	m := newTestManager(t, &fakeUploader{})

	_, err := m.Upload(context.Background(), models.UploadTypeDocuments, []File{
		pdf("a.pdf", mib),
		pdf("b.pdf", mib),
	})
	require.NoError(t, err)

	require.NoError(t, m.Commit(models.UploadTypeDocuments, "a.pdf"))
	assert.False(t, m.AllCommitted(models.UploadTypeDocuments))
	assert.Equal(t, []string{"courses/documents/a.pdf"}, m.CommittedRefs(models.UploadTypeDocuments))

	// Empty file name commits the whole type; recommit is a no-op.
	require.NoError(t, m.Commit(models.UploadTypeDocuments, ""))
	require.NoError(t, m.Commit(models.UploadTypeDocuments, "a.pdf"))
	assert.True(t, m.AllCommitted(models.UploadTypeDocuments))
	assert.Len(t, m.CommittedRefs(models.UploadTypeDocuments), 2)
}

func TestManager_Commit_UnknownFile(t *testing.T) {
	m := newTestManager(t, &fakeUploader{})

	err := m.Commit(models.UploadTypeDocuments, "missing.pdf")
	assert.ErrorIs(t, err, ErrAttachmentNotFound)
}

func TestManager_DeleteExisting(t *testing.T) {
	uploader := &fakeUploader{}
	m := newTestManager(t, uploader)

	err := m.DeleteExisting(context.Background(), models.UploadTypeImages, "courses/images/old.png", "course-1")
	require.NoError(t, err)
	assert.Equal(t, "courses/images/old.png", uploader.delRef)
}

func TestManager_Adopt(t *testing.T) {
	m := newTestManager(t, &fakeUploader{})

	m.Adopt(models.UploadTypeImages, "cover.png", "courses/images/cover.png")

	staged := m.Attachments(models.UploadTypeImages)
	require.Len(t, staged, 1)
	assert.Equal(t, models.AttachmentCommitted, staged[0].State)
	assert.True(t, m.AllCommitted(models.UploadTypeImages))
}

func TestManager_Clear(t *testing.T) {
	m := newTestManager(t, &fakeUploader{})

	_, err := m.Upload(context.Background(), models.UploadTypeDocuments, []File{pdf("a.pdf", mib)})
	require.NoError(t, err)

	m.Clear()
	assert.Empty(t, m.Attachments(models.UploadTypeDocuments))
}

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, UploadErrSize, ClassifyStatus(413))
	assert.Equal(t, UploadErrType, ClassifyStatus(415))
	assert.Equal(t, UploadErrAuth, ClassifyStatus(401))
	assert.Equal(t, UploadErrAuth, ClassifyStatus(403))
	assert.Equal(t, UploadErrRateLimit, ClassifyStatus(429))
	assert.Equal(t, UploadErrServerUnavailable, ClassifyStatus(503))
	assert.Equal(t, UploadErrNetwork, ClassifyStatus(400))
}

func TestClassifyTransport(t *testing.T) {
	assert.Equal(t, UploadErrTimeout, ClassifyTransport(context.DeadlineExceeded))
	assert.Equal(t, UploadErrNetwork, ClassifyTransport(fmt.Errorf("connection reset")))
}
