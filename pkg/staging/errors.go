// Package staging manages file attachments through the
// selected → uploading → uploaded → committed lifecycle, including batch
// validation, per-file upload isolation, and the folder-integrity check on
// returned remote references.
package staging

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coursedesk/coursedesk/pkg/models"
)

var (
	// ErrTooManyFiles rejects a whole batch whose file count exceeds the
	// upload type's configured maximum.
	ErrTooManyFiles = errors.New("too many files in batch")

	// ErrUnknownUploadType is returned for an upload type outside the
	// fixed set.
	ErrUnknownUploadType = errors.New("unknown upload type")

	// ErrAttachmentNotFound is returned when a file name does not resolve
	// within an upload type.
	ErrAttachmentNotFound = errors.New("attachment not found")
)

// UploadErrorKind classifies a per-file upload failure. The kind drives
// the user-facing message and whether a retry affordance is offered.
type UploadErrorKind string

const (
	UploadErrSize              UploadErrorKind = "size"
	UploadErrType              UploadErrorKind = "type"
	UploadErrAuth              UploadErrorKind = "authentication"
	UploadErrRateLimit         UploadErrorKind = "rate_limit"
	UploadErrServerUnavailable UploadErrorKind = "server_unavailable"
	UploadErrNetwork           UploadErrorKind = "network"
	UploadErrTimeout           UploadErrorKind = "timeout"
)

// UploadError is a per-file failure, isolated from its batch siblings.
type UploadError struct {
	Kind     UploadErrorKind
	FileName string
	Message  string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %q: %s: %s", e.FileName, e.Kind, e.Message)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure kind is worth retrying without
// changing the file.
func (e *UploadError) Retryable() bool {
	switch e.Kind {
	case UploadErrRateLimit, UploadErrServerUnavailable, UploadErrNetwork, UploadErrTimeout:
		return true
	}

	return false
}

// UserMessage returns the user-facing message for the failure kind.
func (e *UploadError) UserMessage() string {
	switch e.Kind {
	case UploadErrSize:
		return "The file is too large for this attachment type."
	case UploadErrType:
		return "This file type is not allowed here."
	case UploadErrAuth:
		return "Your session is no longer authorized to upload files."
	case UploadErrRateLimit:
		return "Too many uploads at once. Please wait a moment and retry."
	case UploadErrServerUnavailable:
		return "The file service is temporarily unavailable. Please retry."
	case UploadErrTimeout:
		return "The upload timed out. Please retry."
	default:
		return "The upload failed due to a network problem. Please retry."
	}
}

// ClassifyStatus maps an upload endpoint HTTP status to an error kind.
func ClassifyStatus(status int) UploadErrorKind {
	switch {
	case status == http.StatusRequestEntityTooLarge:
		return UploadErrSize
	case status == http.StatusUnsupportedMediaType:
		return UploadErrType
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return UploadErrAuth
	case status == http.StatusTooManyRequests:
		return UploadErrRateLimit
	case status >= 500:
		return UploadErrServerUnavailable
	default:
		return UploadErrNetwork
	}
}

// ClassifyTransport maps a transport-level error to an error kind.
func ClassifyTransport(err error) UploadErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return UploadErrTimeout
	}

	return UploadErrNetwork
}

// FolderIntegrityWarning is raised when an upload succeeded but the
// returned remote reference lives outside the expected storage prefix for
// its type. The file is excluded from the Uploaded set; the warning is
// non-fatal.
type FolderIntegrityWarning struct {
	UploadType models.UploadType
	FileName   string
	RemoteRef  string
	WantPrefix string
}

func (w *FolderIntegrityWarning) Error() string {
	return fmt.Sprintf("upload %q: remote reference %q outside expected prefix %q",
		w.FileName, w.RemoteRef, w.WantPrefix)
}
