package models

// UploadType identifies one of the attachment slots a draft carries.
type UploadType string

const (
	UploadTypeDocuments UploadType = "documents"
	UploadTypeImages    UploadType = "images"
	UploadTypeVideos    UploadType = "videos"
	UploadTypeMainImage UploadType = "main_image" // Cardinality 1, replace semantics
)

// AllUploadTypes lists every upload type in a stable order.
func AllUploadTypes() []UploadType {
	return []UploadType{
		UploadTypeDocuments,
		UploadTypeImages,
		UploadTypeVideos,
		UploadTypeMainImage,
	}
}

// AttachmentState is the staged-commit state of a file attachment.
// Transitions are forward only: Selected → Uploading → Uploaded →
// Committed. Only Committed attachments are visible to submission
// assembly.
type AttachmentState string

const (
	AttachmentSelected  AttachmentState = "selected"
	AttachmentUploading AttachmentState = "uploading"
	AttachmentUploaded  AttachmentState = "uploaded"
	AttachmentCommitted AttachmentState = "committed"
)

// Attachment tracks one file selection through its upload lifecycle.
// RemoteRef is set only after a successful upload whose returned reference
// passed the folder-integrity check for the upload type.
type Attachment struct {
	UploadType  UploadType      `json:"upload_type"`
	LocalName   string          `json:"local_name"`
	Size        int64           `json:"size"`
	ContentType string          `json:"content_type"`
	RemoteRef   string          `json:"remote_ref,omitempty"`
	State       AttachmentState `json:"state"`
}
