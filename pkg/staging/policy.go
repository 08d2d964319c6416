package staging

import "github.com/coursedesk/coursedesk/pkg/models"

// Policy bounds one upload type: batch size, per-file byte limit, the
// allowed content types, and the storage prefix every returned remote
// reference must live under.
type Policy struct {
	MaxFiles      int      `yaml:"max_files"`
	MaxBytes      int64    `yaml:"max_bytes"`
	AllowedTypes  []string `yaml:"allowed_types"`
	StoragePrefix string   `yaml:"storage_prefix"`
}

const mib = 1 << 20

// DefaultPolicies returns the stock per-type policies. Deployments
// override them through configuration.
func DefaultPolicies() map[models.UploadType]Policy {
	return map[models.UploadType]Policy{
		models.UploadTypeDocuments: {
			MaxFiles:      10,
			MaxBytes:      10 * mib,
			AllowedTypes:  []string{"application/pdf", "application/msword", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
			StoragePrefix: "courses/documents/",
		},
		models.UploadTypeImages: {
			MaxFiles:      8,
			MaxBytes:      5 * mib,
			AllowedTypes:  []string{"image/jpeg", "image/png", "image/webp"},
			StoragePrefix: "courses/images/",
		},
		models.UploadTypeVideos: {
			MaxFiles:      3,
			MaxBytes:      100 * mib,
			AllowedTypes:  []string{"video/mp4", "video/webm"},
			StoragePrefix: "courses/videos/",
		},
		models.UploadTypeMainImage: {
			MaxFiles:      1,
			MaxBytes:      5 * mib,
			AllowedTypes:  []string{"image/jpeg", "image/png"},
			StoragePrefix: "courses/main-image/",
		},
	}
}
