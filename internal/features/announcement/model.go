package announcement

import (
	"time"

	"go-hr/internal/common/models"
)

// categoryCode is the code table category for announcement categories.
const categoryCode = "0090"

// Announcement is one bulletin entry. Publish and expire dates bound the
// visibility window and are stored as YYYY-MM-DD; an empty date leaves
// that bound open.
type Announcement struct {
	AnnouncementID string    `json:"announcement_id" bson:"announcement_id"`
	Title          string    `json:"title" bson:"title"`
	Content        string    `json:"content" bson:"content"`
	CategoryID     string    `json:"category_id" bson:"category_id"`
	IsPinned       bool      `json:"is_pinned" bson:"is_pinned"`
	IsActive       bool      `json:"is_active" bson:"is_active"`
	PublishDate    string    `json:"publish_date,omitempty" bson:"publish_date,omitempty"`
	ExpireDate     string    `json:"expire_date,omitempty" bson:"expire_date,omitempty"`
	CreatedBy      string    `json:"created_by" bson:"created_by"`
	ReadBy         []string  `json:"-" bson:"read_by"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`

	CategoryName string       `json:"category_name,omitempty" bson:"-"`
	Attachments  []Attachment `json:"attachments,omitempty" bson:"-"`
}

// Attachment is one uploaded file on an announcement. The bytes live on
// disk under the upload directory; only the metadata is stored.
type Attachment struct {
	AttachmentID   string    `json:"attachment_id" bson:"attachment_id"`
	AnnouncementID string    `json:"announcement_id" bson:"announcement_id"`
	FileName       string    `json:"file_name" bson:"file_name"`
	Path           string    `json:"-" bson:"path"`
	FileSize       int64     `json:"file_size" bson:"file_size"`
	FileType       string    `json:"file_type" bson:"file_type"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

type Filter struct {
	models.ListQuery
	CategoryID string
	IsActive   *bool
}
