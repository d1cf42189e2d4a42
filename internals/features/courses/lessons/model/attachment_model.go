package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AttachmentTypeYoutube  = "youtube"
	AttachmentTypeDocument = "document"
	AttachmentTypeText     = "text"
	AttachmentTypeAudio    = "audio"
	AttachmentTypeLive     = "live"
)

var ValidAttachmentTypes = []string{
	AttachmentTypeYoutube, AttachmentTypeDocument,
	AttachmentTypeText, AttachmentTypeAudio, AttachmentTypeLive,
}

// AttachmentModel menyimpan lampiran lesson.
// attachment_is_external membedakan URL eksternal vs blob di OSS kita;
// flag diputuskan sekali di boundary upload, bukan di-sniff ulang saat delete.
type AttachmentModel struct {
	AttachmentID       uuid.UUID `gorm:"column:attachment_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"attachment_id"`
	AttachmentLessonID uuid.UUID `gorm:"column:attachment_lesson_id;type:uuid;not null;index" json:"attachment_lesson_id"`

	AttachmentTitle      string `gorm:"column:attachment_title;type:varchar(255);not null" json:"attachment_title"`
	AttachmentType       string `gorm:"column:attachment_type;type:varchar(20);not null" json:"attachment_type"`
	AttachmentURL        string `gorm:"column:attachment_url;type:text;not null" json:"attachment_url"`
	AttachmentIsExternal bool   `gorm:"column:attachment_is_external;not null;default:false" json:"attachment_is_external"`

	AttachmentCreatedAt time.Time      `gorm:"column:attachment_created_at;autoCreateTime" json:"attachment_created_at"`
	AttachmentUpdatedAt time.Time      `gorm:"column:attachment_updated_at;autoUpdateTime" json:"attachment_updated_at"`
	AttachmentDeletedAt gorm.DeletedAt `gorm:"column:attachment_deleted_at;index" json:"attachment_deleted_at,omitempty"`
}

func (AttachmentModel) TableName() string {
	return "attachments"
}
