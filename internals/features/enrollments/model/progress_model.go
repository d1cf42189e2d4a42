package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressModel: catatan penyelesaian per lesson dalam satu enrollment.
// Monotonic: sekali is_completed=true, score & status tidak pernah ditimpa.
type ProgressModel struct {
	ProgressID           uuid.UUID `gorm:"column:progress_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"progress_id"`
	ProgressEnrollmentID uuid.UUID `gorm:"column:progress_enrollment_id;type:uuid;not null;index" json:"progress_enrollment_id"`
	ProgressUserID       uuid.UUID `gorm:"column:progress_user_id;type:uuid;not null;index" json:"progress_user_id"`
	ProgressCourseID     uuid.UUID `gorm:"column:progress_course_id;type:uuid;not null;index" json:"progress_course_id"`
	ProgressLessonID     uuid.UUID `gorm:"column:progress_lesson_id;type:uuid;not null;index" json:"progress_lesson_id"`

	ProgressIsCompleted bool       `gorm:"column:progress_is_completed;not null;default:false" json:"progress_is_completed"`
	ProgressScore       *int       `gorm:"column:progress_score" json:"progress_score,omitempty"`
	ProgressCompletedAt *time.Time `gorm:"column:progress_completed_at" json:"progress_completed_at,omitempty"`

	ProgressCreatedAt time.Time      `gorm:"column:progress_created_at;autoCreateTime" json:"progress_created_at"`
	ProgressUpdatedAt time.Time      `gorm:"column:progress_updated_at;autoUpdateTime" json:"progress_updated_at"`
	ProgressDeletedAt gorm.DeletedAt `gorm:"column:progress_deleted_at;index" json:"progress_deleted_at,omitempty"`
}

func (ProgressModel) TableName() string {
	return "progresses"
}
