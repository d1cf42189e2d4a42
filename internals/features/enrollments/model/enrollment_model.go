package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentModel struct {
	EnrollmentID       uuid.UUID `gorm:"column:enrollment_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"enrollment_id"`
	EnrollmentUserID   uuid.UUID `gorm:"column:enrollment_user_id;type:uuid;not null;index:idx_enrollment_user_course,unique,where:enrollment_deleted_at IS NULL" json:"enrollment_user_id"`
	EnrollmentCourseID uuid.UUID `gorm:"column:enrollment_course_id;type:uuid;not null;index:idx_enrollment_user_course,unique,where:enrollment_deleted_at IS NULL" json:"enrollment_course_id"`

	EnrollmentQuizAttempts int        `gorm:"column:enrollment_quiz_attempts;not null;default:0" json:"enrollment_quiz_attempts"`
	EnrollmentFinishedAt   *time.Time `gorm:"column:enrollment_finished_at" json:"enrollment_finished_at,omitempty"`

	EnrollmentCreatedAt time.Time      `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time      `gorm:"column:enrollment_updated_at;autoUpdateTime" json:"enrollment_updated_at"`
	EnrollmentDeletedAt gorm.DeletedAt `gorm:"column:enrollment_deleted_at;index" json:"enrollment_deleted_at,omitempty"`
}

func (EnrollmentModel) TableName() string {
	return "enrollments"
}
