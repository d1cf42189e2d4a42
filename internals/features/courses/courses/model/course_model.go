package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* Selaras dengan ENUM course_status di PostgreSQL */
const (
	CourseStatusDraft     = "draft"
	CourseStatusPending   = "pending"
	CourseStatusPublished = "published"
	CourseStatusRejected  = "rejected"
)

const (
	CourseLevelBeginner     = "beginner"
	CourseLevelIntermediate = "intermediate"
	CourseLevelAdvanced     = "advanced"
)

type CourseModel struct {
	CourseID           uuid.UUID  `gorm:"column:course_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"course_id"`
	CourseInstructorID uuid.UUID  `gorm:"column:course_instructor_id;type:uuid;not null;index" json:"course_instructor_id"`
	CourseCategoryID   *uuid.UUID `gorm:"column:course_category_id;type:uuid;index" json:"course_category_id,omitempty"`

	CourseTitle       string  `gorm:"column:course_title;type:varchar(255);not null" json:"course_title"`
	CourseSlug        string  `gorm:"column:course_slug;type:varchar(255);not null;uniqueIndex" json:"course_slug"`
	CourseDescription string  `gorm:"column:course_description;type:text" json:"course_description"`
	CourseThumbnail   *string `gorm:"column:course_thumbnail;type:text" json:"course_thumbnail,omitempty"`
	CoursePriceIDR    int     `gorm:"column:course_price_idr;not null;default:0;check:course_price_idr >= 0" json:"course_price_idr"`
	CourseLevel       string  `gorm:"column:course_level;type:varchar(20);not null;default:'beginner'" json:"course_level"`
	CourseStatus      string  `gorm:"column:course_status;type:varchar(20);not null;default:'draft'" json:"course_status"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"course_deleted_at,omitempty"`
}

func (CourseModel) TableName() string {
	return "courses"
}

func (m *CourseModel) IsFree() bool {
	return m.CoursePriceIDR == 0
}
