package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewModel struct {
	ReviewID       uuid.UUID `gorm:"column:review_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"review_id"`
	ReviewUserID   uuid.UUID `gorm:"column:review_user_id;type:uuid;not null;index:idx_review_user_course,unique,where:review_deleted_at IS NULL" json:"review_user_id"`
	ReviewCourseID uuid.UUID `gorm:"column:review_course_id;type:uuid;not null;index:idx_review_user_course,unique,where:review_deleted_at IS NULL" json:"review_course_id"`

	ReviewRating int    `gorm:"column:review_rating;not null;check:review_rating BETWEEN 1 AND 5" json:"review_rating"`
	ReviewText   string `gorm:"column:review_text;type:text" json:"review_text"`

	ReviewCreatedAt time.Time      `gorm:"column:review_created_at;autoCreateTime" json:"review_created_at"`
	ReviewUpdatedAt time.Time      `gorm:"column:review_updated_at;autoUpdateTime" json:"review_updated_at"`
	ReviewDeletedAt gorm.DeletedAt `gorm:"column:review_deleted_at;index" json:"review_deleted_at,omitempty"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}
