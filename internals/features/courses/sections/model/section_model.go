package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SectionModel struct {
	SectionID       uuid.UUID `gorm:"column:section_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"section_id"`
	SectionCourseID uuid.UUID `gorm:"column:section_course_id;type:uuid;not null;index" json:"section_course_id"`
	SectionTitle    string    `gorm:"column:section_title;type:varchar(255);not null" json:"section_title"`
	SectionSequence int       `gorm:"column:section_sequence;not null;default:0" json:"section_sequence"`

	SectionCreatedAt time.Time      `gorm:"column:section_created_at;autoCreateTime" json:"section_created_at"`
	SectionUpdatedAt time.Time      `gorm:"column:section_updated_at;autoUpdateTime" json:"section_updated_at"`
	SectionDeletedAt gorm.DeletedAt `gorm:"column:section_deleted_at;index" json:"section_deleted_at,omitempty"`
}

func (SectionModel) TableName() string {
	return "sections"
}
