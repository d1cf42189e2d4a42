package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* Selaras dengan ENUM lesson_type di PostgreSQL */
const (
	LessonTypeYoutube  = "youtube"
	LessonTypeDocument = "document"
	LessonTypeText     = "text"
	LessonTypeAudio    = "audio"
	LessonTypeLive     = "live"
	LessonTypeQuiz     = "quiz"
)

var ValidLessonTypes = []string{
	LessonTypeYoutube, LessonTypeDocument, LessonTypeText,
	LessonTypeAudio, LessonTypeLive, LessonTypeQuiz,
}

type LessonModel struct {
	LessonID        uuid.UUID `gorm:"column:lesson_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"lesson_id"`
	LessonSectionID uuid.UUID `gorm:"column:lesson_section_id;type:uuid;not null;index" json:"lesson_section_id"`
	LessonCourseID  uuid.UUID `gorm:"column:lesson_course_id;type:uuid;not null;index" json:"lesson_course_id"`

	LessonTitle    string  `gorm:"column:lesson_title;type:varchar(255);not null" json:"lesson_title"`
	LessonType     string  `gorm:"column:lesson_type;type:varchar(20);not null" json:"lesson_type"`
	LessonContent  *string `gorm:"column:lesson_content;type:text" json:"lesson_content,omitempty"` // teks / URL video / URL live
	LessonSequence int     `gorm:"column:lesson_sequence;not null;default:0" json:"lesson_sequence"`
	LessonIsFree   bool    `gorm:"column:lesson_is_free;not null;default:false" json:"lesson_is_free"`

	LessonCreatedAt time.Time      `gorm:"column:lesson_created_at;autoCreateTime" json:"lesson_created_at"`
	LessonUpdatedAt time.Time      `gorm:"column:lesson_updated_at;autoUpdateTime" json:"lesson_updated_at"`
	LessonDeletedAt gorm.DeletedAt `gorm:"column:lesson_deleted_at;index" json:"lesson_deleted_at,omitempty"`
}

func (LessonModel) TableName() string {
	return "lessons"
}
