package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizModel struct {
	QuizID        uuid.UUID  `gorm:"column:quiz_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"quiz_id"`
	QuizLessonID  *uuid.UUID `gorm:"column:quiz_lesson_id;type:uuid;uniqueIndex" json:"quiz_lesson_id,omitempty"`
	QuizSectionID uuid.UUID  `gorm:"column:quiz_section_id;type:uuid;not null;index" json:"quiz_section_id"`
	QuizCourseID  uuid.UUID  `gorm:"column:quiz_course_id;type:uuid;not null;index" json:"quiz_course_id"`

	QuizTitle       string `gorm:"column:quiz_title;type:varchar(255);not null" json:"quiz_title"`
	QuizInstruction string `gorm:"column:quiz_instruction;type:text" json:"quiz_instruction"`

	QuizDurationSeconds int `gorm:"column:quiz_duration_seconds;not null;default:0" json:"quiz_duration_seconds"` // 0 = tanpa batas waktu
	QuizTotalMarks      int `gorm:"column:quiz_total_marks;not null;default:0" json:"quiz_total_marks"`
	QuizPassMarks       int `gorm:"column:quiz_pass_marks;not null;default:0" json:"quiz_pass_marks"`
	QuizMaxRetakes      int `gorm:"column:quiz_max_retakes;not null;default:0" json:"quiz_max_retakes"` // 0 = tak terbatas

	QuizCreatedAt time.Time      `gorm:"column:quiz_created_at;autoCreateTime" json:"quiz_created_at"`
	QuizUpdatedAt time.Time      `gorm:"column:quiz_updated_at;autoUpdateTime" json:"quiz_updated_at"`
	QuizDeletedAt gorm.DeletedAt `gorm:"column:quiz_deleted_at;index" json:"quiz_deleted_at,omitempty"`
}

func (QuizModel) TableName() string {
	return "quizzes"
}
