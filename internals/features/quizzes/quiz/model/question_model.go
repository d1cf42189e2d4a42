package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* Selaras dengan ENUM question_type di PostgreSQL */
const (
	QuestionTypeSingleChoice   = "single_choice"
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeFillBlank      = "fill_blank"
)

var ValidQuestionTypes = []string{
	QuestionTypeSingleChoice, QuestionTypeMultipleChoice, QuestionTypeFillBlank,
}

type QuestionModel struct {
	QuestionID     uuid.UUID `gorm:"column:question_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"question_id"`
	QuestionQuizID uuid.UUID `gorm:"column:question_quiz_id;type:uuid;not null;index" json:"question_quiz_id"`

	QuestionType  string `gorm:"column:question_type;type:varchar(20);not null" json:"question_type"`
	QuestionText  string `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionScore int    `gorm:"column:question_score;not null;default:0;check:question_score >= 0" json:"question_score"`

	QuestionCreatedAt time.Time      `gorm:"column:question_created_at;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt time.Time      `gorm:"column:question_updated_at;autoUpdateTime" json:"question_updated_at"`
	QuestionDeletedAt gorm.DeletedAt `gorm:"column:question_deleted_at;index" json:"question_deleted_at,omitempty"`
}

func (QuestionModel) TableName() string {
	return "questions"
}
