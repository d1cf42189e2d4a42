package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnswerBankModel struct {
	AnswerBankID         uuid.UUID `gorm:"column:answer_bank_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"answer_bank_id"`
	AnswerBankQuestionID uuid.UUID `gorm:"column:answer_bank_question_id;type:uuid;not null;index" json:"answer_bank_question_id"`

	AnswerBankAnswer string `gorm:"column:answer_bank_answer;type:text;not null" json:"answer_bank_answer"`
	AnswerBankIsTrue bool   `gorm:"column:answer_bank_is_true;not null;default:false" json:"answer_bank_is_true"`

	AnswerBankCreatedAt time.Time      `gorm:"column:answer_bank_created_at;autoCreateTime" json:"answer_bank_created_at"`
	AnswerBankUpdatedAt time.Time      `gorm:"column:answer_bank_updated_at;autoUpdateTime" json:"answer_bank_updated_at"`
	AnswerBankDeletedAt gorm.DeletedAt `gorm:"column:answer_bank_deleted_at;index" json:"answer_bank_deleted_at,omitempty"`
}

func (AnswerBankModel) TableName() string {
	return "answer_banks"
}
