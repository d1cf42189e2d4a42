package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FaqModel struct {
	FaqID       uuid.UUID `gorm:"column:faq_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"faq_id"`
	FaqQuestion string    `gorm:"column:faq_question;type:text;not null" json:"faq_question"`
	FaqAnswer   string    `gorm:"column:faq_answer;type:text;not null" json:"faq_answer"`
	FaqSequence int       `gorm:"column:faq_sequence;not null;default:0" json:"faq_sequence"`

	FaqCreatedAt time.Time      `gorm:"column:faq_created_at;autoCreateTime" json:"faq_created_at"`
	FaqUpdatedAt time.Time      `gorm:"column:faq_updated_at;autoUpdateTime" json:"faq_updated_at"`
	FaqDeletedAt gorm.DeletedAt `gorm:"column:faq_deleted_at;index" json:"faq_deleted_at,omitempty"`
}

func (FaqModel) TableName() string {
	return "faqs"
}
