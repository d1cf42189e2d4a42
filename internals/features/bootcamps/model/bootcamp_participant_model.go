package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BootcampParticipantModel struct {
	BootcampParticipantID         uuid.UUID  `gorm:"column:bootcamp_participant_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"bootcamp_participant_id"`
	BootcampParticipantBootcampID uuid.UUID  `gorm:"column:bootcamp_participant_bootcamp_id;type:uuid;not null;index:idx_participant_bootcamp_user,unique,where:bootcamp_participant_deleted_at IS NULL" json:"bootcamp_participant_bootcamp_id"`
	BootcampParticipantUserID     uuid.UUID  `gorm:"column:bootcamp_participant_user_id;type:uuid;not null;index:idx_participant_bootcamp_user,unique,where:bootcamp_participant_deleted_at IS NULL" json:"bootcamp_participant_user_id"`
	BootcampParticipantPaymentID  *uuid.UUID `gorm:"column:bootcamp_participant_payment_id;type:uuid" json:"bootcamp_participant_payment_id,omitempty"`

	BootcampParticipantCreatedAt time.Time      `gorm:"column:bootcamp_participant_created_at;autoCreateTime" json:"bootcamp_participant_created_at"`
	BootcampParticipantDeletedAt gorm.DeletedAt `gorm:"column:bootcamp_participant_deleted_at;index" json:"bootcamp_participant_deleted_at,omitempty"`
}

func (BootcampParticipantModel) TableName() string {
	return "bootcamp_participants"
}
