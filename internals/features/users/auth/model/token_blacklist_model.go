package model

import (
	"time"

	"github.com/google/uuid"
)

type TokenBlacklistModel struct {
	TokenBlacklistID        uuid.UUID `gorm:"column:token_blacklist_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"token_blacklist_id"`
	TokenBlacklistToken     string    `gorm:"column:token_blacklist_token;type:text;not null;index" json:"-"`
	TokenBlacklistExpiredAt time.Time `gorm:"column:token_blacklist_expired_at;not null" json:"token_blacklist_expired_at"`
	TokenBlacklistCreatedAt time.Time `gorm:"column:token_blacklist_created_at;autoCreateTime" json:"token_blacklist_created_at"`
}

func (TokenBlacklistModel) TableName() string {
	return "token_blacklists"
}
