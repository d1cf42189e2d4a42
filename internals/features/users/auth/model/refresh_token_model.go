package model

import (
	"time"

	"github.com/google/uuid"
)

type RefreshTokenModel struct {
	RefreshTokenID        uuid.UUID  `gorm:"column:refresh_token_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"refresh_token_id"`
	RefreshTokenUserID    uuid.UUID  `gorm:"column:refresh_token_user_id;type:uuid;not null;index" json:"refresh_token_user_id"`
	RefreshTokenToken     string     `gorm:"column:refresh_token_token;type:varchar(128);not null;uniqueIndex" json:"-"` // hash, bukan raw
	RefreshTokenExpiresAt time.Time  `gorm:"column:refresh_token_expires_at;not null" json:"refresh_token_expires_at"`
	RefreshTokenRevokedAt *time.Time `gorm:"column:refresh_token_revoked_at" json:"refresh_token_revoked_at,omitempty"`
	RefreshTokenUserAgent *string    `gorm:"column:refresh_token_user_agent;type:varchar(255)" json:"refresh_token_user_agent,omitempty"`
	RefreshTokenIP        *string    `gorm:"column:refresh_token_ip;type:varchar(64)" json:"refresh_token_ip,omitempty"`
	RefreshTokenCreatedAt time.Time  `gorm:"column:refresh_token_created_at;autoCreateTime" json:"refresh_token_created_at"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
