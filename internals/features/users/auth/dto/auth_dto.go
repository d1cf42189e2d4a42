package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "hairnerds_backend/internals/features/users/user/model"
)

/* ===================== Request ===================== */

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

/* ===================== Response ===================== */

type UserDTO struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserDTO(u userModel.UserModel) UserDTO {
	return UserDTO{
		UserID:    u.UserID,
		Name:      u.UserName,
		Email:     u.UserEmail,
		Role:      u.UserRole,
		IsActive:  u.UserIsActive,
		CreatedAt: u.UserCreatedAt,
	}
}

type TokenPairResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	TokenType    string  `json:"token_type"` // selalu "Bearer"
	ExpiresIn    int64   `json:"expires_in"` // detik sisa umur access token
	User         UserDTO `json:"user"`
}
