package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	authModel "hairnerds_backend/internals/features/users/auth/model"
	userModel "hairnerds_backend/internals/features/users/user/model"
)

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

/* ========================== REGISTER ========================== */

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*userModel.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := s.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("user_email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "Email sudah terdaftar")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := userModel.UserModel{
		UserName:     strings.TrimSpace(name),
		UserEmail:    email,
		UserPassword: string(hashed),
		UserRole:     constants.RoleStudent,
		UserIsActive: true,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	log.Printf("[INFO] user baru terdaftar: %s", user.UserEmail)
	return &user, nil
}

/* ========================== LOGIN ========================== */

func (s *AuthService) Login(ctx context.Context, email, password string) (*userModel.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user userModel.UserModel
	if err := s.DB.WithContext(ctx).First(&user, "user_email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(password)); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
	}
	if !user.UserIsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Akun dinonaktifkan")
	}
	return &user, nil
}

/* ========================== REFRESH (ROTATE) ========================== */

// Rotate memvalidasi refresh token, menghapus hash lamanya, dan
// mengembalikan user-nya supaya caller bisa menerbitkan pasangan baru.
// Refresh token yang sudah dipakai tidak bisa dipakai lagi.
func (s *AuthService) Rotate(ctx context.Context, rawRefresh string) (*userModel.UserModel, error) {
	userID, err := ParseRefreshToken(rawRefresh)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}

	hash := ComputeRefreshHash(rawRefresh)

	var row authModel.RefreshTokenModel
	if err := s.DB.WithContext(ctx).
		First(&row, "refresh_token_token = ?", hash).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token tidak dikenal")
		}
		return nil, err
	}
	if row.RefreshTokenRevokedAt != nil || time.Now().After(row.RefreshTokenExpiresAt) {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token sudah tidak berlaku")
	}
	if row.RefreshTokenUserID != userID {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// rotate: token lama hangus permanen
	if err := s.DB.WithContext(ctx).
		Delete(&authModel.RefreshTokenModel{}, "refresh_token_id = ?", row.RefreshTokenID).Error; err != nil {
		return nil, err
	}

	var user userModel.UserModel
	if err := s.DB.WithContext(ctx).First(&user, "user_id = ?", userID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if !user.UserIsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Akun dinonaktifkan")
	}
	return &user, nil
}

/* ========================== LOGOUT ========================== */

// Logout: blacklist access token dan revoke semua refresh token milik user
// yang cocok dengan raw refresh (kalau dikirim) — atau hanya access token.
func (s *AuthService) Logout(ctx context.Context, rawAccess, rawRefresh string) error {
	if rawAccess != "" {
		if err := BlacklistAccessToken(s.DB.WithContext(ctx), rawAccess); err != nil {
			return err
		}
	}
	if rawRefresh != "" {
		hash := ComputeRefreshHash(rawRefresh)
		if err := s.DB.WithContext(ctx).
			Delete(&authModel.RefreshTokenModel{}, "refresh_token_token = ?", hash).Error; err != nil {
			log.Printf("[WARN] gagal hapus refresh token saat logout: %v", err)
		}
	}
	return nil
}
