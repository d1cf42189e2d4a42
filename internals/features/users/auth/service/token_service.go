package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hairnerds_backend/internals/configs"
	authModel "hairnerds_backend/internals/features/users/auth/model"
	userModel "hairnerds_backend/internals/features/users/user/model"
)

const (
	AccessTTL  = 1 * time.Hour
	RefreshTTL = 7 * 24 * time.Hour
)

/* =========================================================
   JWT claims
========================================================= */

func buildAccessClaims(u userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":       u.UserID.String(),
		"id":        u.UserID.String(),
		"user_name": u.UserName,
		"role":      u.UserRole,
		"typ":       "access",
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTTL).Unix(),
	}
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": userID.String(),
		"typ": "refresh",
		"jti": uuid.New().String(),
		"iat": now.Unix(),
		"exp": now.Add(RefreshTTL).Unix(),
	}
}

// IssueTokenPair menerbitkan access + refresh token dan menyimpan
// hash refresh token ke DB (raw token tidak pernah disimpan).
func IssueTokenPair(db *gorm.DB, u userModel.UserModel, userAgent, ip string) (access, refresh string, err error) {
	now := time.Now().UTC()

	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(u, now)).
		SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", "", err
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(u.UserID, now)).
		SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", "", err
	}

	row := authModel.RefreshTokenModel{
		RefreshTokenUserID:    u.UserID,
		RefreshTokenToken:     ComputeRefreshHash(refresh),
		RefreshTokenExpiresAt: now.Add(RefreshTTL),
	}
	if userAgent != "" {
		row.RefreshTokenUserAgent = &userAgent
	}
	if ip != "" {
		row.RefreshTokenIP = &ip
	}
	if err := db.Create(&row).Error; err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ComputeRefreshHash — HMAC-SHA256(raw, refreshSecret), hex.
func ComputeRefreshHash(raw string) string {
	m := hmac.New(sha256.New, []byte(configs.JWTRefreshSecret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}

// ParseRefreshToken memvalidasi refresh JWT (signature, exp, typ) dan
// mengembalikan user id pemiliknya.
func ParseRefreshToken(raw string) (uuid.UUID, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	sub, _ := claims["sub"].(string)
	uid, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	return uid, nil
}

// BlacklistAccessToken memasukkan access token ke blacklist sampai exp-nya lewat.
func BlacklistAccessToken(db *gorm.DB, rawToken string) error {
	expiredAt := time.Now().Add(AccessTTL) // fallback kalau exp tidak terbaca
	if tok, _, err := new(jwt.Parser).ParseUnverified(rawToken, jwt.MapClaims{}); err == nil {
		if claims, ok := tok.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				expiredAt = time.Unix(int64(exp), 0)
			}
		}
	}
	return db.Create(&authModel.TokenBlacklistModel{
		TokenBlacklistToken:     rawToken,
		TokenBlacklistExpiredAt: expiredAt,
	}).Error
}
