package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	"hairnerds_backend/internals/features/users/auth/dto"
	"hairnerds_backend/internals/features/users/auth/service"
	userModel "hairnerds_backend/internals/features/users/user/model"
	helper "hairnerds_backend/internals/helpers"
)

type AuthController struct {
	DB        *gorm.DB
	Service   *service.AuthService
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:        db,
		Service:   service.NewAuthService(db),
		Validator: validator.New(),
	}
}

/* ========================== POST /api/auth/register ========================== */

func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctrl.Service.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registrasi berhasil", dto.ToUserDTO(*user))
}

/* ========================== POST /api/auth/login ========================== */

func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctrl.Service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctrl.respondTokenPair(c, *user, "Login berhasil")
}

/* ========================== POST /api/auth/refresh-token ========================== */

func (ctrl *AuthController) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctrl.Service.Rotate(c.Context(), req.RefreshToken)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctrl.respondTokenPair(c, *user, "Token diperbarui")
}

/* ========================== POST /api/auth/logout ========================== */

func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	_ = c.BodyParser(&req) // refresh token di body opsional

	rawAccess := helper.GetRawAccessToken(c)
	if err := ctrl.Service.Logout(c.Context(), rawAccess, req.RefreshToken); err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Logout berhasil", nil)
}

/* ========================== GET /api/auth/me ========================== */

func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Profil user", dto.ToUserDTO(user))
}

/* ========================== helper ========================== */

func (ctrl *AuthController) respondTokenPair(c *fiber.Ctx, user userModel.UserModel, message string) error {
	access, refresh, err := service.IssueTokenPair(ctrl.DB, user, c.Get("User-Agent"), c.IP())
	if err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, message, dto.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(service.AccessTTL.Seconds()),
		User:         dto.ToUserDTO(user),
	})
}
