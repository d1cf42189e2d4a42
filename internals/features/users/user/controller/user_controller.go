package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authDTO "hairnerds_backend/internals/features/users/auth/dto"
	"hairnerds_backend/internals/features/users/user/dto"
	"hairnerds_backend/internals/features/users/user/model"
	helper "hairnerds_backend/internals/helpers"
)

type UserController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validator: validator.New()}
}

/* ========================== GET /api/admin/users ========================== */

func (ctrl *UserController) GetUsers(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 10, 100)

	base := ctrl.DB.Model(&model.UserModel{})
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		base = base.Where("user_name ILIKE ? OR user_email ILIKE ?", like, like)
	}
	if role := c.Query("role"); role != "" {
		base = base.Where("user_role = ?", role)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.InternalError(c, err)
	}

	var users []model.UserModel
	if err := base.
		Order("user_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&users).Error; err != nil {
		return helper.InternalError(c, err)
	}

	items := make([]authDTO.UserDTO, 0, len(users))
	for _, u := range users {
		items = append(items, authDTO.ToUserDTO(u))
	}
	return helper.SuccessList(c, "Daftar user",
		helper.Paginate(c.Path(), items, len(items), total, p))
}

/* ========================== PATCH /api/admin/users/:id/role ========================== */

func (ctrl *UserController) UpdateUserRole(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID user tidak valid")
	}

	var req dto.UpdateUserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	user.UserRole = req.Role
	if err := ctrl.DB.Save(&user).Error; err != nil {
		return helper.InternalError(c, err)
	}
	log.Printf("[INFO] role user %s diubah jadi %s", user.UserEmail, user.UserRole)
	return helper.Success(c, "Role user diperbarui", authDTO.ToUserDTO(user))
}

/* ========================== PATCH /api/admin/users/:id/active ========================== */

func (ctrl *UserController) SetUserActive(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID user tidak valid")
	}

	var req dto.SetUserActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	user.UserIsActive = *req.IsActive
	if err := ctrl.DB.Save(&user).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Status user diperbarui", authDTO.ToUserDTO(user))
}
