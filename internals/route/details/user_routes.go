package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	userController "hairnerds_backend/internals/features/users/user/controller"
	authMiddleware "hairnerds_backend/internals/middlewares/auth"
)

func UserRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	admin := app.Group("/api/admin/users",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manajemen user"), constants.RoleAdmin),
	)
	admin.Get("/", ctrl.GetUsers)
	admin.Patch("/:id/role", ctrl.UpdateUserRole)
	admin.Patch("/:id/active", ctrl.SetUserActive)
}
