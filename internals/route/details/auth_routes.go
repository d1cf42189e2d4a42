package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "hairnerds_backend/internals/features/users/auth/controller"
	"hairnerds_backend/internals/middlewares"
	authMiddleware "hairnerds_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/refresh-token", ctrl.RefreshToken)

	protected := auth.Group("", authMiddleware.AuthMiddleware(db))
	protected.Post("/logout", ctrl.Logout)
	protected.Get("/me", ctrl.Me)
}
