package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	faqController "hairnerds_backend/internals/features/home/faqs/controller"
	authMiddleware "hairnerds_backend/internals/middlewares/auth"
)

func HomeRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := faqController.NewFaqController(db)

	app.Get("/api/faqs", ctrl.GetFaqs)

	admin := app.Group("/api/admin/faqs",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manajemen FAQ"), constants.RoleAdmin),
	)
	admin.Post("/", ctrl.CreateFaq)
	admin.Put("/:id", ctrl.UpdateFaq)
	admin.Delete("/:id", ctrl.DeleteFaq)
}
