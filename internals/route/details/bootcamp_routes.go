package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	bootcampController "hairnerds_backend/internals/features/bootcamps/controller"
	authMiddleware "hairnerds_backend/internals/middlewares/auth"
)

func BootcampRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := bootcampController.NewBootcampController(db)

	// katalog publik
	app.Get("/api/bootcamps", ctrl.GetBootcamps)
	app.Get("/api/bootcamps/:slug", ctrl.GetBootcampBySlug)

	admin := app.Group("/api/admin/bootcamps",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manajemen bootcamp"), constants.RoleAdmin),
	)
	admin.Post("/", ctrl.CreateBootcamp)
	admin.Put("/:id", ctrl.UpdateBootcamp)
	admin.Delete("/:id", ctrl.DeleteBootcamp)
	admin.Post("/:id/publish", ctrl.PublishBootcamp)
	admin.Post("/:id/finish", ctrl.FinishBootcamp)
	admin.Post("/:id/thumbnail", ctrl.UploadThumbnail)
	admin.Get("/:id/participants", ctrl.GetParticipants)
}
