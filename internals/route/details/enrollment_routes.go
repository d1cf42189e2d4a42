package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	enrollController "hairnerds_backend/internals/features/enrollments/controller"
	authMiddleware "hairnerds_backend/internals/middlewares/auth"
)

func EnrollmentRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := enrollController.NewEnrollmentController(db)

	authed := app.Group("/api", authMiddleware.AuthMiddleware(db))
	authed.Post("/enrollments", ctrl.EnrollFreeCourse)
	authed.Get("/enrollments/mine", ctrl.GetMyEnrollments)
	authed.Get("/enrollments/:id/progress", ctrl.GetProgress)
	authed.Post("/enrollments/:id/finish", ctrl.FinishEnrollment)
	authed.Post("/lessons/:id/complete", ctrl.CompleteLesson)
}
