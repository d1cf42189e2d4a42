package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	courseController "hairnerds_backend/internals/features/courses/courses/controller"
	currController "hairnerds_backend/internals/features/courses/curriculum/controller"
	lessonController "hairnerds_backend/internals/features/courses/lessons/controller"
	sectionController "hairnerds_backend/internals/features/courses/sections/controller"
	reviewController "hairnerds_backend/internals/features/reviews/controller"
	authMiddleware "hairnerds_backend/internals/middlewares/auth"
)

func CourseRoutes(app *fiber.App, db *gorm.DB) {
	courseCtrl := courseController.NewCourseController(db)
	categoryCtrl := courseController.NewCategoryController(db)
	sectionCtrl := sectionController.NewSectionController(db)
	lessonCtrl := lessonController.NewLessonController(db)
	currCtrl := currController.NewCurriculumController(db)
	reviewCtrl := reviewController.NewReviewController(db)

	instructorGuard := authMiddleware.OnlyRoles(
		constants.RoleErrorInstructor("manajemen course"),
		constants.InstructorAndAbove...,
	)
	adminGuard := authMiddleware.OnlyRoles(
		constants.RoleErrorAdmin("moderasi course"),
		constants.RoleAdmin,
	)

	/* ===================== Publik ===================== */

	app.Get("/api/categories", categoryCtrl.GetCategories)
	app.Get("/api/courses", courseCtrl.GetCourses)
	app.Get("/api/courses/:id/reviews", reviewCtrl.GetCourseReviews)

	/* ===================== Dengan auth ===================== */

	authed := app.Group("/api", authMiddleware.AuthMiddleware(db))

	// katalog detail lewat slug; non-published hanya terlihat pemilik/admin
	authed.Get("/courses/mine", instructorGuard, courseCtrl.GetMyCourses)
	authed.Get("/courses/:slug", courseCtrl.GetCourseBySlug)

	// course management (instructor/admin)
	authed.Post("/courses", instructorGuard, courseCtrl.CreateCourse)
	authed.Put("/courses/:id", instructorGuard, courseCtrl.UpdateCourse)
	authed.Delete("/courses/:id", instructorGuard, courseCtrl.DeleteCourse)
	authed.Post("/courses/:id/thumbnail", instructorGuard, courseCtrl.UploadThumbnail)
	authed.Post("/courses/:id/submit", instructorGuard, courseCtrl.SubmitForReview)

	// kurikulum
	authed.Get("/courses/:id/curriculum", currCtrl.GetCurriculum)
	authed.Put("/courses/:id/curriculum", instructorGuard, currCtrl.SyncCurriculum)

	// sections
	authed.Get("/courses/:id/sections", sectionCtrl.GetSectionsByCourse)
	authed.Post("/sections", instructorGuard, sectionCtrl.CreateSection)
	authed.Put("/sections/sequences", instructorGuard, sectionCtrl.UpdateSequences)
	authed.Put("/sections/:id", instructorGuard, sectionCtrl.UpdateSection)
	authed.Delete("/sections/:id", instructorGuard, sectionCtrl.DeleteSection)

	// lessons + attachments
	authed.Get("/lessons/:id", lessonCtrl.GetLesson)
	authed.Post("/lessons", instructorGuard, lessonCtrl.CreateLesson)
	authed.Put("/lessons/:id", instructorGuard, lessonCtrl.UpdateLesson)
	authed.Delete("/lessons/:id", instructorGuard, lessonCtrl.DeleteLesson)
	authed.Post("/lessons/:id/attachments", instructorGuard, lessonCtrl.CreateExternalAttachment)
	authed.Post("/lessons/:id/attachments/upload", instructorGuard, lessonCtrl.UploadAttachment)
	authed.Delete("/attachments/:id", instructorGuard, lessonCtrl.DeleteAttachment)

	// reviews (peserta)
	authed.Post("/reviews", reviewCtrl.UpsertReview)
	authed.Delete("/reviews/:id", reviewCtrl.DeleteReview)

	/* ===================== Admin ===================== */

	admin := app.Group("/api/admin", authMiddleware.AuthMiddleware(db), adminGuard)
	admin.Post("/categories", categoryCtrl.CreateCategory)
	admin.Put("/categories/:id", categoryCtrl.UpdateCategory)
	admin.Delete("/categories/:id", categoryCtrl.DeleteCategory)
	admin.Post("/courses/:id/verify", courseCtrl.VerifyCourse)
	admin.Post("/courses/:id/reject", courseCtrl.RejectCourse)
}
