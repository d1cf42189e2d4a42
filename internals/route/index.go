package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	resultService "hairnerds_backend/internals/features/quizzes/results/service"
	routeDetails "hairnerds_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes mendaftarkan seluruh route aplikasi.
// resultSvc dibuat di main supaya scheduler auto-submit memakai instance
// yang sama dengan controller.
func SetupRoutes(app *fiber.App, db *gorm.DB, resultSvc *resultService.QuizResultService) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	log.Println("[INFO] Setting up UserRoutes...")
	routeDetails.UserRoutes(app, db)

	log.Println("[INFO] Setting up CourseRoutes...")
	routeDetails.CourseRoutes(app, db)

	log.Println("[INFO] Setting up QuizRoutes...")
	routeDetails.QuizRoutes(app, db, resultSvc)

	log.Println("[INFO] Setting up EnrollmentRoutes...")
	routeDetails.EnrollmentRoutes(app, db)

	log.Println("[INFO] Setting up FinanceRoutes...")
	routeDetails.FinanceRoutes(app, db)

	log.Println("[INFO] Setting up BootcampRoutes...")
	routeDetails.BootcampRoutes(app, db)

	log.Println("[INFO] Setting up HomeRoutes...")
	routeDetails.HomeRoutes(app, db)
}
