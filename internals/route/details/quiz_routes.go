package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	quizController "hairnerds_backend/internals/features/quizzes/quiz/controller"
	resultController "hairnerds_backend/internals/features/quizzes/results/controller"
	resultService "hairnerds_backend/internals/features/quizzes/results/service"
	authMiddleware "hairnerds_backend/internals/middlewares/auth"
)

func QuizRoutes(app *fiber.App, db *gorm.DB, resultSvc *resultService.QuizResultService) {
	quizCtrl := quizController.NewQuizController(db)
	resultCtrl := resultController.NewQuizResultController(db, resultSvc)

	instructorGuard := authMiddleware.OnlyRoles(
		constants.RoleErrorInstructor("manajemen quiz"),
		constants.InstructorAndAbove...,
	)

	authed := app.Group("/api", authMiddleware.AuthMiddleware(db))

	// bank soal (instructor/admin)
	authed.Post("/quizzes", instructorGuard, quizCtrl.CreateQuiz)
	authed.Put("/quizzes/:id", instructorGuard, quizCtrl.UpdateQuiz)
	authed.Delete("/quizzes/:id", instructorGuard, quizCtrl.DeleteQuiz)
	authed.Post("/quizzes/:id/questions", instructorGuard, quizCtrl.CreateQuestion)
	authed.Put("/questions/:id", instructorGuard, quizCtrl.UpdateQuestion)
	authed.Delete("/questions/:id", instructorGuard, quizCtrl.DeleteQuestion)

	// pengerjaan quiz (peserta)
	authed.Get("/lessons/:id/quiz", quizCtrl.GetQuizByLesson)
	authed.Post("/quizzes/:id/start", resultCtrl.StartQuiz)
	authed.Get("/quizzes/:id/results", resultCtrl.GetMyQuizResults)
	authed.Post("/quiz-results/:id/submit", resultCtrl.SubmitQuiz)
	authed.Get("/quiz-results/:id", resultCtrl.GetQuizResult)
}
