package database

import (
	"log"

	bootcampModel "hairnerds_backend/internals/features/bootcamps/model"
	courseModel "hairnerds_backend/internals/features/courses/courses/model"
	lessonModel "hairnerds_backend/internals/features/courses/lessons/model"
	sectionModel "hairnerds_backend/internals/features/courses/sections/model"
	enrollModel "hairnerds_backend/internals/features/enrollments/model"
	paymentModel "hairnerds_backend/internals/features/finance/payments/model"
	faqModel "hairnerds_backend/internals/features/home/faqs/model"
	quizModel "hairnerds_backend/internals/features/quizzes/quiz/model"
	resultModel "hairnerds_backend/internals/features/quizzes/results/model"
	reviewModel "hairnerds_backend/internals/features/reviews/model"
	authModel "hairnerds_backend/internals/features/users/auth/model"
	userModel "hairnerds_backend/internals/features/users/user/model"
)

// AutoMigrate menjalankan migrasi skema untuk seluruh model.
// Dipakai via DB_AUTO_MIGRATE=true; produksi memakai migrasi SQL terpisah.
func AutoMigrate() {
	log.Println("[INFO] Menjalankan auto-migrate...")
	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklistModel{},
		&courseModel.CategoryModel{},
		&courseModel.CourseModel{},
		&sectionModel.SectionModel{},
		&lessonModel.LessonModel{},
		&lessonModel.AttachmentModel{},
		&quizModel.QuizModel{},
		&quizModel.QuestionModel{},
		&quizModel.AnswerBankModel{},
		&resultModel.QuizResultModel{},
		&enrollModel.EnrollmentModel{},
		&enrollModel.ProgressModel{},
		&bootcampModel.BootcampModel{},
		&bootcampModel.BootcampParticipantModel{},
		&reviewModel.ReviewModel{},
		&paymentModel.PaymentModel{},
		&faqModel.FaqModel{},
	)
	if err != nil {
		log.Fatalf("[ERROR] Auto-migrate gagal: %v", err)
	}
	log.Println("[INFO] Auto-migrate selesai ✅")
}
