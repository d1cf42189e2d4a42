package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	courseModel "hairnerds_backend/internals/features/courses/courses/model"
	courseService "hairnerds_backend/internals/features/courses/courses/service"
	lessonModel "hairnerds_backend/internals/features/courses/lessons/model"
	enrollModel "hairnerds_backend/internals/features/enrollments/model"
	"hairnerds_backend/internals/features/quizzes/quiz/dto"
	"hairnerds_backend/internals/features/quizzes/quiz/model"
	helper "hairnerds_backend/internals/helpers"
)

type QuizController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewQuizController(db *gorm.DB) *QuizController {
	return &QuizController{DB: db, Validator: validator.New()}
}

/* =========================================================
   POST /api/quizzes  (instructor/admin)
========================================================= */

func (ctrl *QuizController) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var lesson lessonModel.LessonModel
	if err := ctrl.DB.First(&lesson, "lesson_id = ?", req.LessonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Lesson tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}
	if lesson.LessonType != lessonModel.LessonTypeQuiz {
		return helper.Error(c, fiber.StatusUnprocessableEntity, "Lesson ini bukan bertipe quiz")
	}
	if fail := ctrl.requireCourseOwnership(c, lesson.LessonCourseID); fail != nil {
		return helper.FromFiberError(c, fail)
	}

	var count int64
	if err := ctrl.DB.Model(&model.QuizModel{}).
		Where("quiz_lesson_id = ?", lesson.LessonID).Count(&count).Error; err != nil {
		return helper.InternalError(c, err)
	}
	if count > 0 {
		return helper.Error(c, fiber.StatusUnprocessableEntity, "Lesson ini sudah punya quiz")
	}

	lessonID := lesson.LessonID
	quiz := model.QuizModel{
		QuizLessonID:        &lessonID,
		QuizSectionID:       lesson.LessonSectionID,
		QuizCourseID:        lesson.LessonCourseID,
		QuizTitle:           req.Title,
		QuizInstruction:     req.Instruction,
		QuizDurationSeconds: req.DurationSeconds,
		QuizTotalMarks:      req.TotalMarks,
		QuizPassMarks:       req.PassMarks,
		QuizMaxRetakes:      req.MaxRetakes,
	}
	if err := ctrl.DB.Create(&quiz).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Quiz dibuat", dto.ToQuizDTO(quiz))
}

/* =========================================================
   GET /api/lessons/:id/quiz  (peserta — tanpa kunci jawaban)
========================================================= */

func (ctrl *QuizController) GetQuizByLesson(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID lesson tidak valid")
	}

	var quiz model.QuizModel
	if err := ctrl.DB.First(&quiz, "quiz_lesson_id = ?", lessonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Quiz tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	role := helper.GetRoleFromToken(c)
	var course courseModel.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", quiz.QuizCourseID).Error; err != nil {
		return helper.InternalError(c, err)
	}

	withKey := courseService.CanModifyCourse(role, userID, course)
	if !withKey {
		// peserta harus terdaftar di course-nya
		var enrolled int64
		if err := ctrl.DB.Model(&enrollModel.EnrollmentModel{}).
			Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, quiz.QuizCourseID).
			Count(&enrolled).Error; err != nil {
			return helper.InternalError(c, err)
		}
		if enrolled == 0 {
			return helper.Error(c, fiber.StatusForbidden, "Anda belum terdaftar di course ini")
		}
	}

	out := dto.ToQuizDTO(quiz)

	var questions []model.QuestionModel
	if err := ctrl.DB.
		Where("question_quiz_id = ?", quiz.QuizID).
		Order("question_created_at ASC").
		Find(&questions).Error; err != nil {
		return helper.InternalError(c, err)
	}
	for _, q := range questions {
		var banks []model.AnswerBankModel
		if err := ctrl.DB.
			Where("answer_bank_question_id = ?", q.QuestionID).
			Order("answer_bank_created_at ASC").
			Find(&banks).Error; err != nil {
			return helper.InternalError(c, err)
		}
		out.Questions = append(out.Questions, dto.ToQuestionDTO(q, banks, withKey))
	}

	return helper.Success(c, "Detail quiz", out)
}

/* =========================================================
   PUT /api/quizzes/:id
========================================================= */

func (ctrl *QuizController) UpdateQuiz(c *fiber.Ctx) error {
	quiz, fail := ctrl.loadOwnedQuiz(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	var req dto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.Title != nil {
		quiz.QuizTitle = *req.Title
	}
	if req.Instruction != nil {
		quiz.QuizInstruction = *req.Instruction
	}
	if req.DurationSeconds != nil {
		quiz.QuizDurationSeconds = *req.DurationSeconds
	}
	if req.TotalMarks != nil {
		quiz.QuizTotalMarks = *req.TotalMarks
	}
	if req.PassMarks != nil {
		quiz.QuizPassMarks = *req.PassMarks
	}
	if req.MaxRetakes != nil {
		quiz.QuizMaxRetakes = *req.MaxRetakes
	}

	if err := ctrl.DB.Save(quiz).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Quiz diperbarui", dto.ToQuizDTO(*quiz))
}

/* =========================================================
   DELETE /api/quizzes/:id  (beserta pertanyaan & jawabannya)
========================================================= */

func (ctrl *QuizController) DeleteQuiz(c *fiber.Ctx) error {
	quiz, fail := ctrl.loadOwnedQuiz(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var questions []model.QuestionModel
		if err := tx.Where("question_quiz_id = ?", quiz.QuizID).Find(&questions).Error; err != nil {
			return err
		}
		for _, q := range questions {
			if err := tx.Delete(&model.AnswerBankModel{}, "answer_bank_question_id = ?", q.QuestionID).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&model.QuestionModel{}, "question_quiz_id = ?", quiz.QuizID).Error; err != nil {
			return err
		}
		return tx.Delete(quiz).Error
	})
	if err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Quiz dihapus", nil)
}

/* =========================================================
   Question ops
========================================================= */

// POST /api/quizzes/:id/questions
func (ctrl *QuizController) CreateQuestion(c *fiber.Ctx) error {
	quiz, fail := ctrl.loadOwnedQuiz(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	var req dto.UpsertQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if fail := validateAnswerKey(req); fail != nil {
		return helper.FromFiberError(c, fail)
	}

	var question model.QuestionModel
	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		question = model.QuestionModel{
			QuestionQuizID: quiz.QuizID,
			QuestionType:   req.Type,
			QuestionText:   req.Text,
			QuestionScore:  req.Score,
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		for _, a := range req.Answers {
			bank := model.AnswerBankModel{
				AnswerBankQuestionID: question.QuestionID,
				AnswerBankAnswer:     a.Answer,
				AnswerBankIsTrue:     a.IsTrue,
			}
			if err := tx.Create(&bank).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.InternalError(c, err)
	}

	var banks []model.AnswerBankModel
	ctrl.DB.Where("answer_bank_question_id = ?", question.QuestionID).Find(&banks)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pertanyaan ditambahkan",
		dto.ToQuestionDTO(question, banks, true))
}

// PUT /api/questions/:id — replace penuh: teks, tipe, dan seluruh jawaban.
func (ctrl *QuizController) UpdateQuestion(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID pertanyaan tidak valid")
	}

	var question model.QuestionModel
	if err := ctrl.DB.First(&question, "question_id = ?", questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Pertanyaan tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	var quiz model.QuizModel
	if err := ctrl.DB.First(&quiz, "quiz_id = ?", question.QuestionQuizID).Error; err != nil {
		return helper.InternalError(c, err)
	}
	if fail := ctrl.requireCourseOwnership(c, quiz.QuizCourseID); fail != nil {
		return helper.FromFiberError(c, fail)
	}

	var req dto.UpsertQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if fail := validateAnswerKey(req); fail != nil {
		return helper.FromFiberError(c, fail)
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		question.QuestionType = req.Type
		question.QuestionText = req.Text
		question.QuestionScore = req.Score
		if err := tx.Save(&question).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.AnswerBankModel{}, "answer_bank_question_id = ?", question.QuestionID).Error; err != nil {
			return err
		}
		for _, a := range req.Answers {
			bank := model.AnswerBankModel{
				AnswerBankQuestionID: question.QuestionID,
				AnswerBankAnswer:     a.Answer,
				AnswerBankIsTrue:     a.IsTrue,
			}
			if err := tx.Create(&bank).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return helper.InternalError(c, err)
	}

	var banks []model.AnswerBankModel
	ctrl.DB.Where("answer_bank_question_id = ?", question.QuestionID).Find(&banks)
	return helper.Success(c, "Pertanyaan diperbarui", dto.ToQuestionDTO(question, banks, true))
}

// DELETE /api/questions/:id
func (ctrl *QuizController) DeleteQuestion(c *fiber.Ctx) error {
	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID pertanyaan tidak valid")
	}

	var question model.QuestionModel
	if err := ctrl.DB.First(&question, "question_id = ?", questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Pertanyaan tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	var quiz model.QuizModel
	if err := ctrl.DB.First(&quiz, "quiz_id = ?", question.QuestionQuizID).Error; err != nil {
		return helper.InternalError(c, err)
	}
	if fail := ctrl.requireCourseOwnership(c, quiz.QuizCourseID); fail != nil {
		return helper.FromFiberError(c, fail)
	}

	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.AnswerBankModel{}, "answer_bank_question_id = ?", question.QuestionID).Error; err != nil {
			return err
		}
		return tx.Delete(&question).Error
	})
	if err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Pertanyaan dihapus", nil)
}

/* ========================== shared ========================== */

// validateAnswerKey memastikan kunci jawaban masuk akal per tipe soal.
func validateAnswerKey(req dto.UpsertQuestionRequest) error {
	trueCount := 0
	for _, a := range req.Answers {
		if a.IsTrue {
			trueCount++
		}
	}
	switch req.Type {
	case model.QuestionTypeSingleChoice:
		if trueCount != 1 {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				"Soal single_choice wajib punya tepat satu jawaban benar")
		}
	case model.QuestionTypeMultipleChoice, model.QuestionTypeFillBlank:
		if trueCount == 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity,
				"Minimal satu jawaban harus ditandai benar")
		}
	}
	return nil
}

func (ctrl *QuizController) loadOwnedQuiz(c *fiber.Ctx) (*model.QuizModel, error) {
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID quiz tidak valid")
	}

	var quiz model.QuizModel
	if err := ctrl.DB.First(&quiz, "quiz_id = ?", quizID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Quiz tidak ditemukan")
		}
		return nil, err
	}
	if fail := ctrl.requireCourseOwnership(c, quiz.QuizCourseID); fail != nil {
		return nil, fail
	}
	return &quiz, nil
}

func (ctrl *QuizController) requireCourseOwnership(c *fiber.Ctx, courseID uuid.UUID) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}

	var course courseModel.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return err
	}

	role := helper.GetRoleFromToken(c)
	if !courseService.CanModifyCourse(role, userID, course) {
		return fiber.NewError(fiber.StatusForbidden, "Bukan course milik Anda")
	}
	return nil
}
