package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	quizModel "hairnerds_backend/internals/features/quizzes/quiz/model"
	"hairnerds_backend/internals/features/quizzes/results/dto"
	"hairnerds_backend/internals/features/quizzes/results/model"
	"hairnerds_backend/internals/features/quizzes/results/service"
	helper "hairnerds_backend/internals/helpers"
)

type QuizResultController struct {
	DB        *gorm.DB
	Service   *service.QuizResultService
	Validator *validator.Validate
}

func NewQuizResultController(db *gorm.DB, svc *service.QuizResultService) *QuizResultController {
	return &QuizResultController{DB: db, Service: svc, Validator: validator.New()}
}

/* =========================================================
   POST /api/quizzes/:id/start
========================================================= */

func (ctrl *QuizResultController) StartQuiz(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID quiz tidak valid")
	}

	res, qz, err := ctrl.Service.Start(c.Context(), userID, quizID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Quiz dimulai", dto.ToQuizResultDTO(*res, *qz))
}

/* =========================================================
   POST /api/quiz-results/:id/submit
========================================================= */

func (ctrl *QuizResultController) SubmitQuiz(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	resultID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID attempt tidak valid")
	}

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res, qz, err := ctrl.Service.Submit(c.Context(), userID, resultID, req)
	switch {
	case err == nil:
		return helper.Success(c, "Jawaban terkirim", dto.ToQuizResultDTO(*res, *qz))
	case errors.Is(err, service.ErrExpiredForceSubmitted):
		// waktu habis: jawaban client dibuang, hasil auto-submit dikembalikan
		// dalam envelope error (status 422)
		return helper.ErrorWithData(c, fiber.StatusUnprocessableEntity,
			"Waktu habis, attempt sudah disubmit otomatis", dto.ToQuizResultDTO(*res, *qz))
	case errors.Is(err, service.ErrAlreadySubmitted):
		return helper.Error(c, fiber.StatusUnprocessableEntity, "Attempt ini sudah disubmit")
	default:
		return helper.FromFiberError(c, err)
	}
}

/* =========================================================
   GET /api/quiz-results/:id
========================================================= */

func (ctrl *QuizResultController) GetQuizResult(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	resultID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID attempt tidak valid")
	}

	var res model.QuizResultModel
	if err := ctrl.DB.
		First(&res, "quiz_result_id = ? AND quiz_result_user_id = ?", resultID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Attempt tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	var qz quizModel.QuizModel
	if err := ctrl.DB.First(&qz, "quiz_id = ?", res.QuizResultQuizID).Error; err != nil {
		return helper.InternalError(c, err)
	}

	// lazy expiry: attempt aktif yang sudah lewat waktunya di-finalkan saat dibaca
	if !res.QuizResultIsSubmitted && res.IsExpired(qz.QuizDurationSeconds, ctrl.Service.Now()) {
		if updated, err := ctrl.Service.AutoSubmit(c.Context(), res.QuizResultID); err == nil {
			res = *updated
		}
	}

	return helper.Success(c, "Detail hasil quiz", dto.ToQuizResultDTO(res, qz))
}

/* =========================================================
   GET /api/quizzes/:id/results  (riwayat attempt user utk satu quiz)
========================================================= */

func (ctrl *QuizResultController) GetMyQuizResults(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID quiz tidak valid")
	}

	var qz quizModel.QuizModel
	if err := ctrl.DB.First(&qz, "quiz_id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Quiz tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	var results []model.QuizResultModel
	if err := ctrl.DB.
		Where("quiz_result_user_id = ? AND quiz_result_quiz_id = ?", userID, quizID).
		Order("quiz_result_created_at DESC").
		Find(&results).Error; err != nil {
		return helper.InternalError(c, err)
	}

	items := make([]dto.QuizResultDTO, 0, len(results))
	for _, r := range results {
		items = append(items, dto.ToQuizResultDTO(r, qz))
	}
	return helper.Success(c, "Riwayat attempt quiz", items)
}
