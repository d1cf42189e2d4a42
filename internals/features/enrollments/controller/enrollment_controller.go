package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	courseDTO "hairnerds_backend/internals/features/courses/courses/dto"
	courseModel "hairnerds_backend/internals/features/courses/courses/model"
	"hairnerds_backend/internals/features/enrollments/dto"
	"hairnerds_backend/internals/features/enrollments/model"
	"hairnerds_backend/internals/features/enrollments/service"
	helper "hairnerds_backend/internals/helpers"
)

type EnrollmentController struct {
	DB        *gorm.DB
	Service   *service.EnrollmentService
	Validator *validator.Validate
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{
		DB:        db,
		Service:   service.NewEnrollmentService(db),
		Validator: validator.New(),
	}
}

/* =========================================================
   POST /api/enrollments  (hanya course gratis; berbayar lewat payment)
========================================================= */

func (ctrl *EnrollmentController) EnrollFreeCourse(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}

	var req dto.EnrollCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var course courseModel.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", req.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}
	if course.CourseStatus != courseModel.CourseStatusPublished {
		return helper.Error(c, fiber.StatusUnprocessableEntity, "Course belum published")
	}
	if !course.IsFree() {
		return helper.Error(c, fiber.StatusUnprocessableEntity,
			"Course berbayar, silakan lewat pembayaran")
	}

	var enrollment *model.EnrollmentModel
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		enrollment, txErr = service.CreateEnrollmentTx(tx, userID, course.CourseID)
		return txErr
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Berhasil mendaftar course",
		dto.ToEnrollmentDTO(*enrollment))
}

/* =========================================================
   GET /api/enrollments/mine  (course saya + persentase progres)
========================================================= */

func (ctrl *EnrollmentController) GetMyEnrollments(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}

	p := helper.ResolvePaging(c, 10, 50)

	base := ctrl.DB.Model(&model.EnrollmentModel{}).
		Where("enrollment_user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.InternalError(c, err)
	}

	var enrollments []model.EnrollmentModel
	if err := base.
		Order("enrollment_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&enrollments).Error; err != nil {
		return helper.InternalError(c, err)
	}

	items := make([]dto.EnrollmentDTO, 0, len(enrollments))
	for _, e := range enrollments {
		item := dto.ToEnrollmentDTO(e)

		if pct, err := ctrl.Service.CompletionPercent(c.Context(), e.EnrollmentID); err == nil {
			item.CompletionPercent = &pct
		}

		var course courseModel.CourseModel
		if err := ctrl.DB.First(&course, "course_id = ?", e.EnrollmentCourseID).Error; err == nil {
			cd := courseDTO.ToCourseDTO(course)
			item.Course = &cd
		}
		items = append(items, item)
	}

	return helper.SuccessList(c, "Course saya",
		helper.Paginate(c.Path(), items, len(items), total, p))
}

/* =========================================================
   GET /api/enrollments/:id/progress
========================================================= */

func (ctrl *EnrollmentController) GetProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	enrollmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID enrollment tidak valid")
	}

	var enrollment model.EnrollmentModel
	if err := ctrl.DB.
		First(&enrollment, "enrollment_id = ? AND enrollment_user_id = ?", enrollmentID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Enrollment tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	var progress []model.ProgressModel
	if err := ctrl.DB.
		Where("progress_enrollment_id = ?", enrollmentID).
		Order("progress_created_at ASC").
		Find(&progress).Error; err != nil {
		return helper.InternalError(c, err)
	}

	pct, _ := ctrl.Service.CompletionPercent(c.Context(), enrollmentID)
	return helper.Success(c, "Progres belajar", fiber.Map{
		"enrollment":         dto.ToEnrollmentDTO(enrollment),
		"completion_percent": pct,
		"progress":           dto.ToProgressDTOs(progress),
	})
}

/* =========================================================
   POST /api/lessons/:id/complete
========================================================= */

func (ctrl *EnrollmentController) CompleteLesson(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID lesson tidak valid")
	}

	progress, err := ctrl.Service.CompleteLesson(c.Context(), userID, lessonID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Lesson selesai", dto.ToProgressDTO(*progress))
}

/* =========================================================
   POST /api/enrollments/:id/finish
========================================================= */

func (ctrl *EnrollmentController) FinishEnrollment(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	enrollmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID enrollment tidak valid")
	}

	enrollment, err := ctrl.Service.FinishEnrollment(c.Context(), userID, enrollmentID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.Success(c, "Course selesai, selamat! 🎉", dto.ToEnrollmentDTO(*enrollment))
}
