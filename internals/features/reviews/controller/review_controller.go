package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	enrollModel "hairnerds_backend/internals/features/enrollments/model"
	"hairnerds_backend/internals/features/reviews/dto"
	"hairnerds_backend/internals/features/reviews/model"
	userModel "hairnerds_backend/internals/features/users/user/model"
	helper "hairnerds_backend/internals/helpers"
)

type ReviewController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db, Validator: validator.New()}
}

/* =========================================================
   POST /api/reviews  (upsert: satu review per user per course)
   Hanya peserta yang terdaftar yang boleh mengulas.
========================================================= */

func (ctrl *ReviewController) UpsertReview(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}

	var req dto.UpsertReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var enrolled int64
	if err := ctrl.DB.Model(&enrollModel.EnrollmentModel{}).
		Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, req.CourseID).
		Count(&enrolled).Error; err != nil {
		return helper.InternalError(c, err)
	}
	if enrolled == 0 {
		return helper.Error(c, fiber.StatusForbidden, "Hanya peserta course yang bisa memberi ulasan")
	}

	var review model.ReviewModel
	err = ctrl.DB.
		First(&review, "review_user_id = ? AND review_course_id = ?", userID, req.CourseID).Error
	switch {
	case err == nil:
		review.ReviewRating = req.Rating
		review.ReviewText = req.Text
		if err := ctrl.DB.Save(&review).Error; err != nil {
			return helper.InternalError(c, err)
		}
		return helper.Success(c, "Ulasan diperbarui", dto.ToReviewDTO(review))

	case errors.Is(err, gorm.ErrRecordNotFound):
		review = model.ReviewModel{
			ReviewUserID:   userID,
			ReviewCourseID: req.CourseID,
			ReviewRating:   req.Rating,
			ReviewText:     req.Text,
		}
		if err := ctrl.DB.Create(&review).Error; err != nil {
			return helper.InternalError(c, err)
		}
		return helper.SuccessWithCode(c, fiber.StatusCreated, "Ulasan ditambahkan", dto.ToReviewDTO(review))

	default:
		return helper.InternalError(c, err)
	}
}

/* =========================================================
   GET /api/courses/:id/reviews
========================================================= */

func (ctrl *ReviewController) GetCourseReviews(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID course tidak valid")
	}

	p := helper.ResolvePaging(c, 10, 50)

	base := ctrl.DB.Model(&model.ReviewModel{}).
		Where("review_course_id = ?", courseID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.InternalError(c, err)
	}

	var reviews []model.ReviewModel
	if err := base.
		Order("review_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&reviews).Error; err != nil {
		return helper.InternalError(c, err)
	}

	items := make([]dto.ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		item := dto.ToReviewDTO(r)
		var user userModel.UserModel
		if err := ctrl.DB.First(&user, "user_id = ?", r.ReviewUserID).Error; err == nil {
			item.UserName = user.UserName
		}
		items = append(items, item)
	}

	var avg *float64
	ctrl.DB.Model(&model.ReviewModel{}).
		Where("review_course_id = ?", courseID).
		Select("AVG(review_rating)").Scan(&avg)

	resp := helper.Paginate(c.Path(), items, len(items), total, p)
	return helper.Success(c, "Ulasan course", fiber.Map{
		"average_rating": avg,
		"data":           resp.Data,
		"links":          resp.Links,
		"meta":           resp.Meta,
	})
}

/* =========================================================
   DELETE /api/reviews/:id  (pemilik atau admin)
========================================================= */

func (ctrl *ReviewController) DeleteReview(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID ulasan tidak valid")
	}

	var review model.ReviewModel
	if err := ctrl.DB.First(&review, "review_id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Ulasan tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	role := helper.GetRoleFromToken(c)
	if review.ReviewUserID != userID && role != constants.RoleAdmin {
		return helper.Error(c, fiber.StatusForbidden, "Bukan ulasan milik Anda")
	}

	if err := ctrl.DB.Delete(&review).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Ulasan dihapus", nil)
}
