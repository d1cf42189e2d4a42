package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hairnerds_backend/internals/features/home/faqs/dto"
	"hairnerds_backend/internals/features/home/faqs/model"
	helper "hairnerds_backend/internals/helpers"
)

type FaqController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewFaqController(db *gorm.DB) *FaqController {
	return &FaqController{DB: db, Validator: validator.New()}
}

// GET /api/faqs (publik)
func (ctrl *FaqController) GetFaqs(c *fiber.Ctx) error {
	var faqs []model.FaqModel
	if err := ctrl.DB.Order("faq_sequence ASC, faq_created_at ASC").Find(&faqs).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Daftar FAQ", dto.ToFaqDTOs(faqs))
}

// POST /api/admin/faqs
func (ctrl *FaqController) CreateFaq(c *fiber.Ctx) error {
	var req dto.CreateFaqRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	faq := model.FaqModel{
		FaqQuestion: req.Question,
		FaqAnswer:   req.Answer,
	}
	if req.Sequence != nil {
		faq.FaqSequence = *req.Sequence
	} else {
		var maxSeq int
		ctrl.DB.Model(&model.FaqModel{}).
			Select("COALESCE(MAX(faq_sequence), -1)").Scan(&maxSeq)
		faq.FaqSequence = maxSeq + 1
	}

	if err := ctrl.DB.Create(&faq).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "FAQ dibuat", dto.ToFaqDTO(faq))
}

// PUT /api/admin/faqs/:id
func (ctrl *FaqController) UpdateFaq(c *fiber.Ctx) error {
	faqID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID FAQ tidak valid")
	}

	var faq model.FaqModel
	if err := ctrl.DB.First(&faq, "faq_id = ?", faqID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "FAQ tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	var req dto.UpdateFaqRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.Question != nil {
		faq.FaqQuestion = *req.Question
	}
	if req.Answer != nil {
		faq.FaqAnswer = *req.Answer
	}
	if req.Sequence != nil {
		faq.FaqSequence = *req.Sequence
	}

	if err := ctrl.DB.Save(&faq).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "FAQ diperbarui", dto.ToFaqDTO(faq))
}

// DELETE /api/admin/faqs/:id
func (ctrl *FaqController) DeleteFaq(c *fiber.Ctx) error {
	faqID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID FAQ tidak valid")
	}

	res := ctrl.DB.Delete(&model.FaqModel{}, "faq_id = ?", faqID)
	if res.Error != nil {
		return helper.InternalError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "FAQ tidak ditemukan")
	}
	return helper.Success(c, "FAQ dihapus", nil)
}
