package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	courseModel "hairnerds_backend/internals/features/courses/courses/model"
	courseService "hairnerds_backend/internals/features/courses/courses/service"
	"hairnerds_backend/internals/features/courses/sections/dto"
	"hairnerds_backend/internals/features/courses/sections/model"
	helper "hairnerds_backend/internals/helpers"
)

type SectionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSectionController(db *gorm.DB) *SectionController {
	return &SectionController{DB: db, Validator: validator.New()}
}

/* ========================== POST /api/sections ========================== */

func (ctrl *SectionController) CreateSection(c *fiber.Ctx) error {
	var req dto.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if fail := ctrl.requireCourseOwnership(c, req.CourseID); fail != nil {
		return helper.FromFiberError(c, fail)
	}

	section := model.SectionModel{
		SectionCourseID: req.CourseID,
		SectionTitle:    req.Title,
	}
	if req.Sequence != nil {
		section.SectionSequence = *req.Sequence
	} else {
		// default: taruh di urutan paling belakang
		var maxSeq int
		ctrl.DB.Model(&model.SectionModel{}).
			Where("section_course_id = ?", req.CourseID).
			Select("COALESCE(MAX(section_sequence), -1)").Scan(&maxSeq)
		section.SectionSequence = maxSeq + 1
	}

	if err := ctrl.DB.Create(&section).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Section dibuat", dto.ToSectionDTO(section))
}

/* ========================== GET /api/courses/:id/sections ========================== */

func (ctrl *SectionController) GetSectionsByCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID course tidak valid")
	}

	var sections []model.SectionModel
	if err := ctrl.DB.
		Where("section_course_id = ?", courseID).
		Order("section_sequence ASC").
		Find(&sections).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Daftar section", dto.ToSectionDTOs(sections))
}

/* ========================== PUT /api/sections/:id ========================== */

func (ctrl *SectionController) UpdateSection(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID section tidak valid")
	}

	var section model.SectionModel
	if err := ctrl.DB.First(&section, "section_id = ?", sectionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Section tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}
	if fail := ctrl.requireCourseOwnership(c, section.SectionCourseID); fail != nil {
		return helper.FromFiberError(c, fail)
	}

	var req dto.UpdateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.Title != nil {
		section.SectionTitle = *req.Title
	}
	if req.Sequence != nil {
		section.SectionSequence = *req.Sequence
	}

	if err := ctrl.DB.Save(&section).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Section diperbarui", dto.ToSectionDTO(section))
}

/* ========================== DELETE /api/sections/:id ========================== */

func (ctrl *SectionController) DeleteSection(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID section tidak valid")
	}

	var section model.SectionModel
	if err := ctrl.DB.First(&section, "section_id = ?", sectionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Section tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}
	if fail := ctrl.requireCourseOwnership(c, section.SectionCourseID); fail != nil {
		return helper.FromFiberError(c, fail)
	}

	if err := ctrl.DB.Delete(&section).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Section dihapus", nil)
}

/* ========================== PUT /api/sections/sequences ========================== */

// Reorder massal: semua baris diupdate dalam SATU transaksi — kalau ada
// section_id yang bukan milik course itu, seluruh reorder dibatalkan.
func (ctrl *SectionController) UpdateSequences(c *fiber.Ctx) error {
	var req dto.UpdateSequencesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if fail := ctrl.requireCourseOwnership(c, req.CourseID); fail != nil {
		return helper.FromFiberError(c, fail)
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Sequences {
			res := tx.Model(&model.SectionModel{}).
				Where("section_id = ? AND section_course_id = ?", item.SectionID, req.CourseID).
				Update("section_sequence", item.Sequence)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusUnprocessableEntity,
					"Section "+item.SectionID.String()+" bukan bagian dari course ini")
			}
		}
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var sections []model.SectionModel
	if err := ctrl.DB.
		Where("section_course_id = ?", req.CourseID).
		Order("section_sequence ASC").
		Find(&sections).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Urutan section diperbarui", dto.ToSectionDTOs(sections))
}

/* ========================== shared ========================== */

// requireCourseOwnership tidak menulis response — ia mengembalikan *fiber.Error
// supaya caller bisa konversi via helper.FromFiberError (kalau langsung menulis
// response di sini, return value-nya nil dan cek `fail != nil` tidak pernah jalan).
func (ctrl *SectionController) requireCourseOwnership(c *fiber.Ctx, courseID uuid.UUID) error {
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
