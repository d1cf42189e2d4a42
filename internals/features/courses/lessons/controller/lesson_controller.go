package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	courseModel "hairnerds_backend/internals/features/courses/courses/model"
	courseService "hairnerds_backend/internals/features/courses/courses/service"
	"hairnerds_backend/internals/features/courses/lessons/dto"
	"hairnerds_backend/internals/features/courses/lessons/model"
	sectionModel "hairnerds_backend/internals/features/courses/sections/model"
	helper "hairnerds_backend/internals/helpers"
	"hairnerds_backend/internals/helpers/storage"
)

type LessonController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{DB: db, Validator: validator.New()}
}

/* ========================== POST /api/lessons ========================== */

func (ctrl *LessonController) CreateLesson(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var section sectionModel.SectionModel
	if err := ctrl.DB.First(&section, "section_id = ?", req.SectionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Section tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}
	if fail := ctrl.requireCourseOwnership(c, section.SectionCourseID); fail != nil {
		return helper.FromFiberError(c, fail)
	}

	lesson := model.LessonModel{
		LessonSectionID: req.SectionID,
		LessonCourseID:  section.SectionCourseID,
		LessonTitle:     req.Title,
		LessonType:      req.Type,
		LessonContent:   req.Content,
		LessonIsFree:    req.IsFree,
	}
	if req.Sequence != nil {
		lesson.LessonSequence = *req.Sequence
	} else {
		var maxSeq int
		ctrl.DB.Model(&model.LessonModel{}).
			Where("lesson_section_id = ?", req.SectionID).
			Select("COALESCE(MAX(lesson_sequence), -1)").Scan(&maxSeq)
		lesson.LessonSequence = maxSeq + 1
	}

	if err := ctrl.DB.Create(&lesson).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Lesson dibuat", dto.ToLessonDTO(lesson))
}

/* ========================== GET /api/lessons/:id ========================== */

func (ctrl *LessonController) GetLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID lesson tidak valid")
	}

	var lesson model.LessonModel
	if err := ctrl.DB.First(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Lesson tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	out := dto.ToLessonDTO(lesson)

	var attachments []model.AttachmentModel
	if err := ctrl.DB.
		Where("attachment_lesson_id = ?", lessonID).
		Order("attachment_created_at ASC").
		Find(&attachments).Error; err == nil {
		out.Attachments = dto.ToAttachmentDTOs(attachments)
	}

	return helper.Success(c, "Detail lesson", out)
}

/* ========================== PUT /api/lessons/:id ========================== */

func (ctrl *LessonController) UpdateLesson(c *fiber.Ctx) error {
	lesson, fail := ctrl.loadOwnedLesson(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	var req dto.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.Title != nil {
		lesson.LessonTitle = *req.Title
	}
	if req.Type != nil {
		lesson.LessonType = *req.Type
	}
	if req.Content != nil {
		lesson.LessonContent = req.Content
	}
	if req.Sequence != nil {
		lesson.LessonSequence = *req.Sequence
	}
	if req.IsFree != nil {
		lesson.LessonIsFree = *req.IsFree
	}

	if err := ctrl.DB.Save(lesson).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Lesson diperbarui", dto.ToLessonDTO(*lesson))
}

/* ========================== DELETE /api/lessons/:id ========================== */

func (ctrl *LessonController) DeleteLesson(c *fiber.Ctx) error {
	lesson, fail := ctrl.loadOwnedLesson(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.AttachmentModel{}, "attachment_lesson_id = ?", lesson.LessonID).Error; err != nil {
			return err
		}
		return tx.Delete(lesson).Error
	})
	if err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Lesson dihapus", nil)
}

/* ========================== Attachments ========================== */

// POST /api/lessons/:id/attachments — JSON body berisi URL eksternal.
func (ctrl *LessonController) CreateExternalAttachment(c *fiber.Ctx) error {
	lesson, fail := ctrl.loadOwnedLesson(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	var req dto.CreateAttachmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// URL yang menunjuk bucket kita tetap diperlakukan sebagai stored
	isExternal := true
	if svc, err := storage.Default(); err == nil && svc.IsOwnURL(req.URL) {
		isExternal = false
	}

	att := model.AttachmentModel{
		AttachmentLessonID:   lesson.LessonID,
		AttachmentTitle:      req.Title,
		AttachmentType:       req.Type,
		AttachmentURL:        req.URL,
		AttachmentIsExternal: isExternal,
	}
	if err := ctrl.DB.Create(&att).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Attachment ditambahkan", dto.ToAttachmentDTO(att))
}

// POST /api/lessons/:id/attachments/upload — multipart file → OSS.
func (ctrl *LessonController) UploadAttachment(c *fiber.Ctx) error {
	lesson, fail := ctrl.loadOwnedLesson(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "File wajib diisi")
	}
	title := c.FormValue("title", fh.Filename)
	attType := c.FormValue("type", model.AttachmentTypeDocument)

	svc, err := storage.Default()
	if err != nil {
		return helper.InternalError(c, err)
	}
	url, _, err := svc.UploadFromFormFileToDir(c.Context(), storage.DirLessonAttachments, fh)
	if err != nil {
		log.Printf("[ERROR] upload attachment lesson %s gagal: %v", lesson.LessonID, err)
		return helper.Error(c, fiber.StatusBadGateway, "Gagal upload file")
	}

	att := model.AttachmentModel{
		AttachmentLessonID:   lesson.LessonID,
		AttachmentTitle:      title,
		AttachmentType:       attType,
		AttachmentURL:        url,
		AttachmentIsExternal: false,
	}
	if err := ctrl.DB.Create(&att).Error; err != nil {
		// DB gagal → bersihkan object yang telanjur terupload
		if delErr := svc.DeleteByPublicURL(c.Context(), url); delErr != nil {
			log.Printf("[WARN] gagal hapus object yatim %s: %v", url, delErr)
		}
		return helper.InternalError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Attachment terupload", dto.ToAttachmentDTO(att))
}

// DELETE /api/attachments/:id
func (ctrl *LessonController) DeleteAttachment(c *fiber.Ctx) error {
	attID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID attachment tidak valid")
	}

	var att model.AttachmentModel
	if err := ctrl.DB.First(&att, "attachment_id = ?", attID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Attachment tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	var lesson model.LessonModel
	if err := ctrl.DB.First(&lesson, "lesson_id = ?", att.AttachmentLessonID).Error; err != nil {
		return helper.InternalError(c, err)
	}
	if fail := ctrl.requireCourseOwnership(c, lesson.LessonCourseID); fail != nil {
		return helper.FromFiberError(c, fail)
	}

	if err := ctrl.DB.Delete(&att).Error; err != nil {
		return helper.InternalError(c, err)
	}

	// object stored dihapus best-effort setelah row-nya hilang
	if !att.AttachmentIsExternal {
		if svc, err := storage.Default(); err == nil {
			if err := svc.DeleteByPublicURL(c.Context(), att.AttachmentURL); err != nil {
				log.Printf("[WARN] gagal hapus object attachment: %v", err)
			}
		}
	}
	return helper.Success(c, "Attachment dihapus", nil)
}

/* ========================== shared ========================== */

func (ctrl *LessonController) loadOwnedLesson(c *fiber.Ctx) (*model.LessonModel, error) {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID lesson tidak valid")
	}

	var lesson model.LessonModel
	if err := ctrl.DB.First(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Lesson tidak ditemukan")
		}
		return nil, err
	}
	if fail := ctrl.requireCourseOwnership(c, lesson.LessonCourseID); fail != nil {
		return nil, fail
	}
	return &lesson, nil
}

func (ctrl *LessonController) requireCourseOwnership(c *fiber.Ctx, courseID uuid.UUID) error {
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
