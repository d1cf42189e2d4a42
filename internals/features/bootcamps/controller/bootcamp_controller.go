package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hairnerds_backend/internals/features/bootcamps/dto"
	"hairnerds_backend/internals/features/bootcamps/model"
	userModel "hairnerds_backend/internals/features/users/user/model"
	helper "hairnerds_backend/internals/helpers"
	"hairnerds_backend/internals/helpers/storage"
)

type BootcampController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewBootcampController(db *gorm.DB) *BootcampController {
	return &BootcampController{DB: db, Validator: validator.New()}
}

/* ========================== POST /api/admin/bootcamps ========================== */

func (ctrl *BootcampController) CreateBootcamp(c *fiber.Ctx) error {
	var req dto.CreateBootcampRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	slug, err := helper.EnsureUniqueSlug(ctrl.DB, helper.Slugify(req.Title, 240), "bootcamps", "bootcamp_slug")
	if err != nil {
		return helper.InternalError(c, err)
	}

	bc := model.BootcampModel{
		BootcampTitle:       req.Title,
		BootcampSlug:        slug,
		BootcampDescription: req.Description,
		BootcampLocation:    req.Location,
		BootcampSeat:        req.Seat,
		BootcampStartAt:     req.StartAt,
		BootcampEndAt:       req.EndAt,
		BootcampStatus:      model.BootcampStatusDraft,
	}
	if req.PriceIDR != nil {
		bc.BootcampPriceIDR = *req.PriceIDR
	}

	if err := ctrl.DB.Create(&bc).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Bootcamp dibuat", dto.ToBootcampDTO(bc))
}

/* ========================== GET /api/bootcamps (publik) ========================== */

func (ctrl *BootcampController) GetBootcamps(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 10, 50)

	base := ctrl.DB.Model(&model.BootcampModel{}).
		Where("bootcamp_status = ?", model.BootcampStatusPublished)
	if q := c.Query("q"); q != "" {
		base = base.Where("bootcamp_title ILIKE ?", "%"+q+"%")
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.InternalError(c, err)
	}

	var bootcamps []model.BootcampModel
	if err := base.
		Order("bootcamp_start_at ASC NULLS LAST").
		Offset(p.Offset).Limit(p.Limit).
		Find(&bootcamps).Error; err != nil {
		return helper.InternalError(c, err)
	}

	items := dto.ToBootcampDTOs(bootcamps)
	return helper.SuccessList(c, "Daftar bootcamp",
		helper.Paginate(c.Path(), items, len(items), total, p))
}

/* ========================== GET /api/bootcamps/:slug ========================== */

func (ctrl *BootcampController) GetBootcampBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var bc model.BootcampModel
	if err := ctrl.DB.First(&bc, "bootcamp_slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Bootcamp tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Detail bootcamp", dto.ToBootcampDTO(bc))
}

/* ========================== PUT /api/admin/bootcamps/:id ========================== */

func (ctrl *BootcampController) UpdateBootcamp(c *fiber.Ctx) error {
	bc, fail := ctrl.loadBootcamp(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	var req dto.UpdateBootcampRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.Title != nil && *req.Title != bc.BootcampTitle {
		bc.BootcampTitle = *req.Title
		slug, err := helper.EnsureUniqueSlug(ctrl.DB, helper.Slugify(*req.Title, 240), "bootcamps", "bootcamp_slug")
		if err != nil {
			return helper.InternalError(c, err)
		}
		bc.BootcampSlug = slug
	}
	if req.Description != nil {
		bc.BootcampDescription = *req.Description
	}
	if req.Location != nil {
		bc.BootcampLocation = *req.Location
	}
	if req.PriceIDR != nil {
		bc.BootcampPriceIDR = *req.PriceIDR
	}
	if req.Seat != nil {
		if *req.Seat < bc.BootcampSeatBooked {
			return helper.Error(c, fiber.StatusUnprocessableEntity,
				"Jumlah seat tidak boleh kurang dari peserta yang sudah terdaftar")
		}
		bc.BootcampSeat = *req.Seat
	}
	if req.StartAt != nil {
		bc.BootcampStartAt = req.StartAt
	}
	if req.EndAt != nil {
		bc.BootcampEndAt = req.EndAt
	}

	if err := ctrl.DB.Save(bc).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Bootcamp diperbarui", dto.ToBootcampDTO(*bc))
}

/* ========================== Status ========================== */

// POST /api/admin/bootcamps/:id/publish
func (ctrl *BootcampController) PublishBootcamp(c *fiber.Ctx) error {
	bc, fail := ctrl.loadBootcamp(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}
	if bc.BootcampStatus != model.BootcampStatusDraft {
		return helper.Error(c, fiber.StatusUnprocessableEntity, "Bootcamp tidak dalam status draft")
	}

	bc.BootcampStatus = model.BootcampStatusPublished
	if err := ctrl.DB.Save(bc).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Bootcamp dipublikasikan", dto.ToBootcampDTO(*bc))
}

// POST /api/admin/bootcamps/:id/finish
func (ctrl *BootcampController) FinishBootcamp(c *fiber.Ctx) error {
	bc, fail := ctrl.loadBootcamp(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}
	if bc.BootcampStatus != model.BootcampStatusPublished {
		return helper.Error(c, fiber.StatusUnprocessableEntity, "Bootcamp tidak dalam status published")
	}

	bc.BootcampStatus = model.BootcampStatusFinished
	if err := ctrl.DB.Save(bc).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Bootcamp selesai", dto.ToBootcampDTO(*bc))
}

/* ========================== DELETE /api/admin/bootcamps/:id ========================== */

func (ctrl *BootcampController) DeleteBootcamp(c *fiber.Ctx) error {
	bc, fail := ctrl.loadBootcamp(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}
	if bc.BootcampSeatBooked > 0 {
		return helper.Error(c, fiber.StatusUnprocessableEntity,
			"Bootcamp dengan peserta terdaftar tidak bisa dihapus")
	}

	if err := ctrl.DB.Delete(bc).Error; err != nil {
		return helper.InternalError(c, err)
	}
	return helper.Success(c, "Bootcamp dihapus", nil)
}

/* ========================== POST /api/admin/bootcamps/:id/thumbnail ========================== */

func (ctrl *BootcampController) UploadThumbnail(c *fiber.Ctx) error {
	bc, fail := ctrl.loadBootcamp(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	fh, err := c.FormFile("thumbnail")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "File thumbnail wajib diisi")
	}

	svc, err := storage.Default()
	if err != nil {
		return helper.InternalError(c, err)
	}
	url, _, err := svc.UploadFromFormFileToDir(c.Context(), storage.DirBootcampThumbs, fh)
	if err != nil {
		log.Printf("[ERROR] upload thumbnail bootcamp %s gagal: %v", bc.BootcampID, err)
		return helper.Error(c, fiber.StatusBadGateway, "Gagal upload thumbnail")
	}

	old := bc.BootcampThumbnail
	bc.BootcampThumbnail = &url
	if err := ctrl.DB.Save(bc).Error; err != nil {
		return helper.InternalError(c, err)
	}
	if old != nil && svc.IsOwnURL(*old) {
		if err := svc.DeleteByPublicURL(c.Context(), *old); err != nil {
			log.Printf("[WARN] gagal hapus thumbnail lama: %v", err)
		}
	}
	return helper.Success(c, "Thumbnail diperbarui", dto.ToBootcampDTO(*bc))
}

/* ========================== GET /api/admin/bootcamps/:id/participants ========================== */

func (ctrl *BootcampController) GetParticipants(c *fiber.Ctx) error {
	bc, fail := ctrl.loadBootcamp(c)
	if fail != nil {
		return helper.FromFiberError(c, fail)
	}

	p := helper.ResolvePaging(c, 10, 100)

	base := ctrl.DB.Model(&model.BootcampParticipantModel{}).
		Where("bootcamp_participant_bootcamp_id = ?", bc.BootcampID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.InternalError(c, err)
	}

	var participants []model.BootcampParticipantModel
	if err := base.
		Order("bootcamp_participant_created_at ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&participants).Error; err != nil {
		return helper.InternalError(c, err)
	}

	items := make([]dto.ParticipantDTO, 0, len(participants))
	for _, pt := range participants {
		item := dto.ParticipantDTO{
			ParticipantID: pt.BootcampParticipantID,
			BootcampID:    pt.BootcampParticipantBootcampID,
			UserID:        pt.BootcampParticipantUserID,
			PaymentID:     pt.BootcampParticipantPaymentID,
			JoinedAt:      pt.BootcampParticipantCreatedAt,
		}
		var user userModel.UserModel
		if err := ctrl.DB.First(&user, "user_id = ?", pt.BootcampParticipantUserID).Error; err == nil {
			item.UserName = user.UserName
			item.UserEmail = user.UserEmail
		}
		items = append(items, item)
	}

	return helper.SuccessList(c, "Peserta bootcamp",
		helper.Paginate(c.Path(), items, len(items), total, p))
}

/* ========================== shared ========================== */

func (ctrl *BootcampController) loadBootcamp(c *fiber.Ctx) (*model.BootcampModel, error) {
	bootcampID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "ID bootcamp tidak valid")
	}

	var bc model.BootcampModel
	if err := ctrl.DB.First(&bc, "bootcamp_id = ?", bootcampID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Bootcamp tidak ditemukan")
		}
		return nil, err
	}
	return &bc, nil
}
