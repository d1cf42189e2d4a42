package controller

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"hairnerds_backend/internals/configs"
	"hairnerds_backend/internals/constants"
	bootcampModel "hairnerds_backend/internals/features/bootcamps/model"
	courseModel "hairnerds_backend/internals/features/courses/courses/model"
	"hairnerds_backend/internals/features/finance/payments/dto"
	"hairnerds_backend/internals/features/finance/payments/model"
	"hairnerds_backend/internals/features/finance/payments/service"
	userModel "hairnerds_backend/internals/features/users/user/model"
	helper "hairnerds_backend/internals/helpers"
)

type PaymentController struct {
	DB         *gorm.DB
	Reconciler *service.PaymentReconciler
	Validator  *validator.Validate
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:         db,
		Reconciler: service.NewPaymentReconciler(db),
		Validator:  validator.New(),
	}
}

/* =========================================================
   POST /api/payments
   Buat payment pending + Snap token untuk course/bootcamp berbayar.
========================================================= */

func (ctrl *PaymentController) CreatePayment(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// Resolve payable → amount + nama item
	amount, itemName, err := ctrl.resolvePayable(req.PayableType, req.PayableID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if amount <= 0 {
		return helper.Error(c, fiber.StatusUnprocessableEntity, "Item ini gratis, tidak perlu pembayaran")
	}

	// Duplicate pending guard: satu pending per user+payable
	var existing model.PaymentModel
	err = ctrl.DB.
		Where("payment_user_id = ? AND payment_payable_type = ? AND payment_payable_id = ? AND payment_status = ?",
			userID, req.PayableType, req.PayableID, model.PaymentStatusPending).
		First(&existing).Error
	if err == nil {
		return helper.Success(c, "Masih ada pembayaran pending untuk item ini", dto.ToPaymentDTO(existing))
	}
	if err != gorm.ErrRecordNotFound {
		return helper.InternalError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.InternalError(c, err)
	}

	p := model.PaymentModel{
		PaymentUserID:      userID,
		PaymentPayableType: req.PayableType,
		PaymentPayableID:   req.PayableID,
		PaymentOrderID:     fmt.Sprintf("HAIR-%s", uuid.New().String()),
		PaymentAmountIDR:   amount,
		PaymentStatus:      model.PaymentStatusPending,
	}
	if err := ctrl.DB.Create(&p).Error; err != nil {
		return helper.InternalError(c, err)
	}

	token, redirectURL, err := service.GenerateSnapToken(p, itemName, service.CustomerInput{
		Name:  user.UserName,
		Email: user.UserEmail,
	})
	if err != nil {
		log.Printf("[ERROR] gagal generate snap token utk %s: %v", p.PaymentOrderID, err)
		return helper.Error(c, fiber.StatusBadGateway, "Gagal membuat transaksi di payment gateway")
	}

	p.PaymentSnapToken = &token
	p.PaymentCheckoutURL = &redirectURL
	if err := ctrl.DB.Save(&p).Error; err != nil {
		return helper.InternalError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pembayaran berhasil dibuat", dto.ToPaymentDTO(p))
}

// resolvePayable memvalidasi target pembayaran dan mengembalikan harga + nama item.
func (ctrl *PaymentController) resolvePayable(payableType string, payableID uuid.UUID) (int, string, error) {
	switch payableType {
	case model.PayableTypeCourse:
		var course courseModel.CourseModel
		if err := ctrl.DB.First(&course, "course_id = ?", payableID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return 0, "", fiber.NewError(fiber.StatusNotFound, "Course tidak ditemukan")
			}
			return 0, "", err
		}
		if course.CourseStatus != courseModel.CourseStatusPublished {
			return 0, "", fiber.NewError(fiber.StatusUnprocessableEntity, "Course belum published")
		}
		return course.CoursePriceIDR, course.CourseTitle, nil

	case model.PayableTypeBootcamp:
		var bc bootcampModel.BootcampModel
		if err := ctrl.DB.First(&bc, "bootcamp_id = ?", payableID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return 0, "", fiber.NewError(fiber.StatusNotFound, "Bootcamp tidak ditemukan")
			}
			return 0, "", err
		}
		if bc.BootcampStatus != bootcampModel.BootcampStatusPublished {
			return 0, "", fiber.NewError(fiber.StatusUnprocessableEntity, "Bootcamp belum published")
		}
		if bc.SeatsLeft() <= 0 {
			return 0, "", fiber.NewError(fiber.StatusUnprocessableEntity, "Seat bootcamp sudah penuh")
		}
		return bc.BootcampPriceIDR, bc.BootcampTitle, nil
	}
	return 0, "", fiber.NewError(fiber.StatusUnprocessableEntity, "payable_type tidak dikenal")
}

/* =========================================================
   POST /api/payments/callback (tanpa auth)
========================================================= */

func (ctrl *PaymentController) MidtransWebhook(c *fiber.Ctx) error {
	var notif service.CallbackNotification
	if err := c.BodyParser(&notif); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	if !service.VerifySignature(notif, configs.MidtransServerKey) {
		log.Printf("[WARN] signature mismatch utk callback order_id=%s", notif.OrderID)
		return helper.Error(c, fiber.StatusForbidden, "Invalid signature")
	}

	if _, err := ctrl.Reconciler.Apply(c.Context(), notif); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.Error(c, fe.Code, fe.Message)
		}
		return helper.InternalError(c, err)
	}

	// gateway hanya butuh 200; body envelope kita tetap konsisten
	return helper.Success(c, "ok", fiber.Map{"status": "ok"})
}

/* =========================================================
   GET /api/payments/:id/status
   Poll status: kalau masih pending, cek langsung ke gateway
   lalu reconcile dengan mapping yang sama seperti webhook.
========================================================= */

func (ctrl *PaymentController) GetPaymentStatus(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID payment tidak valid")
	}

	var p model.PaymentModel
	if err := ctrl.DB.First(&p, "payment_id = ? AND payment_user_id = ?", paymentID, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Payment tidak ditemukan")
		}
		return helper.InternalError(c, err)
	}

	if !p.IsTerminal() {
		notif, err := service.CheckGatewayStatus(p.PaymentOrderID)
		if err != nil {
			log.Printf("[WARN] gagal cek status gateway utk %s: %v", p.PaymentOrderID, err)
		} else if updated, err := ctrl.Reconciler.Apply(c.Context(), *notif); err != nil {
			log.Printf("[WARN] gagal reconcile status gateway utk %s: %v", p.PaymentOrderID, err)
		} else {
			p = *updated
		}
	}

	return helper.Success(c, "Status pembayaran", dto.ToPaymentDTO(p))
}

/* =========================================================
   GET /api/payments (riwayat milik user)
   GET /api/admin/payments (semua, admin)
========================================================= */

func (ctrl *PaymentController) GetMyPayments(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrUnauthorized)
	}

	p := helper.ResolvePaging(c, 10, 50)

	var total int64
	base := ctrl.DB.Model(&model.PaymentModel{}).Where("payment_user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return helper.InternalError(c, err)
	}

	var payments []model.PaymentModel
	if err := base.
		Order("payment_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&payments).Error; err != nil {
		return helper.InternalError(c, err)
	}

	items := dto.ToPaymentDTOs(payments)
	return helper.SuccessList(c, "Riwayat pembayaran",
		helper.Paginate(c.Path(), items, len(items), total, p))
}

func (ctrl *PaymentController) GetAllPayments(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 10, 100)

	base := ctrl.DB.Model(&model.PaymentModel{})
	if status := c.Query("status"); status != "" {
		base = base.Where("payment_status = ?", status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.InternalError(c, err)
	}

	var payments []model.PaymentModel
	if err := base.
		Order("payment_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&payments).Error; err != nil {
		return helper.InternalError(c, err)
	}

	items := dto.ToPaymentDTOs(payments)
	return helper.SuccessList(c, "Semua pembayaran",
		helper.Paginate(c.Path(), items, len(items), total, p))
}
