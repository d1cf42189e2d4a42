package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hairnerds_backend/internals/constants"
	paymentController "hairnerds_backend/internals/features/finance/payments/controller"
	authMiddleware "hairnerds_backend/internals/middlewares/auth"
)

func FinanceRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db)

	// webhook gateway — tanpa auth, diverifikasi lewat signature
	app.Post("/api/payments/callback", ctrl.MidtransWebhook)

	authed := app.Group("/api/payments", authMiddleware.AuthMiddleware(db))
	authed.Post("/", ctrl.CreatePayment)
	authed.Get("/", ctrl.GetMyPayments)
	authed.Get("/:id/status", ctrl.GetPaymentStatus)

	admin := app.Group("/api/admin/payments",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("laporan pembayaran"), constants.RoleAdmin),
	)
	admin.Get("/", ctrl.GetAllPayments)
}
