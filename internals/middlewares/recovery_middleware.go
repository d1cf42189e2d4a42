package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"hairnerds_backend/internals/configs"
)

// RecoveryMiddleware menangkap panic di handler supaya server tidak mati.
// Stack trace hanya dicetak saat APP_DEBUG aktif.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: configs.AppDebug,
	})
}
