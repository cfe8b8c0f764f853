package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"voc_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the app-wide middleware chain, in order.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
