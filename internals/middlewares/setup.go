package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMiddleware "schoolku_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain in order.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMiddleware.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
