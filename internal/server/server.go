package server

import (
	"errors"

	"tuneful/internal/config"
	"tuneful/internal/logger"
	"tuneful/internal/responses"
	"tuneful/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const defaultBodyLimit = 100 * 1024 * 1024

// NewApp builds the fiber app with the shared middleware stack
func NewApp(cfg config.MainConfig) *fiber.App {
	bodyLimit := defaultBodyLimit
	if cfg.Server.BodyLimit != "" {
		if size, err := utils.ParseSizeString(cfg.Server.BodyLimit); err == nil && size > 0 {
			bodyLimit = int(size)
		} else {
			logger.Warn("Ignoring invalid server.body_limit", logger.String("value", cfg.Server.BodyLimit))
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      "tuneful",
		BodyLimit:    bodyLimit,
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(compress.New())
	app.Use(healthcheck.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return uuid.New().String()
		},
	}))
	app.Use(fiberLogger.New())

	return app
}

// errorHandler renders unhandled errors, including unknown routes, as {"message": ...}
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(responses.Message{Message: fiberErr.Message})
	}

	logger.Error("Unhandled request error",
		logger.ErrorField(err),
		logger.String("method", c.Method()),
		logger.String("path", c.Path()),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(responses.Message{Message: "Internal Server Error"})
}
