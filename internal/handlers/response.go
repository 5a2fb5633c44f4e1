package handlers

import (
	"tuneful/internal/logger"
	"tuneful/internal/responses"

	"github.com/gofiber/fiber/v2"
	"github.com/kerimovok/go-pkg-utils/httpx"
)

func sendMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(responses.Message{Message: message})
}

// sendInternalError logs err and answers 500
func sendInternalError(c *fiber.Ctx, message string, err error) error {
	logger.Error(message,
		logger.ErrorField(err),
		logger.String("method", c.Method()),
		logger.String("path", c.Path()),
	)
	response := httpx.InternalServerError(message, err)
	return httpx.SendResponse(c, response)
}
