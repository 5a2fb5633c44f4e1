package middleware

import (
	"fmt"
	"strings"

	"tuneful/internal/responses"

	"github.com/gofiber/fiber/v2"
)

// Accept rejects requests whose Accept header excludes mimetype with 406.
// A request without an Accept header accepts anything.
func Accept(mimetype string) fiber.Handler {
	message := fmt.Sprintf("Request must accept %s data", mimetype)
	return func(c *fiber.Ctx) error {
		if c.Accepts(mimetype) == "" {
			return c.Status(fiber.StatusNotAcceptable).JSON(responses.Message{Message: message})
		}
		return c.Next()
	}
}

// Require rejects requests whose Content-Type is not mimetype with 415.
// Parameters such as charset or boundary are ignored.
func Require(mimetype string) fiber.Handler {
	message := fmt.Sprintf("Request must contain %s data", mimetype)
	return func(c *fiber.Ctx) error {
		mediaType := strings.TrimSpace(strings.Split(c.Get(fiber.HeaderContentType), ";")[0])
		if !strings.EqualFold(mediaType, mimetype) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(responses.Message{Message: message})
		}
		return c.Next()
	}
}
