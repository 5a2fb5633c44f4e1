package handlers

import (
	"errors"
	"fmt"
	"net/url"

	"tuneful/internal/responses"
	"tuneful/internal/services"
	"tuneful/internal/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FileHandler handles file-related HTTP requests
type FileHandler struct {
	db          *gorm.DB
	fileService *services.FileService
	serializer  responses.Serializer
}

// NewFileHandler creates a new file handler
func NewFileHandler(db *gorm.DB, fileService *services.FileService, serializer responses.Serializer) *FileHandler {
	return &FileHandler{
		db:          db,
		fileService: fileService,
		serializer:  serializer,
	}
}

// UploadFile handles POST /api/files
func (h *FileHandler) UploadFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil || file.Filename == "" {
		return sendMessage(c, fiber.StatusUnprocessableEntity, "Could not find file data")
	}

	if err := h.fileService.ValidateFile(file); err != nil {
		var rejected *services.FileRejectedError
		if errors.As(err, &rejected) {
			return sendMessage(c, fiber.StatusUnprocessableEntity, rejected.Reason)
		}
		return sendInternalError(c, "Failed to validate file", err)
	}

	record, err := h.fileService.Upload(c.UserContext(), h.db, file)
	if err != nil {
		return sendInternalError(c, "Failed to process file upload", err)
	}

	return c.Status(fiber.StatusCreated).JSON(h.serializer.File(*record))
}

// ServeFile handles GET /uploads/:name by streaming the stored bytes
func (h *FileHandler) ServeFile(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return sendMessage(c, fiber.StatusNotFound, fmt.Sprintf("Could not find file %s", c.Params("name")))
	}

	object, err := h.fileService.Open(c.UserContext(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return sendMessage(c, fiber.StatusNotFound, fmt.Sprintf("Could not find file %s", name))
		}
		return sendInternalError(c, "Failed to read file", err)
	}

	c.Set(fiber.HeaderContentType, object.ContentType)
	return c.SendStream(object, int(object.Size))
}
