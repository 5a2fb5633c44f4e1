package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"tuneful/internal/constants"
	"tuneful/internal/requests"
	"tuneful/internal/responses"
	"tuneful/internal/schema"
	"tuneful/internal/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SongHandler handles song-related HTTP requests
type SongHandler struct {
	db          *gorm.DB
	songService *services.SongService
	serializer  responses.Serializer
}

// NewSongHandler creates a new song handler
func NewSongHandler(db *gorm.DB, songService *services.SongService, serializer responses.Serializer) *SongHandler {
	return &SongHandler{
		db:          db,
		songService: songService,
		serializer:  serializer,
	}
}

// ListSongs handles GET /api/songs
func (h *SongHandler) ListSongs(c *fiber.Ctx) error {
	songs, err := h.songService.List(c.UserContext(), h.db)
	if err != nil {
		return sendInternalError(c, "Failed to fetch songs", err)
	}

	return c.JSON(h.serializer.Songs(songs))
}

// CreateSong handles POST /api/songs
func (h *SongHandler) CreateSong(c *fiber.Ctx) error {
	body := c.Body()

	payload, err := schema.DecodeBytes(body)
	if err != nil {
		return sendMessage(c, fiber.StatusBadRequest, "Could not decode JSON body")
	}

	if err := constants.SongSchema.Validate(payload); err != nil {
		var invalid *schema.ValidationError
		if errors.As(err, &invalid) {
			return sendMessage(c, fiber.StatusUnprocessableEntity, invalid.Message)
		}
		return sendMessage(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var input requests.CreateSongRequest
	if err := json.Unmarshal(body, &input); err != nil {
		return sendMessage(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	song, err := h.songService.Create(c.UserContext(), h.db, input)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) && input.File.ID != nil {
			return sendMessage(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Could not find file with id %d", *input.File.ID))
		}
		return sendInternalError(c, "Failed to create song", err)
	}

	c.Location(fmt.Sprintf("/api/songs/%d", song.ID))
	return c.Status(fiber.StatusCreated).JSON(h.serializer.Song(*song))
}

// GetSong handles GET /api/songs/:id
func (h *SongHandler) GetSong(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return songNotFound(c, c.Params("id"))
	}

	song, err := h.songService.Get(c.UserContext(), h.db, id)
	if err != nil {
		if errors.Is(err, services.ErrSongNotFound) {
			return songNotFound(c, c.Params("id"))
		}
		return sendInternalError(c, "Failed to fetch song", err)
	}

	return c.JSON(h.serializer.Song(*song))
}

// DeleteSong handles DELETE /api/songs/:id. The file stays in place and the
// response body is an empty list.
func (h *SongHandler) DeleteSong(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return songNotFound(c, c.Params("id"))
	}

	if err := h.songService.Delete(c.UserContext(), h.db, id); err != nil {
		if errors.Is(err, services.ErrSongNotFound) {
			return songNotFound(c, c.Params("id"))
		}
		return sendInternalError(c, "Failed to delete song", err)
	}

	return c.JSON([]responses.SongResource{})
}

func songNotFound(c *fiber.Ctx, id string) error {
	return sendMessage(c, fiber.StatusNotFound, fmt.Sprintf("Could not find song with id %s", id))
}
