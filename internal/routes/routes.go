package routes

import (
	"strings"
	"time"

	"tuneful/internal/config"
	"tuneful/internal/handlers"
	"tuneful/internal/middleware"
	"tuneful/internal/responses"
	"tuneful/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, fileService *services.FileService, cfg config.MainConfig) {
	serializer := responses.NewSerializer(cfg.Server.UploadPath)

	// Monitor route
	app.Get("/metrics", monitor.New())

	// Health check route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"service":   "tuneful",
			"timestamp": time.Now().UTC(),
		})
	})

	fileHandler := handlers.NewFileHandler(db, fileService, serializer)
	songHandler := handlers.NewSongHandler(db, services.NewSongService(fileService), serializer)

	acceptJSON := middleware.Accept(fiber.MIMEApplicationJSON)

	api := app.Group("/api")

	// Song routes
	songs := api.Group("/songs")
	songs.Get("/", acceptJSON, songHandler.ListSongs)
	songs.Post("/", acceptJSON, middleware.Require(fiber.MIMEApplicationJSON), songHandler.CreateSong)
	songs.Get("/:id", acceptJSON, songHandler.GetSong)
	songs.Delete("/:id", songHandler.DeleteSong)

	// File routes
	files := api.Group("/files")
	files.Post("/", acceptJSON, middleware.Require(fiber.MIMEMultipartForm), fileHandler.UploadFile)

	// Uploaded bytes
	app.Get("/"+strings.Trim(cfg.Server.UploadPath, "/")+"/:name", fileHandler.ServeFile)
}
