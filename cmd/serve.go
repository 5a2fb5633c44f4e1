package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tuneful/internal/config"
	"tuneful/internal/database"
	"tuneful/internal/logger"
	"tuneful/internal/routes"
	"tuneful/internal/server"
	"tuneful/internal/services"
	"tuneful/internal/storage"

	pkgConfig "github.com/kerimovok/go-pkg-utils/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	if err := bootstrap(); err != nil {
		return err
	}
	defer logger.Sync()

	cfg := config.GetConfig()

	db, err := database.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	store, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	fileService, err := services.NewFileService(cfg, store)
	if err != nil {
		return fmt.Errorf("invalid file settings: %w", err)
	}

	app := server.NewApp(cfg)
	routes.SetupRoutes(app, db, fileService, cfg)

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Gracefully shutting down...")

		if err := app.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", logger.ErrorField(err))
		}
	}()

	addr := ":" + pkgConfig.GetEnv("PORT")
	logger.Info("Starting server",
		logger.String("addr", addr),
		logger.String("storage", cfg.Storage.Driver),
	)

	if err := app.Listen(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	logger.Info("Server gracefully stopped")
	return nil
}
