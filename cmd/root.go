package cmd

import (
	"fmt"
	"os"

	"tuneful/internal/config"
	"tuneful/internal/constants"
	"tuneful/internal/logger"

	pkgValidator "github.com/kerimovok/go-pkg-utils/validator"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tuneful",
	Short: "Tuneful serves a catalogue of songs and their uploaded audio files.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration, validates the environment and starts logging
func bootstrap() error {
	if err := config.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configs: %w", err)
	}

	if err := pkgValidator.ValidateConfig(constants.EnvValidationRules); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cfg := config.GetConfig().Logging
	return logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.Level),
		OutputPath: cfg.OutputPath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})
}
