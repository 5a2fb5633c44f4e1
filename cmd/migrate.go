package cmd

import (
	"fmt"

	"tuneful/internal/database"
	"tuneful/internal/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the file and song tables, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootstrap(); err != nil {
			return err
		}
		defer logger.Sync()

		// Connect auto-migrates every model
		db, err := database.Connect()
		if err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		defer database.Close(db)

		logger.Info("Database migrated", logger.Int("tables", len(database.Models)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
