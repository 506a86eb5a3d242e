package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"serialbox/core/database"
	"serialbox/core/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		defer logger.Shutdown()

		if err := database.RunMigrations(cfg.Database); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		return nil
	},
}
