package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"serialbox/core/database"
	"serialbox/core/logger"
	"serialbox/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert default reference rows: bot status, templates, a starter plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		defer logger.Shutdown()

		if err := database.RunMigrations(cfg.Database); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		if err := store.Seed(cmd.Context(), db); err != nil {
			return err
		}
		logger.SEED.Info("seed completed")
		return nil
	},
}
