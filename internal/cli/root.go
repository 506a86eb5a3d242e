// Package cli wires the application commands: serve, migrate and seed.
package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"serialbox/core/buildinfo"
	"serialbox/core/config"
	"serialbox/core/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:     "serialbox",
	Short:   "Telegram content-distribution bot",
	Version: buildinfo.Version,
	// Running the binary with no subcommand starts the webhook server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func Execute() error {
	// A missing .env is fine; explicit env vars and the YAML file still apply.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

// setup loads configuration and initializes logging, shared by every
// subcommand.
func setup() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.InitLogger(cfg); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}
