package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"serialbox/core/database"
	"serialbox/core/logger"
	"serialbox/internal/bot"
	"serialbox/internal/store"
	"serialbox/internal/telegram"
	"serialbox/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the webhook server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
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

	api, err := telegram.NewClient(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("telegram client: %w", err)
	}

	dispatcher := bot.NewDispatcher(&bot.Deps{
		Users:   store.NewUsers(db),
		Content: store.NewContent(db),
		Ref:     store.NewReference(db),
		API:     api,
		Cfg:     cfg.Content,
	})
	server := web.NewServer(cfg.Webhook, dispatcher, db)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.APP.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
