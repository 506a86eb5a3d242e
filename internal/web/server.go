// Package web exposes the webhook endpoint Telegram pushes updates into,
// plus a health probe for deployment checks.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"serialbox/core/config"
	"serialbox/core/logger"
)

// Updates is the sink webhook payloads are handed to.
type Updates interface {
	Dispatch(ctx context.Context, upd *tele.Update)
}

type Server struct {
	cfg  config.WebhookConfig
	upd  Updates
	db   *sqlx.DB
	http *http.Server
}

func NewServer(cfg config.WebhookConfig, upd Updates, db *sqlx.DB) *Server {
	s := &Server{cfg: cfg, upd: upd, db: db}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST "+cfg.Path, s.handleWebhook)

	s.http = &http.Server{
		Addr:              net.JoinHostPort(cfg.Listen, strconv.Itoa(cfg.Port)),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return s
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	logger.WEB.Info("webhook server listening", "addr", s.http.Addr, "path", s.cfg.Path)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("webhook server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// handleWebhook acknowledges every authenticated request with 200 so
// Telegram never replays an update the bot already saw. Processing failures
// are logged, not surfaced.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if s.cfg.SecretToken != "" &&
		r.Header.Get("X-Telegram-Bot-Api-Secret-Token") != s.cfg.SecretToken {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.LogEvent(r.Context(), logger.WEB, slog.LevelError, "webhook.panic",
				slog.Any("panic", rec))
		}
		s.acknowledge(w)
	}()

	var upd tele.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		logger.LogEvent(r.Context(), logger.WEB, slog.LevelWarn, "webhook.bad_payload",
			slog.Any("error", err))
		return
	}

	s.upd.Dispatch(r.Context(), &upd)
}

func (s *Server) acknowledge(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		logger.LogEvent(r.Context(), logger.WEB, slog.LevelError, "health.db_unreachable",
			slog.Any("error", err))
		http.Error(w, `{"status":"degraded","db":"down"}`, http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok","db":"up"}`))
}
