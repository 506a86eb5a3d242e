package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"serialbox/core/logger"
	"serialbox/internal/model"
	"serialbox/internal/store"
)

// deliver resolves a share-link token and copies the referenced content from
// the backup channel into the user's chat.
func (h *commandHandler) deliver(token string) error {
	var episodes []model.Episode
	var session *model.ContentSession

	switch {
	case strings.HasPrefix(token, "S_"):
		s, err := h.deps.Content.SessionByLink(h.ctx, token)
		if err != nil {
			if store.IsNotFound(err) {
				h.send(textLinkNotFound, nil)
				return nil
			}
			return fmt.Errorf("resolve session link: %w", err)
		}
		session = s
		episodes, err = h.deps.Content.EpisodesBySession(h.ctx, s.ID)
		if err != nil {
			return fmt.Errorf("load episodes: %w", err)
		}

	case strings.HasPrefix(token, "E_"):
		e, err := h.deps.Content.EpisodeByLink(h.ctx, token)
		if err != nil {
			if store.IsNotFound(err) {
				h.send(textLinkNotFound, nil)
				return nil
			}
			return fmt.Errorf("resolve episode link: %w", err)
		}
		session, err = h.deps.Content.SessionByID(h.ctx, e.SessionID)
		if err != nil && !store.IsNotFound(err) {
			return fmt.Errorf("load session: %w", err)
		}
		episodes = []model.Episode{*e}
	}

	if len(episodes) == 0 {
		h.send(textLinkNotFound, nil)
		return nil
	}

	if session != nil {
		if err := h.deps.Content.IncrementViews(h.ctx, session.ID); err != nil {
			logger.LogEvent(h.ctx, logger.TG, slog.LevelWarn, "views.increment_failed",
				slog.Int64("session_id", session.ID), slog.Any("error", err))
		}
	}

	autodelete := h.deps.Cfg.AutoDeleteSeconds
	if autodelete > 0 {
		h.send(fmt.Sprintf(textAutoDeleteNotice, autodelete), nil)
	}

	delivered := make([]int, 0, len(episodes))
	for _, ep := range episodes {
		msgID, err := h.deps.API.CopyMessage(h.ctx,
			h.chatRecipient(), h.deps.Cfg.BackupChannelID, ep.MessageID, nil)
		if err != nil {
			logger.LogEvent(h.ctx, logger.TG, slog.LevelWarn, "delivery.copy_failed",
				slog.Int64("episode_id", ep.ID), slog.Any("error", err))
			continue
		}
		delivered = append(delivered, msgID)
	}

	if autodelete > 0 && len(delivered) > 0 {
		h.scheduleDelete(h.ChatID(), delivered, time.Duration(autodelete)*time.Second)
	}
	return nil
}

// scheduleDelete removes delivered copies after the retention window. The
// timer outlives the webhook request, so it runs detached from its context.
func (h *commandHandler) scheduleDelete(chatID int64, messageIDs []int, after time.Duration) {
	api := h.deps.API
	go func() {
		time.Sleep(after)
		ctx := context.Background()
		for _, id := range messageIDs {
			if err := api.DeleteMessage(ctx, chatID, id); err != nil {
				logger.LogEvent(ctx, logger.TG, slog.LevelWarn, "delivery.cleanup_failed",
					slog.Int64("chat_id", chatID), slog.Int("message_id", id), slog.Any("error", err))
			}
		}
	}()
}
