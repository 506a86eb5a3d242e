package bot

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"serialbox/core/logger"
	"serialbox/internal/telegram"
)

type sendOpts struct {
	parseMode string
	markup    *tele.ReplyMarkup
	replyTo   int
}

func (o *sendOpts) api() *telegram.SendOptions {
	if o == nil {
		return nil
	}
	return &telegram.SendOptions{
		ParseMode:   o.parseMode,
		ReplyMarkup: o.markup,
		ReplyTo:     o.replyTo,
	}
}

// send delivers a message to the current chat. Send failures are logged and
// swallowed so one unreachable chat never fails the whole update.
func (c *Context) send(text string, o *sendOpts) int {
	id, err := c.deps.API.SendMessage(c.ctx, c.ChatID(), text, o.api())
	if err != nil {
		logger.LogEvent(c.ctx, logger.TG, slog.LevelWarn, "send.failed", slog.Any("error", err))
	}
	return id
}

func (c *Context) edit(messageID int, text string, o *sendOpts) {
	if err := c.deps.API.EditMessageText(c.ctx, c.ChatID(), messageID, text, o.api()); err != nil {
		logger.LogEvent(c.ctx, logger.TG, slog.LevelWarn, "edit.failed",
			slog.Int("message_id", messageID), slog.Any("error", err))
	}
}

func (c *Context) deleteMessage(messageID int) {
	if err := c.deps.API.DeleteMessage(c.ctx, c.ChatID(), messageID); err != nil {
		logger.LogEvent(c.ctx, logger.TG, slog.LevelWarn, "delete.failed",
			slog.Int("message_id", messageID), slog.Any("error", err))
	}
}
