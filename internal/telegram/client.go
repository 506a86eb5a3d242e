// Package telegram wraps the subset of the Bot API the bot consumes.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"serialbox/core/logger"
)

// SendOptions narrows the Bot API send/edit parameters the bot uses.
type SendOptions struct {
	ParseMode   string
	ReplyMarkup *tele.ReplyMarkup
	// ReplyTo references a message id in the destination chat.
	ReplyTo int
}

// CopyOptions overrides the caption of a copied message.
type CopyOptions struct {
	Caption         string
	CaptionEntities tele.Entities
}

// Client is the Bot API surface the handlers depend on. Transport failures
// come back as ordinary errors; callers treat them as soft and never let
// them escape the webhook boundary.
type Client interface {
	SendMessage(ctx context.Context, chatID int64, text string, opts *SendOptions) (int, error)
	EditMessageText(ctx context.Context, chatID int64, messageID int, text string, opts *SendOptions) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	CopyMessage(ctx context.Context, toChat, fromChat string, messageID int, opts *CopyOptions) (int, error)
	IsChannelMember(ctx context.Context, channelID string, userID int64) (bool, error)
}

// recipient adapts a raw chat id string ("-100123…" or "@channel") to telebot.
type recipient string

func (r recipient) Recipient() string { return string(r) }

type client struct {
	bot *tele.Bot
}

// NewClient builds the telebot-backed Bot API client.
func NewClient(token string) (Client, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Client: BuildHTTPClient(),
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: bot initialization failed: %w", err)
	}
	return &client{bot: bot}, nil
}

func sendOptions(chatID int64, opts *SendOptions) *tele.SendOptions {
	out := &tele.SendOptions{}
	if opts == nil {
		return out
	}
	out.ParseMode = opts.ParseMode
	out.ReplyMarkup = opts.ReplyMarkup
	if opts.ReplyTo != 0 {
		out.ReplyTo = &tele.Message{ID: opts.ReplyTo, Chat: &tele.Chat{ID: chatID}}
	}
	return out
}

func (c *client) SendMessage(ctx context.Context, chatID int64, text string, opts *SendOptions) (int, error) {
	msg, err := c.bot.Send(tele.ChatID(chatID), text, sendOptions(chatID, opts))
	if err != nil {
		logger.LogEvent(ctx, logger.TG, slog.LevelWarn, "api.send_failed",
			slog.Int64("chat_id", chatID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return 0, fmt.Errorf("sendMessage: %w", err)
	}
	return msg.ID, nil
}

func (c *client) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, opts *SendOptions) error {
	ref := tele.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: chatID}
	if _, err := c.bot.Edit(ref, text, sendOptions(chatID, opts)); err != nil {
		logger.LogEvent(ctx, logger.TG, slog.LevelWarn, "api.edit_failed",
			slog.Int64("chat_id", chatID),
			slog.Int("message_id", messageID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return fmt.Errorf("editMessageText: %w", err)
	}
	return nil
}

func (c *client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	ref := tele.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: chatID}
	if err := c.bot.Delete(ref); err != nil {
		logger.LogEvent(ctx, logger.TG, slog.LevelWarn, "api.delete_failed",
			slog.Int64("chat_id", chatID),
			slog.Int("message_id", messageID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return fmt.Errorf("deleteMessage: %w", err)
	}
	return nil
}

// CopyMessage goes through Raw because telebot's Copy cannot override the
// caption, which the backup-channel flow needs for the extra caption.
func (c *client) CopyMessage(ctx context.Context, toChat, fromChat string, messageID int, opts *CopyOptions) (int, error) {
	params := map[string]any{
		"chat_id":      toChat,
		"from_chat_id": fromChat,
		"message_id":   messageID,
	}
	if opts != nil && opts.Caption != "" {
		params["caption"] = opts.Caption
		if len(opts.CaptionEntities) > 0 {
			params["caption_entities"] = opts.CaptionEntities
		}
	}

	data, err := c.bot.Raw("copyMessage", params)
	if err != nil {
		logger.LogEvent(ctx, logger.TG, slog.LevelWarn, "api.copy_failed",
			slog.String("to", toChat),
			slog.String("from", fromChat),
			slog.Int("message_id", messageID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return 0, fmt.Errorf("copyMessage: %w", err)
	}

	var resp struct {
		Result struct {
			MessageID int `json:"message_id"`
		} `json:"result"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return 0, fmt.Errorf("copyMessage: decode response: %w", err)
	}
	return resp.Result.MessageID, nil
}

func (c *client) IsChannelMember(ctx context.Context, channelID string, userID int64) (bool, error) {
	member, err := c.bot.ChatMemberOf(recipient(channelID), tele.ChatID(userID))
	if err != nil {
		logger.LogEvent(ctx, logger.TG, slog.LevelWarn, "api.member_check_failed",
			slog.String("channel", channelID),
			slog.Int64("user_id", userID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return false, fmt.Errorf("getChatMember: %w", err)
	}
	switch member.Role {
	case tele.Creator, tele.Administrator, tele.Member:
		return true, nil
	}
	return false, nil
}
