package bot

import (
	"fmt"
	"strconv"

	"serialbox/internal/step"
	"serialbox/internal/telegram"
)

// mediaHandler ingests upload-wizard media. The file is copied to the backup
// channel and the resulting channel message id becomes the episode record.
type mediaHandler struct {
	*Context
	routes stepRoutes
}

func newMediaHandler(c *Context) *mediaHandler {
	h := &mediaHandler{Context: c}
	h.routes = stepRoutes{
		step.GetEpisode: h.getEpisode,
	}
	return h
}

func (h *mediaHandler) Handle() error {
	if h.runGates() {
		return nil
	}
	u, err := h.User()
	if err != nil || u == nil || !u.IsSuperuser {
		return err
	}
	if fn := h.routes.resolve(h.Step()); fn != nil {
		return fn()
	}
	return nil
}

func (h *mediaHandler) getEpisode() error {
	sessionID, err := strconv.ParseInt(h.Step().Arg, 10, 64)
	if err != nil {
		return fmt.Errorf("parse session id %q: %w", h.Step().Arg, err)
	}
	session, err := h.deps.Content.SessionByID(h.ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	msg := h.Message()
	opts := &telegram.CopyOptions{
		Caption:         msg.Caption,
		CaptionEntities: msg.CaptionEntities,
	}
	if h.deps.Cfg.ExtraCaption != "" {
		opts.Caption = msg.Caption + h.deps.Cfg.ExtraCaption
	}

	channelMsgID, err := h.deps.API.CopyMessage(h.ctx,
		h.deps.Cfg.BackupChannelID, h.chatRecipient(), msg.ID, opts)
	if err != nil {
		h.send(textUploadFailed, &sendOpts{parseMode: "Markdown"})
		return nil
	}

	episode, err := h.deps.Content.CreateEpisode(h.ctx, session.ID, channelMsgID)
	if err != nil {
		return fmt.Errorf("create episode: %w", err)
	}

	text := fmt.Sprintf(textEpisodeUploaded, episode.Ord, episode.LinkURL(h.deps.Cfg.LinkBaseURL))
	h.send(text, &sendOpts{parseMode: "Markdown"})
	return nil
}
