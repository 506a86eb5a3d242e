package bot

import (
	"context"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"serialbox/core/logger"
)

// Dispatcher routes inbound updates to the handler that owns their kind:
// command, media, plain message or callback query. Anything unrecognized
// falls through to the message handler.
type Dispatcher struct {
	deps *Deps
}

func NewDispatcher(deps *Deps) *Dispatcher {
	return &Dispatcher{deps: deps}
}

// Dispatch processes one update end to end. Handler errors are logged and
// absorbed here; the webhook acknowledges regardless.
func (d *Dispatcher) Dispatch(ctx context.Context, upd *tele.Update) {
	c := newContext(ctx, upd, d.deps)

	var sender int64
	if s := c.Sender(); s != nil {
		sender = s.ID
	}
	chat := c.ChatID()
	ctx = logger.WithRID(ctx, logger.BuildRID(upd.ID, chat, sender))
	ctx = logger.WithUpdateMeta(ctx, upd.ID, sender, chat)
	c.ctx = ctx

	start := time.Now()
	kind, err := d.route(c)
	elapsed := logger.RoundMS(time.Since(start))

	level := slog.LevelInfo
	status := "ok"
	if err != nil {
		level = slog.LevelError
		status = "fail"
	}
	attrs := []slog.Attr{
		slog.String("kind", kind),
		slog.String("status", status),
		slog.Duration("duration", elapsed),
	}
	if text := logger.SanitizeLimit(c.Text(), 64); text != "" {
		attrs = append(attrs, slog.String("text", text))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	logger.LogEvent(ctx, logger.TG, level, "update.handled", attrs...)
}

func (d *Dispatcher) route(c *Context) (string, error) {
	switch {
	case c.IsCommand():
		return "command", newCommandHandler(c).Handle()
	case c.upd.Message != nil && c.HasMedia():
		return "media", newMediaHandler(c).Handle()
	case c.upd.Message != nil:
		return "message", newMessageHandler(c).Handle()
	case c.upd.Callback != nil:
		return "callback", newCallbackHandler(c).Handle()
	default:
		return "message", newMessageHandler(c).Handle()
	}
}
