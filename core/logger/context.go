package logger

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type ctxKey int

const (
	ridKey ctxKey = iota
	updateMetaKey
)

type updateMeta struct {
	updateID int
	userID   int64
	chatID   int64
}

// BuildRID derives a request id for one inbound update, shared by every
// log line produced while handling it.
func BuildRID(updateID int, chatID, userID int64) string {
	return fmt.Sprintf("u%d-c%d-s%d", updateID, chatID, userID)
}

// WithRID stores the request id in the context.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ridKey, rid)
}

// RIDFrom returns the request id stored in the context, if any.
func RIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(ridKey).(string); ok {
		return rid
	}
	return ""
}

// WithUpdateMeta records update/user/chat identifiers for downstream logging.
func WithUpdateMeta(ctx context.Context, updateID int, userID, chatID int64) context.Context {
	return context.WithValue(ctx, updateMetaKey, updateMeta{updateID: updateID, userID: userID, chatID: chatID})
}

// LogEvent emits one event line enriched with whatever request metadata the
// context carries.
func LogEvent(ctx context.Context, log *slog.Logger, level slog.Level, event string, attrs ...slog.Attr) {
	if log == nil {
		log = L
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if rid := RIDFrom(ctx); rid != "" {
		attrs = append(attrs, slog.String("rid", rid))
	}
	if meta, ok := ctx.Value(updateMetaKey).(updateMeta); ok {
		attrs = append(attrs,
			slog.Int("update_id", meta.updateID),
			slog.Int64("user_id", meta.userID),
			slog.Int64("chat_id", meta.chatID),
		)
	}
	log.LogAttrs(ctx, level, event, attrs...)
}

// RoundMS rounds a duration to whole milliseconds for log output.
func RoundMS(d time.Duration) time.Duration {
	return d.Round(time.Millisecond)
}
