package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"serialbox/core/logger"
	"serialbox/internal/model"
)

const sessionColumns = `id, title, content_type, link, view_count, like_count, dislike_count, created_at`
const episodeColumns = `id, session_id, link, message_id, ord, created_at`

// Content persists content sessions and their episodes.
type Content struct {
	db *sqlx.DB
}

// NewContent builds the content repository.
func NewContent(db *sqlx.DB) *Content {
	return &Content{db: db}
}

// CreateSession inserts a new content session with a fresh "S_" share token.
func (s *Content) CreateSession(ctx context.Context, title, contentType string) (*model.ContentSession, error) {
	var lastErr error
	for attempt := 0; attempt < tokenAttempts; attempt++ {
		var sess model.ContentSession
		err := s.db.GetContext(ctx, &sess, `
			INSERT INTO content_sessions (title, content_type, link)
			VALUES ($1, $2, $3)
			RETURNING `+sessionColumns,
			title, contentType, newToken("S"),
		)
		if err == nil {
			logger.SVCContent.Info("session created",
				slog.String("event", "session.create"),
				slog.Int64("session_id", sess.ID),
				slog.String("content_type", contentType),
			)
			return &sess, nil
		}
		lastErr = err
		if !isUniqueViolation(err) {
			break
		}
	}
	return nil, fmt.Errorf("create session: %w", lastErr)
}

// SessionByID fetches a session by primary key.
func (s *Content) SessionByID(ctx context.Context, id int64) (*model.ContentSession, error) {
	var sess model.ContentSession
	err := s.db.GetContext(ctx, &sess,
		`SELECT `+sessionColumns+` FROM content_sessions WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	return &sess, nil
}

// SessionByLink fetches a session by its share token.
func (s *Content) SessionByLink(ctx context.Context, link string) (*model.ContentSession, error) {
	var sess model.ContentSession
	err := s.db.GetContext(ctx, &sess,
		`SELECT `+sessionColumns+` FROM content_sessions WHERE link = $1`, link)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session by link: %w", err)
	}
	return &sess, nil
}

// DeleteSession removes a session; episodes cascade at the schema level.
func (s *Content) DeleteSession(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM content_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	logger.SVCContent.Info("session deleted",
		slog.String("event", "session.delete"),
		slog.Int64("session_id", id),
	)
	return nil
}

// IncrementViews bumps the session view counter.
func (s *Content) IncrementViews(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE content_sessions SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views for session %d: %w", id, err)
	}
	return nil
}

// CreateEpisode inserts an episode referencing a backup-channel message.
// The order number is assigned inside the insert as max(existing)+1. The
// unique index on (session_id, ord) turns a concurrent draw of the same
// number into a 23505, and the retry re-evaluates the subselect.
func (s *Content) CreateEpisode(ctx context.Context, sessionID int64, messageID int) (*model.Episode, error) {
	var lastErr error
	for attempt := 0; attempt < tokenAttempts; attempt++ {
		var ep model.Episode
		err := s.db.GetContext(ctx, &ep, `
			INSERT INTO episodes (session_id, link, message_id, ord)
			VALUES ($1, $2, $3,
				(SELECT COALESCE(MAX(ord), 0) + 1 FROM episodes WHERE session_id = $1))
			RETURNING `+episodeColumns,
			sessionID, newToken("E"), messageID,
		)
		if err == nil {
			logger.SVCContent.Info("episode created",
				slog.String("event", "episode.create"),
				slog.Int64("session_id", sessionID),
				slog.Int64("episode_id", ep.ID),
				slog.Int("ord", ep.Ord),
			)
			return &ep, nil
		}
		lastErr = err
		if !isUniqueViolation(err) {
			break
		}
	}
	return nil, fmt.Errorf("create episode for session %d: %w", sessionID, lastErr)
}

// EpisodesBySession lists a session's episodes in ascending order.
func (s *Content) EpisodesBySession(ctx context.Context, sessionID int64) ([]model.Episode, error) {
	var eps []model.Episode
	err := s.db.SelectContext(ctx, &eps,
		`SELECT `+episodeColumns+` FROM episodes WHERE session_id = $1 ORDER BY ord ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list episodes for session %d: %w", sessionID, err)
	}
	return eps, nil
}

// EpisodeByID fetches an episode by primary key.
func (s *Content) EpisodeByID(ctx context.Context, id int64) (*model.Episode, error) {
	var ep model.Episode
	err := s.db.GetContext(ctx, &ep,
		`SELECT `+episodeColumns+` FROM episodes WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get episode %d: %w", id, err)
	}
	return &ep, nil
}

// EpisodeByLink fetches an episode by its share token.
func (s *Content) EpisodeByLink(ctx context.Context, link string) (*model.Episode, error) {
	var ep model.Episode
	err := s.db.GetContext(ctx, &ep,
		`SELECT `+episodeColumns+` FROM episodes WHERE link = $1`, link)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get episode by link: %w", err)
	}
	return &ep, nil
}

// DeleteEpisode removes a single episode.
func (s *Content) DeleteEpisode(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM episodes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete episode %d: %w", id, err)
	}
	return nil
}

// CountEpisodes returns how many episodes a session has.
func (s *Content) CountEpisodes(ctx context.Context, sessionID int64) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM episodes WHERE session_id = $1`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("count episodes for session %d: %w", sessionID, err)
	}
	return n, nil
}
