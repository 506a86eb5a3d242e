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
	"serialbox/internal/step"
)

const userColumns = `id, telegram_id, username, first_name, last_name, step,
	is_active, is_superuser, is_send_ads, subscription_expires_at, created_at`

// Users persists bot users keyed by their Telegram numeric id.
type Users struct {
	db *sqlx.DB
}

// NewUsers builds the user repository.
func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

// NewUserDefaults carries the profile fields used when a user is first seen.
type NewUserDefaults struct {
	Username  string
	FirstName string
	LastName  string
}

// GetOrCreate returns the user with the given Telegram id, creating it with
// step "home" on first contact.
func (s *Users) GetOrCreate(ctx context.Context, telegramID int64, defaults NewUserDefaults) (*model.User, error) {
	u, err := s.ByTelegramID(ctx, telegramID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if defaults.Username == "" {
		defaults.Username = fmt.Sprintf("%d", telegramID)
	}
	if defaults.LastName == "" {
		defaults.LastName = fmt.Sprintf("%d", telegramID)
	}

	var created model.User
	err = s.db.GetContext(ctx, &created, `
		INSERT INTO users (telegram_id, username, first_name, last_name, step)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		telegramID, defaults.Username, defaults.FirstName, defaults.LastName, step.Home,
	)
	if isUniqueViolation(err) {
		// Lost the insert race to a concurrent update from the same user.
		return s.ByTelegramID(ctx, telegramID)
	}
	if err != nil {
		return nil, fmt.Errorf("create user %d: %w", telegramID, err)
	}

	logger.SVCUsers.Info("user created",
		slog.String("event", "user.create"),
		slog.Int64("telegram_id", telegramID),
	)
	return &created, nil
}

// ByTelegramID fetches a user by the external Telegram id.
func (s *Users) ByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u,
		`SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", telegramID, err)
	}
	return &u, nil
}

// SetStep replaces the user's conversational step in a single update.
func (s *Users) SetStep(ctx context.Context, userID int64, st step.Step) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET step = $1 WHERE id = $2`, st.String(), userID)
	if err != nil {
		return fmt.Errorf("set step for user %d: %w", userID, err)
	}
	return nil
}

// AddSubscription extends the subscription by days. Negative days writes the
// far-future sentinel meaning unlimited. Active subscriptions extend from
// their current expiry, expired ones restart from now.
func (s *Users) AddSubscription(ctx context.Context, userID int64, days int) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET subscription_expires_at = CASE
			WHEN $2::int < 0 THEN now() + interval '36500 days'
			WHEN subscription_expires_at IS NOT NULL AND subscription_expires_at > now()
				THEN subscription_expires_at + make_interval(days => $2)
			ELSE now() + make_interval(days => $2)
		END
		WHERE id = $1`, userID, days)
	if err != nil {
		return fmt.Errorf("add subscription for user %d: %w", userID, err)
	}
	return nil
}
