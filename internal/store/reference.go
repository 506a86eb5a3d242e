package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"serialbox/internal/model"
)

// Reference serves the operator-maintained read-mostly tables: maintenance
// status, sponsor channels, plans, and message templates.
type Reference struct {
	db *sqlx.DB
}

// NewReference builds the reference-data repository.
func NewReference(db *sqlx.DB) *Reference {
	return &Reference{db: db}
}

// BotStatus reads the singleton maintenance row. A missing row is treated as
// "not in maintenance" rather than an error.
func (s *Reference) BotStatus(ctx context.Context) (*model.BotStatus, error) {
	var st model.BotStatus
	err := s.db.GetContext(ctx, &st,
		`SELECT id, is_update, update_msg FROM bot_status WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.BotStatus{ID: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bot status: %w", err)
	}
	return &st, nil
}

// SponsorChannels lists every configured sponsor channel, "other"-flagged
// channels first to match the prompt keyboard ordering.
func (s *Reference) SponsorChannels(ctx context.Context) ([]model.SponsorChannel, error) {
	var channels []model.SponsorChannel
	err := s.db.SelectContext(ctx, &channels,
		`SELECT id, name, chat_id, link, other FROM sponsor_channels ORDER BY other DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sponsor channels: %w", err)
	}
	return channels, nil
}

// ActivePlans lists purchasable plans.
func (s *Reference) ActivePlans(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	err := s.db.SelectContext(ctx, &plans,
		`SELECT id, name, price_rial, duration_days, is_active FROM plans WHERE is_active ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// PlanByID fetches one plan.
func (s *Reference) PlanByID(ctx context.Context, id int64) (*model.Plan, error) {
	var plan model.Plan
	err := s.db.GetContext(ctx, &plan,
		`SELECT id, name, price_rial, duration_days, is_active FROM plans WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %d: %w", id, err)
	}
	return &plan, nil
}

// Template fetches a raw message template by name.
func (s *Reference) Template(ctx context.Context, name string) (string, error) {
	var text string
	err := s.db.GetContext(ctx, &text,
		`SELECT text FROM templates WHERE name = $1`, strings.TrimSpace(name))
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get template %q: %w", name, err)
	}
	return text, nil
}

// RenderTemplate fetches a template and substitutes {placeholder} arguments.
func (s *Reference) RenderTemplate(ctx context.Context, name string, args map[string]string) (string, error) {
	text, err := s.Template(ctx, name)
	if err != nil {
		return "", err
	}
	return RenderText(text, args), nil
}

// RenderText substitutes {placeholder} occurrences in a template body.
func RenderText(text string, args map[string]string) string {
	if len(args) == 0 {
		return text
	}
	pairs := make([]string, 0, len(args)*2)
	for k, v := range args {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
