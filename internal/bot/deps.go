// Package bot implements the update dispatcher, the gate chain, and the
// per-update-kind step routers that drive the conversational flows.
package bot

import (
	"context"

	"serialbox/core/config"
	"serialbox/internal/model"
	"serialbox/internal/step"
	"serialbox/internal/store"
	"serialbox/internal/telegram"
)

// UserStore is the user-record surface the handlers consume.
type UserStore interface {
	GetOrCreate(ctx context.Context, telegramID int64, defaults store.NewUserDefaults) (*model.User, error)
	ByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	SetStep(ctx context.Context, userID int64, st step.Step) error
}

// ContentStore is the session/episode surface the handlers consume.
type ContentStore interface {
	CreateSession(ctx context.Context, title, contentType string) (*model.ContentSession, error)
	SessionByID(ctx context.Context, id int64) (*model.ContentSession, error)
	SessionByLink(ctx context.Context, link string) (*model.ContentSession, error)
	DeleteSession(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
	CreateEpisode(ctx context.Context, sessionID int64, messageID int) (*model.Episode, error)
	EpisodesBySession(ctx context.Context, sessionID int64) ([]model.Episode, error)
	EpisodeByID(ctx context.Context, id int64) (*model.Episode, error)
	EpisodeByLink(ctx context.Context, link string) (*model.Episode, error)
	DeleteEpisode(ctx context.Context, id int64) error
}

// RefStore serves reference data: maintenance status, sponsors, plans, templates.
type RefStore interface {
	BotStatus(ctx context.Context) (*model.BotStatus, error)
	SponsorChannels(ctx context.Context) ([]model.SponsorChannel, error)
	ActivePlans(ctx context.Context) ([]model.Plan, error)
	PlanByID(ctx context.Context, id int64) (*model.Plan, error)
	Template(ctx context.Context, name string) (string, error)
	RenderTemplate(ctx context.Context, name string, args map[string]string) (string, error)
}

// Deps bundles everything the handlers need.
type Deps struct {
	Users   UserStore
	Content ContentStore
	Ref     RefStore
	API     telegram.Client
	Cfg     config.ContentConfig
}
