// Package model declares the persistent records the bot operates on.
package model

import (
	"fmt"
	"time"
)

// Content types a session can hold.
const (
	ContentTypeMovie  = "movie"
	ContentTypeSeries = "series"
)

// Subscription summary values returned by User.SubscriptionInfo.
const (
	SubscriptionUnlimited = "Unlimited"
	SubscriptionNone      = "No Subscription"
)

// unlimitedCutoff separates "very long subscription" from the far-future
// sentinel written for unlimited plans.
var unlimitedCutoff = 50 * 365 * 24 * time.Hour

// User is one Telegram user of the bot, keyed by the Telegram numeric id.
// Step holds the conversational state and is never empty.
type User struct {
	ID                    int64      `db:"id"`
	TelegramID            int64      `db:"telegram_id"`
	Username              string     `db:"username"`
	FirstName             string     `db:"first_name"`
	LastName              string     `db:"last_name"`
	Step                  string     `db:"step"`
	IsActive              bool       `db:"is_active"`
	IsSuperuser           bool       `db:"is_superuser"`
	IsSendAds             bool       `db:"is_send_ads"`
	SubscriptionExpiresAt *time.Time `db:"subscription_expires_at"`
	CreatedAt             time.Time  `db:"created_at"`
}

// HasActiveSubscription reports whether the user's subscription is current.
func (u *User) HasActiveSubscription() bool {
	if u.SubscriptionExpiresAt == nil {
		return false
	}
	return u.SubscriptionExpiresAt.After(time.Now())
}

// SubscriptionInfo summarizes the subscription state: "Unlimited",
// "No Subscription", or the number of whole days remaining.
func (u *User) SubscriptionInfo() string {
	if !u.HasActiveSubscription() {
		return SubscriptionNone
	}
	remaining := time.Until(*u.SubscriptionExpiresAt)
	if remaining > unlimitedCutoff {
		return SubscriptionUnlimited
	}
	days := int(remaining.Hours() / 24)
	return fmt.Sprintf("%d", days)
}

// ContentSession is a shareable unit of content, a movie or a series.
type ContentSession struct {
	ID           int64     `db:"id"`
	Title        string    `db:"title"`
	ContentType  string    `db:"content_type"`
	Link         string    `db:"link"`
	ViewCount    int64     `db:"view_count"`
	LikeCount    int64     `db:"like_count"`
	DislikeCount int64     `db:"dislike_count"`
	CreatedAt    time.Time `db:"created_at"`
}

// LinkURL builds the shareable URL for this session from the configured base.
func (s *ContentSession) LinkURL(base string) string {
	return base + s.Link
}

// Episode is one part of a session, backed by a message copied into the
// backup channel. Ord orders episodes within their session.
type Episode struct {
	ID        int64     `db:"id"`
	SessionID int64     `db:"session_id"`
	Link      string    `db:"link"`
	MessageID int       `db:"message_id"`
	Ord       int       `db:"ord"`
	CreatedAt time.Time `db:"created_at"`
}

// LinkURL builds the shareable URL for this episode from the configured base.
func (e *Episode) LinkURL(base string) string {
	return base + e.Link
}

// Plan is a purchasable subscription plan. DurationDays < 0 means unlimited.
type Plan struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	PriceRial    int64  `db:"price_rial"`
	DurationDays int    `db:"duration_days"`
	IsActive     bool   `db:"is_active"`
}

// SponsorChannel is a channel users must join before using gated features.
// Other marks purely promotional channels excluded from the mandatory check.
type SponsorChannel struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	ChatID string `db:"chat_id"`
	Link   string `db:"link"`
	Other  bool   `db:"other"`
}

// BotStatus is the singleton maintenance flag row (id is always 1).
type BotStatus struct {
	ID        int64  `db:"id"`
	IsUpdate  bool   `db:"is_update"`
	UpdateMsg string `db:"update_msg"`
}

// Template is an operator-editable message template looked up by name.
type Template struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Text string `db:"text"`
}
