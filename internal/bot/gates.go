package bot

import (
	"log/slog"

	"serialbox/core/logger"
)

// runGates applies the maintenance and block gates in order. It returns true
// when the update must not reach a handler; the gate itself has already told
// the user why.
func (c *Context) runGates() bool {
	if c.maintenanceGate() {
		return true
	}
	return c.blockGate()
}

// maintenanceGate stops everyone but superusers while the bot is flagged as
// updating. A sender whose user row cannot be loaded is treated as a regular
// user.
func (c *Context) maintenanceGate() bool {
	st, err := c.deps.Ref.BotStatus(c.ctx)
	if err != nil {
		logger.LogEvent(c.ctx, logger.TG, slog.LevelWarn, "gate.status_check_failed", slog.Any("error", err))
		return false
	}
	if !st.IsUpdate {
		return false
	}
	if u, err := c.User(); err == nil && u != nil && u.IsSuperuser {
		return false
	}
	if c.ChatID() != 0 {
		c.send(st.UpdateMsg, &sendOpts{parseMode: "HTML"})
	}
	return true
}

// blockGate drops updates from deactivated users.
func (c *Context) blockGate() bool {
	u, err := c.User()
	if err != nil || u == nil || u.IsActive {
		return false
	}
	c.send(textBlocked, nil)
	return true
}

// sponsorRequired wraps a handler with the sponsor-channel membership check.
// When the user is missing any required channel, the handler is skipped and a
// join prompt is sent instead.
func (c *Context) sponsorRequired(fn func() error) func() error {
	return func() error {
		gated, err := c.sponsorGate()
		if err != nil {
			return err
		}
		if gated {
			return nil
		}
		return fn()
	}
}

// sponsorGate reports whether the join prompt was shown. Channels flagged as
// other are exempt from the check and never appear in the prompt; a failed
// membership call counts as not joined.
func (c *Context) sponsorGate() (bool, error) {
	sender := c.Sender()
	if sender == nil {
		return false, nil
	}
	channels, err := c.deps.Ref.SponsorChannels(c.ctx)
	if err != nil {
		return false, err
	}
	if len(channels) == 0 {
		return false, nil
	}

	missing := channels[:0:0]
	for _, ch := range channels {
		if ch.Other {
			continue
		}
		joined, err := c.deps.API.IsChannelMember(c.ctx, ch.ChatID, sender.ID)
		if err != nil || !joined {
			missing = append(missing, ch)
		}
	}
	if len(missing) == 0 {
		return false, nil
	}

	msg, err := c.deps.Ref.Template(c.ctx, tplSponsorChannels)
	if err != nil {
		msg = textSponsorJoin
	}
	c.send(msg, &sendOpts{parseMode: "HTML", markup: sponsorKeyboard(missing)})
	return true, nil
}
