package bot

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"serialbox/core/logger"
	"serialbox/internal/model"
	"serialbox/internal/step"
	"serialbox/internal/store"
)

// callbackHandler routes callback queries by the first colon-delimited
// segment of their data.
type callbackHandler struct {
	*Context
	routes map[string]handlerFunc
}

func newCallbackHandler(c *Context) *callbackHandler {
	h := &callbackHandler{Context: c}
	h.routes = map[string]handlerFunc{
		"joined_to_sponsor":  c.sponsorRequired(h.joinedSponsor),
		"edit_session":       h.editSession,
		"sure_delete_object": h.sureDelete,
		"pay":                h.pay,
	}
	return h
}

func (h *callbackHandler) Handle() error {
	if h.runGates() {
		return nil
	}
	cb := h.Callback()
	if cb == nil {
		return nil
	}
	key, _, _ := strings.Cut(cb.Data, ":")
	if fn, ok := h.routes[key]; ok {
		return fn()
	}
	return nil
}

// joinedSponsor runs after the membership re-check passed: the join prompt is
// removed and the user lands on the home screen.
func (h *callbackHandler) joinedSponsor() error {
	if m := h.Callback().Message; m != nil {
		h.deleteMessage(m.ID)
	}
	if err := h.SetStep(step.Step{Name: step.Home}); err != nil {
		return err
	}
	h.send(textHome, &sendOpts{markup: homeKeyboard()})
	return nil
}

func (h *callbackHandler) pay() error {
	_, arg, _ := strings.Cut(h.Callback().Data, ":")
	planID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil
	}
	plan, err := h.deps.Ref.PlanByID(h.ctx, planID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("load plan: %w", err)
	}
	logger.LogEvent(h.ctx, logger.TG, slog.LevelInfo, "payment.requested",
		slog.Int64("plan_id", plan.ID), slog.String("plan", plan.Name))
	h.send(textPaymentSoon, nil)
	return nil
}

// editSession handles "edit_session:<op>:<id>" where op is delete_e,
// delete_s or add_e.
func (h *callbackHandler) editSession() error {
	parts := strings.SplitN(h.Callback().Data, ":", 3)
	if len(parts) != 3 {
		h.send(textUnknownOp, nil)
		return nil
	}
	op := parts[1]
	objectID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		h.send(textUnknownOp, nil)
		return nil
	}

	switch op {
	case "delete_e":
		return h.confirmDelete("e", objectID)
	case "delete_s":
		return h.confirmDelete("s", objectID)
	case "add_e":
		return h.addEpisode(objectID)
	default:
		h.send(textUnknownOp, nil)
		return nil
	}
}

func (h *callbackHandler) confirmDelete(objectType string, objectID int64) error {
	var err error
	switch objectType {
	case "s":
		_, err = h.deps.Content.SessionByID(h.ctx, objectID)
	case "e":
		_, err = h.deps.Content.EpisodeByID(h.ctx, objectID)
	}
	if err != nil {
		if store.IsNotFound(err) {
			h.send(textObjectNotFound, nil)
			return nil
		}
		return fmt.Errorf("load object: %w", err)
	}

	m := h.Callback().Message
	if m == nil {
		return nil
	}
	h.edit(m.ID, textSureDelete, &sendOpts{markup: sureDeleteKeyboard(objectType, objectID)})
	return nil
}

func (h *callbackHandler) addEpisode(sessionID int64) error {
	session, err := h.deps.Content.SessionByID(h.ctx, sessionID)
	if err != nil {
		if store.IsNotFound(err) {
			h.send(textSessionNotFound, nil)
			return nil
		}
		return fmt.Errorf("load session: %w", err)
	}

	if err := h.SetStep(step.With(step.GetEpisode, strconv.FormatInt(session.ID, 10))); err != nil {
		return err
	}
	h.send(textSendFile, &sendOpts{parseMode: "Markdown", markup: cancelUploadKeyboard()})
	return nil
}

// sureDelete handles "sure_delete_object:<yes|no>:<s|e>:<id>".
func (h *callbackHandler) sureDelete() error {
	parts := strings.SplitN(h.Callback().Data, ":", 4)
	if len(parts) != 4 {
		return nil
	}
	op, objectType := parts[1], parts[2]
	objectID, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return nil
	}

	session, err := h.resolveSession(objectType, objectID)
	if err != nil {
		return err
	}
	if session == nil {
		h.send(textObjectGone, nil)
		return nil
	}

	if op == "no" {
		return h.showSessionScreen(session)
	}

	switch objectType {
	case "s":
		if err := h.SetStep(step.Step{Name: step.AdminHome}); err != nil {
			return err
		}
		if err := h.deps.Content.DeleteSession(h.ctx, session.ID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		h.send(textSessionDeleted, &sendOpts{parseMode: "Markdown", markup: adminHomeKeyboard()})
		return nil
	case "e":
		if err := h.deps.Content.DeleteEpisode(h.ctx, objectID); err != nil {
			return fmt.Errorf("delete episode: %w", err)
		}
		return h.showSessionScreen(session)
	}
	return nil
}

// resolveSession maps a confirm target to its session. "e" ids resolve
// through the episode's parent. A nil session without error means gone.
func (h *callbackHandler) resolveSession(objectType string, objectID int64) (*model.ContentSession, error) {
	switch objectType {
	case "s":
		session, err := h.deps.Content.SessionByID(h.ctx, objectID)
		if store.IsNotFound(err) {
			return nil, nil
		}
		return session, err
	case "e":
		episode, err := h.deps.Content.EpisodeByID(h.ctx, objectID)
		if store.IsNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		session, err := h.deps.Content.SessionByID(h.ctx, episode.SessionID)
		if store.IsNotFound(err) {
			return nil, nil
		}
		return session, err
	}
	return nil, nil
}

// showSessionScreen re-renders the management screen in place of the
// callback's message.
func (h *callbackHandler) showSessionScreen(session *model.ContentSession) error {
	episodes, err := h.deps.Content.EpisodesBySession(h.ctx, session.ID)
	if err != nil {
		return fmt.Errorf("load episodes: %w", err)
	}
	m := h.Callback().Message
	if m == nil {
		return nil
	}
	h.edit(m.ID, sessionInfoText(session, len(episodes)),
		&sendOpts{parseMode: "Markdown", markup: editSessionKeyboard(session, episodes)})
	return nil
}
