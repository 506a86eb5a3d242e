package bot

import (
	"fmt"
	"strconv"
	"strings"

	"serialbox/internal/model"
	"serialbox/internal/step"
	"serialbox/internal/store"
)

// messageHandler serves plain-text messages from end users. Steps it does not
// own fall through to the admin message handler.
type messageHandler struct {
	*Context
	routes stepRoutes
}

func newMessageHandler(c *Context) *messageHandler {
	h := &messageHandler{Context: c}
	h.routes = stepRoutes{
		step.Home: c.sponsorRequired(h.home),
	}
	return h
}

func (h *messageHandler) Handle() error {
	if h.runGates() {
		return nil
	}
	st := h.Step()
	if st.Name == "" {
		return nil
	}
	if fn := h.routes.resolve(st); fn != nil {
		return fn()
	}
	return newAdminMessageHandler(h.Context).Handle()
}

func (h *messageHandler) home() error {
	switch h.Text() {
	case btnBuyPlan:
		msg, err := h.deps.Ref.Template(h.ctx, tplPaymentPlans)
		if err != nil {
			return fmt.Errorf("payment plans template: %w", err)
		}
		plans, err := h.deps.Ref.ActivePlans(h.ctx)
		if err != nil {
			return fmt.Errorf("load plans: %w", err)
		}
		h.send(msg, &sendOpts{parseMode: "Markdown", markup: payPlanKeyboard(plans)})

	case btnAccountInfo:
		u, err := h.User()
		if err != nil || u == nil {
			return err
		}
		planDays := u.SubscriptionInfo()
		switch planDays {
		case model.SubscriptionUnlimited:
			planDays = textPlanUnlimited
		case model.SubscriptionNone:
			planDays = textPlanNone
		}
		msg, err := h.deps.Ref.RenderTemplate(h.ctx, tplPlanInfo, map[string]string{
			"user_id":   strconv.FormatInt(u.TelegramID, 10),
			"plan_days": planDays,
		})
		if err != nil {
			return fmt.Errorf("plan info template: %w", err)
		}
		h.send(msg, &sendOpts{parseMode: "Markdown"})
	}
	return nil
}

// adminMessageHandler drives the content-upload wizard and the user-info
// lookup. Every route is superuser-only.
type adminMessageHandler struct {
	*Context
	routes stepRoutes
}

func newAdminMessageHandler(c *Context) *adminMessageHandler {
	h := &adminMessageHandler{Context: c}
	h.routes = stepRoutes{
		step.AdminHome:     h.adminHome,
		step.AdminUpload:   h.adminUpload,
		step.GetTitle:      h.getTitle,
		step.GetEpisode:    h.getEpisode,
		step.AdminUserInfo: h.adminUserInfo,
	}
	return h
}

func (h *adminMessageHandler) Handle() error {
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

// adminPanel is the admin home screen, shared by /admin and every back path.
func (h *adminMessageHandler) adminPanel() error {
	if err := h.SetStep(step.Step{Name: step.AdminHome}); err != nil {
		return err
	}
	h.send(textAdminWelcome, &sendOpts{markup: adminHomeKeyboard()})
	return nil
}

func (h *adminMessageHandler) adminHome() error {
	switch h.Text() {
	case btnAdminUpload:
		if err := h.SetStep(step.Step{Name: step.AdminUpload}); err != nil {
			return err
		}
		h.send(textChooseUpload, &sendOpts{parseMode: "Markdown", markup: adminUploadKeyboard()})
	case btnAdminUser:
		if err := h.SetStep(step.Step{Name: step.AdminUserInfo}); err != nil {
			return err
		}
		h.send(textSendUserID, &sendOpts{parseMode: "Markdown", markup: backKeyboard()})
	}
	return nil
}

func (h *adminMessageHandler) adminUpload() error {
	switch h.Text() {
	case btnBack:
		return h.adminPanel()
	case btnUploadMovie:
		if err := h.SetStep(step.With(step.GetTitle, model.ContentTypeMovie)); err != nil {
			return err
		}
		h.send(textSendMovieName, &sendOpts{parseMode: "Markdown", markup: backKeyboard()})
	case btnUploadSeries:
		if err := h.SetStep(step.With(step.GetTitle, model.ContentTypeSeries)); err != nil {
			return err
		}
		h.send(textSendSeriesName, &sendOpts{parseMode: "Markdown", markup: backKeyboard()})
	}
	return nil
}

func (h *adminMessageHandler) getTitle() error {
	if h.Text() == btnBack {
		if err := h.SetStep(step.Step{Name: step.AdminUpload}); err != nil {
			return err
		}
		h.send(textChooseUpload, &sendOpts{parseMode: "Markdown", markup: adminUploadKeyboard()})
		return nil
	}

	contentType := h.Step().Arg
	session, err := h.deps.Content.CreateSession(h.ctx, h.Text(), contentType)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if err := h.SetStep(step.With(step.GetEpisode, strconv.FormatInt(session.ID, 10))); err != nil {
		return err
	}
	h.send(textSendFile, &sendOpts{parseMode: "Markdown", markup: cancelUploadKeyboard()})
	return nil
}

func (h *adminMessageHandler) getEpisode() error {
	sessionID, err := strconv.ParseInt(h.Step().Arg, 10, 64)
	if err != nil {
		return fmt.Errorf("parse session id %q: %w", h.Step().Arg, err)
	}

	switch h.Text() {
	case btnCancelUpload:
		if err := h.deps.Content.DeleteSession(h.ctx, sessionID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		if err := h.SetStep(step.Step{Name: step.AdminUpload}); err != nil {
			return err
		}
		h.send(textChooseUpload, &sendOpts{parseMode: "Markdown", markup: adminUploadKeyboard()})

	case btnFinishUpload:
		if err := h.SetStep(step.Step{Name: step.AdminHome}); err != nil {
			return err
		}
		session, err := h.deps.Content.SessionByID(h.ctx, sessionID)
		if err != nil {
			return fmt.Errorf("load session: %w", err)
		}
		episodes, err := h.deps.Content.EpisodesBySession(h.ctx, sessionID)
		if err != nil {
			return fmt.Errorf("load episodes: %w", err)
		}

		var epis strings.Builder
		for _, e := range episodes {
			fmt.Fprintf(&epis, "[E%d](%s)\n", e.Ord, e.LinkURL(h.deps.Cfg.LinkBaseURL))
		}
		text := fmt.Sprintf(textSessionUploaded,
			epis.String(), session.Title, session.LinkURL(h.deps.Cfg.LinkBaseURL))
		h.send(text, &sendOpts{parseMode: "Markdown", markup: adminHomeKeyboard()})

		// Follow up with the management screen so the admin can prune or
		// extend the session right away.
		h.send(sessionInfoText(session, len(episodes)),
			&sendOpts{parseMode: "Markdown", markup: editSessionKeyboard(session, episodes)})
	}
	return nil
}

func (h *adminMessageHandler) adminUserInfo() error {
	if h.Text() == btnBack {
		return h.adminPanel()
	}

	telegramID, err := strconv.ParseInt(strings.TrimSpace(h.Text()), 10, 64)
	if err != nil {
		h.send(textUserNotFound, &sendOpts{parseMode: "Markdown"})
		return nil
	}
	target, err := h.deps.Users.ByTelegramID(h.ctx, telegramID)
	if err != nil {
		if store.IsNotFound(err) {
			h.send(textUserNotFound, &sendOpts{parseMode: "Markdown"})
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	msg, err := h.deps.Ref.RenderTemplate(h.ctx, tplUserInfo, map[string]string{
		"user_id":       h.Text(),
		"plan_title":    target.SubscriptionInfo(),
		"last_plan":     "1",
		"payment_count": "1",
	})
	if err != nil {
		return fmt.Errorf("user info template: %w", err)
	}
	h.send(msg, &sendOpts{parseMode: "Markdown", markup: backKeyboard()})
	return nil
}

func sessionInfoText(session *model.ContentSession, episodeCount int) string {
	typeName := contentTypeMovieFa
	if session.ContentType == model.ContentTypeSeries {
		typeName = contentTypeSeriesFa
	}
	return fmt.Sprintf(textSessionInfo, session.Title, episodeCount, typeName)
}
