package bot

import (
	"strings"

	"serialbox/internal/step"
)

// commandHandler serves bot commands. /start doubles as the share-link entry
// point: "/start S_<token>" or "/start E_<token>" delivers content instead of
// showing the home screen.
type commandHandler struct {
	*Context
}

func newCommandHandler(c *Context) *commandHandler {
	return &commandHandler{Context: c}
}

func (h *commandHandler) Handle() error {
	if h.runGates() {
		return nil
	}

	text := h.Text()
	switch {
	case strings.HasPrefix(text, "/start"):
		return h.sponsorRequired(h.start)()
	case strings.HasPrefix(text, "/help"):
		return h.help()
	case strings.HasPrefix(text, "/admin"):
		return h.admin()
	}
	return nil
}

func (h *commandHandler) start() error {
	payload := strings.TrimSpace(strings.TrimPrefix(h.Text(), "/start"))
	if strings.HasPrefix(payload, "S_") || strings.HasPrefix(payload, "E_") {
		return h.deliver(payload)
	}

	if err := h.SetStep(step.Step{Name: step.Home}); err != nil {
		return err
	}
	var replyTo int
	if m := h.Message(); m != nil {
		replyTo = m.ID
	}
	h.send(textHome, &sendOpts{markup: homeKeyboard(), replyTo: replyTo})
	return nil
}

func (h *commandHandler) help() error {
	h.send(textHelp, nil)
	return nil
}

func (h *commandHandler) admin() error {
	u, err := h.User()
	if err != nil || u == nil || !u.IsSuperuser {
		return err
	}
	return newAdminMessageHandler(h.Context).adminPanel()
}
