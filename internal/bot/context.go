package bot

import (
	"context"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"serialbox/internal/model"
	"serialbox/internal/step"
	"serialbox/internal/store"
)

// Context carries one update through the gate chain and handlers. The bot
// user row is loaded lazily and only for private chats, so group noise never
// touches the users table.
type Context struct {
	ctx  context.Context
	upd  *tele.Update
	deps *Deps

	userLoaded bool
	user       *model.User
	userErr    error
}

func newContext(ctx context.Context, upd *tele.Update, deps *Deps) *Context {
	return &Context{ctx: ctx, upd: upd, deps: deps}
}

func (c *Context) Ctx() context.Context { return c.ctx }

func (c *Context) Message() *tele.Message {
	if c.upd.Message != nil {
		return c.upd.Message
	}
	if c.upd.Callback != nil {
		return c.upd.Callback.Message
	}
	return nil
}

func (c *Context) Callback() *tele.Callback { return c.upd.Callback }

func (c *Context) Sender() *tele.User {
	if c.upd.Callback != nil {
		return c.upd.Callback.Sender
	}
	if c.upd.Message != nil {
		return c.upd.Message.Sender
	}
	return nil
}

func (c *Context) Chat() *tele.Chat {
	if m := c.Message(); m != nil {
		return m.Chat
	}
	return nil
}

func (c *Context) ChatID() int64 {
	if ch := c.Chat(); ch != nil {
		return ch.ID
	}
	return 0
}

func (c *Context) chatRecipient() string {
	return strconv.FormatInt(c.ChatID(), 10)
}

func (c *Context) IsPrivate() bool {
	ch := c.Chat()
	return ch != nil && ch.Type == tele.ChatPrivate
}

func (c *Context) IsGroup() bool {
	ch := c.Chat()
	return ch != nil && (ch.Type == tele.ChatGroup || ch.Type == tele.ChatSuperGroup)
}

func (c *Context) Text() string {
	if c.upd.Message != nil {
		return c.upd.Message.Text
	}
	return ""
}

// IsCommand reports whether the message text is a slash command. Media
// captions do not count.
func (c *Context) IsCommand() bool {
	return c.upd.Message != nil && strings.HasPrefix(c.upd.Message.Text, "/")
}

// mediaKinds is the detection priority when a message carries media.
var mediaKinds = []struct {
	name string
	has  func(*tele.Message) bool
}{
	{"photo", func(m *tele.Message) bool { return m.Photo != nil }},
	{"audio", func(m *tele.Message) bool { return m.Audio != nil }},
	{"video", func(m *tele.Message) bool { return m.Video != nil }},
	{"voice", func(m *tele.Message) bool { return m.Voice != nil }},
	{"document", func(m *tele.Message) bool { return m.Document != nil }},
	{"sticker", func(m *tele.Message) bool { return m.Sticker != nil }},
	{"animation", func(m *tele.Message) bool { return m.Animation != nil }},
	{"video_note", func(m *tele.Message) bool { return m.VideoNote != nil }},
}

// MediaKind returns the highest-priority media kind of the inbound message,
// or "" when it carries none.
func (c *Context) MediaKind() string {
	m := c.upd.Message
	if m == nil {
		return ""
	}
	for _, k := range mediaKinds {
		if k.has(m) {
			return k.name
		}
	}
	return ""
}

func (c *Context) HasMedia() bool { return c.MediaKind() != "" }

// User returns the persisted bot user for the sender, creating the row on
// first contact. Only private-chat senders get a row.
func (c *Context) User() (*model.User, error) {
	if c.userLoaded {
		return c.user, c.userErr
	}
	c.userLoaded = true

	sender := c.Sender()
	if sender == nil || !c.IsPrivate() {
		return nil, nil
	}
	c.user, c.userErr = c.deps.Users.GetOrCreate(c.ctx, sender.ID, store.NewUserDefaults{
		Username:  sender.Username,
		FirstName: sender.FirstName,
		LastName:  sender.LastName,
	})
	return c.user, c.userErr
}

// Step returns the sender's parsed conversation step, or the zero step when
// no user row applies.
func (c *Context) Step() step.Step {
	u, err := c.User()
	if err != nil || u == nil {
		return step.Step{}
	}
	return step.Parse(u.Step)
}

// SetStep persists a new step for the current user and keeps the cached row
// in sync.
func (c *Context) SetStep(st step.Step) error {
	u, err := c.User()
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	if err := c.deps.Users.SetStep(c.ctx, u.ID, st); err != nil {
		return err
	}
	u.Step = st.String()
	return nil
}
