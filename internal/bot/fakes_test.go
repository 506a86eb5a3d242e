package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tele "gopkg.in/telebot.v4"

	"serialbox/core/config"
	"serialbox/internal/model"
	"serialbox/internal/step"
	"serialbox/internal/store"
	"serialbox/internal/telegram"
)

type fakeUsers struct {
	byTelegramID map[int64]*model.User
	nextID       int64
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{byTelegramID: map[int64]*model.User{}, nextID: 1}
	for _, u := range users {
		if u.ID >= f.nextID {
			f.nextID = u.ID + 1
		}
		f.byTelegramID[u.TelegramID] = u
	}
	return f
}

func (f *fakeUsers) GetOrCreate(_ context.Context, telegramID int64, d store.NewUserDefaults) (*model.User, error) {
	if u, ok := f.byTelegramID[telegramID]; ok {
		return u, nil
	}
	u := &model.User{
		ID:         f.nextID,
		TelegramID: telegramID,
		Username:   d.Username,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Step:       step.Home,
		IsActive:   true,
	}
	f.nextID++
	f.byTelegramID[telegramID] = u
	return u, nil
}

func (f *fakeUsers) ByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	if u, ok := f.byTelegramID[telegramID]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) SetStep(_ context.Context, userID int64, st step.Step) error {
	for _, u := range f.byTelegramID {
		if u.ID == userID {
			u.Step = st.String()
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeContent struct {
	sessions map[int64]*model.ContentSession
	episodes map[int64]*model.Episode
	nextID   int64
}

func newFakeContent() *fakeContent {
	return &fakeContent{
		sessions: map[int64]*model.ContentSession{},
		episodes: map[int64]*model.Episode{},
		nextID:   1,
	}
}

func (f *fakeContent) addSession(title, contentType, link string) *model.ContentSession {
	s := &model.ContentSession{ID: f.nextID, Title: title, ContentType: contentType, Link: link}
	f.nextID++
	f.sessions[s.ID] = s
	return s
}

func (f *fakeContent) addEpisode(sessionID int64, link string, messageID int) *model.Episode {
	ord := 0
	for _, e := range f.episodes {
		if e.SessionID == sessionID && e.Ord > ord {
			ord = e.Ord
		}
	}
	e := &model.Episode{ID: f.nextID, SessionID: sessionID, Link: link, MessageID: messageID, Ord: ord + 1}
	f.nextID++
	f.episodes[e.ID] = e
	return e
}

func (f *fakeContent) CreateSession(_ context.Context, title, contentType string) (*model.ContentSession, error) {
	return f.addSession(title, contentType, fmt.Sprintf("S_fake%d", f.nextID)), nil
}

func (f *fakeContent) SessionByID(_ context.Context, id int64) (*model.ContentSession, error) {
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeContent) SessionByLink(_ context.Context, link string) (*model.ContentSession, error) {
	for _, s := range f.sessions {
		if s.Link == link {
			return s, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeContent) DeleteSession(_ context.Context, id int64) error {
	delete(f.sessions, id)
	for eid, e := range f.episodes {
		if e.SessionID == id {
			delete(f.episodes, eid)
		}
	}
	return nil
}

func (f *fakeContent) IncrementViews(_ context.Context, id int64) error {
	if s, ok := f.sessions[id]; ok {
		s.ViewCount++
	}
	return nil
}

func (f *fakeContent) CreateEpisode(_ context.Context, sessionID int64, messageID int) (*model.Episode, error) {
	return f.addEpisode(sessionID, fmt.Sprintf("E_fake%d", f.nextID), messageID), nil
}

func (f *fakeContent) EpisodesBySession(_ context.Context, sessionID int64) ([]model.Episode, error) {
	var out []model.Episode
	for _, e := range f.episodes {
		if e.SessionID == sessionID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ord < out[j].Ord })
	return out, nil
}

func (f *fakeContent) EpisodeByID(_ context.Context, id int64) (*model.Episode, error) {
	if e, ok := f.episodes[id]; ok {
		return e, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeContent) EpisodeByLink(_ context.Context, link string) (*model.Episode, error) {
	for _, e := range f.episodes {
		if e.Link == link {
			return e, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeContent) DeleteEpisode(_ context.Context, id int64) error {
	delete(f.episodes, id)
	return nil
}

type fakeRef struct {
	status    model.BotStatus
	channels  []model.SponsorChannel
	plans     []model.Plan
	templates map[string]string
}

func newFakeRef() *fakeRef {
	return &fakeRef{status: model.BotStatus{ID: 1}, templates: map[string]string{}}
}

func (f *fakeRef) BotStatus(context.Context) (*model.BotStatus, error) {
	st := f.status
	return &st, nil
}

func (f *fakeRef) SponsorChannels(context.Context) ([]model.SponsorChannel, error) {
	return f.channels, nil
}

func (f *fakeRef) ActivePlans(context.Context) ([]model.Plan, error) { return f.plans, nil }

func (f *fakeRef) PlanByID(_ context.Context, id int64) (*model.Plan, error) {
	for i := range f.plans {
		if f.plans[i].ID == id {
			return &f.plans[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeRef) Template(_ context.Context, name string) (string, error) {
	if t, ok := f.templates[name]; ok {
		return t, nil
	}
	return "", store.ErrNotFound
}

func (f *fakeRef) RenderTemplate(ctx context.Context, name string, args map[string]string) (string, error) {
	t, err := f.Template(ctx, name)
	if err != nil {
		return "", err
	}
	return store.RenderText(t, args), nil
}

type sentMessage struct {
	chatID int64
	text   string
	markup *tele.ReplyMarkup
}

type copiedMessage struct {
	toChat    string
	fromChat  string
	messageID int
	caption   string
}

// fakeAPI records outbound Bot API traffic.
type fakeAPI struct {
	sent    []sentMessage
	edited  []sentMessage
	deleted []int
	copied  []copiedMessage

	member  func(channelID string, userID int64) bool
	copyErr error
	nextMsg int
}

func (f *fakeAPI) SendMessage(_ context.Context, chatID int64, text string, opts *telegram.SendOptions) (int, error) {
	m := sentMessage{chatID: chatID, text: text}
	if opts != nil {
		m.markup = opts.ReplyMarkup
	}
	f.sent = append(f.sent, m)
	f.nextMsg++
	return f.nextMsg, nil
}

func (f *fakeAPI) EditMessageText(_ context.Context, chatID int64, messageID int, text string, opts *telegram.SendOptions) error {
	m := sentMessage{chatID: chatID, text: text}
	if opts != nil {
		m.markup = opts.ReplyMarkup
	}
	f.edited = append(f.edited, m)
	return nil
}

func (f *fakeAPI) DeleteMessage(_ context.Context, chatID int64, messageID int) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeAPI) CopyMessage(_ context.Context, toChat, fromChat string, messageID int, opts *telegram.CopyOptions) (int, error) {
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	c := copiedMessage{toChat: toChat, fromChat: fromChat, messageID: messageID}
	if opts != nil {
		c.caption = opts.Caption
	}
	f.copied = append(f.copied, c)
	f.nextMsg++
	return f.nextMsg, nil
}

func (f *fakeAPI) IsChannelMember(_ context.Context, channelID string, userID int64) (bool, error) {
	if f.member == nil {
		return true, nil
	}
	return f.member(channelID, userID), nil
}

func (f *fakeAPI) lastSent() sentMessage {
	if len(f.sent) == 0 {
		return sentMessage{}
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeAPI) sentContaining(sub string) bool {
	for _, m := range f.sent {
		if strings.Contains(m.text, sub) {
			return true
		}
	}
	return false
}

// testEnv bundles the fakes behind a Deps ready for dispatching.
type testEnv struct {
	users   *fakeUsers
	content *fakeContent
	ref     *fakeRef
	api     *fakeAPI
	deps    *Deps
}

func newTestEnv(users ...*model.User) *testEnv {
	e := &testEnv{
		users:   newFakeUsers(users...),
		content: newFakeContent(),
		ref:     newFakeRef(),
		api:     &fakeAPI{},
	}
	e.deps = &Deps{
		Users:   e.users,
		Content: e.content,
		Ref:     e.ref,
		API:     e.api,
		Cfg: config.ContentConfig{
			BackupChannelID: "-1001",
			LinkBaseURL:     "https://t.me/test_bot?start=",
		},
	}
	return e
}

func (e *testEnv) dispatch(upd *tele.Update) {
	NewDispatcher(e.deps).Dispatch(context.Background(), upd)
}

func textUpdate(from int64, text string) *tele.Update {
	return &tele.Update{Message: &tele.Message{
		ID:     100,
		Text:   text,
		Sender: &tele.User{ID: from, Username: "tester"},
		Chat:   &tele.Chat{ID: from, Type: tele.ChatPrivate},
	}}
}

func photoUpdate(from int64, caption string) *tele.Update {
	return &tele.Update{Message: &tele.Message{
		ID:      101,
		Caption: caption,
		Photo:   &tele.Photo{File: tele.File{FileID: "p1"}},
		Sender:  &tele.User{ID: from, Username: "tester"},
		Chat:    &tele.Chat{ID: from, Type: tele.ChatPrivate},
	}}
}

func callbackUpdate(from int64, data string) *tele.Update {
	return &tele.Update{Callback: &tele.Callback{
		ID:     "cb1",
		Data:   data,
		Sender: &tele.User{ID: from, Username: "tester"},
		Message: &tele.Message{
			ID:   200,
			Chat: &tele.Chat{ID: from, Type: tele.ChatPrivate},
		},
	}}
}

func superuser(telegramID int64) *model.User {
	return &model.User{
		ID:          1,
		TelegramID:  telegramID,
		Step:        step.Home,
		IsActive:    true,
		IsSuperuser: true,
	}
}
