package bot

import (
	"context"
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestRouteClassification(t *testing.T) {
	cases := []struct {
		name string
		upd  *tele.Update
		want string
	}{
		{"command", textUpdate(10, "/start"), "command"},
		{"slash_prefix_only", textUpdate(10, "/whatever"), "command"},
		{"plain_text", textUpdate(10, "hello"), "message"},
		{"media", photoUpdate(10, ""), "media"},
		{"callback", callbackUpdate(10, "pay:1"), "callback"},
		{"empty_update", &tele.Update{}, "message"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv()
			d := NewDispatcher(env.deps)
			kind, err := d.route(newContext(context.Background(), tc.upd, env.deps))
			if err != nil {
				t.Fatalf("route: %v", err)
			}
			if kind != tc.want {
				t.Fatalf("kind = %q, want %q", kind, tc.want)
			}
		})
	}
}

// A media message whose caption starts with "/" is still media, not a command.
func TestRouteCaptionIsNotCommand(t *testing.T) {
	env := newTestEnv()
	upd := photoUpdate(10, "/start")
	kind, err := NewDispatcher(env.deps).route(newContext(context.Background(), upd, env.deps))
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if kind != "media" {
		t.Fatalf("kind = %q, want media", kind)
	}
}

func TestDispatchAbsorbsHandlerErrors(t *testing.T) {
	env := newTestEnv(superuser(10))
	env.users.byTelegramID[10].Step = "get_episode:notanumber"

	// Must not panic and must not send anything on a malformed step arg.
	env.dispatch(photoUpdate(10, ""))
	if len(env.api.copied) != 0 {
		t.Fatalf("unexpected copy calls: %v", env.api.copied)
	}
}

func TestMediaKindPriority(t *testing.T) {
	m := &tele.Message{
		Photo: &tele.Photo{File: tele.File{FileID: "p"}},
		Video: &tele.Video{File: tele.File{FileID: "v"}},
	}
	c := newContext(context.Background(), &tele.Update{Message: m}, nil)
	if got := c.MediaKind(); got != "photo" {
		t.Fatalf("MediaKind = %q, want photo", got)
	}

	m = &tele.Message{Voice: &tele.Voice{File: tele.File{FileID: "x"}}}
	c = newContext(context.Background(), &tele.Update{Message: m}, nil)
	if got := c.MediaKind(); got != "voice" {
		t.Fatalf("MediaKind = %q, want voice", got)
	}

	c = newContext(context.Background(), textUpdate(1, "hi"), nil)
	if c.HasMedia() {
		t.Fatal("text message reported as media")
	}
}
