package bot

import (
	"fmt"
	"strings"
	"testing"

	"serialbox/internal/model"
	"serialbox/internal/step"
)

func TestHomeBuyPlan(t *testing.T) {
	env := newTestEnv()
	env.ref.templates[tplPaymentPlans] = "pick a plan"
	env.ref.plans = []model.Plan{
		{ID: 1, Name: "monthly", PriceRial: 500000, DurationDays: 30, IsActive: true},
		{ID: 2, Name: "yearly", PriceRial: 4000000, DurationDays: 365, IsActive: true},
	}

	env.dispatch(textUpdate(10, btnBuyPlan))

	last := env.api.lastSent()
	if last.text != "pick a plan" {
		t.Fatalf("sent %q, want plan list message", last.text)
	}
	if last.markup == nil || len(last.markup.InlineKeyboard) != 2 {
		t.Fatalf("plan keyboard = %v, want one row per plan", last.markup)
	}
	if got := last.markup.InlineKeyboard[0][0].Data; got != "pay:1" {
		t.Fatalf("plan button data = %q, want pay:1", got)
	}
}

func TestHomeAccountInfo(t *testing.T) {
	env := newTestEnv()
	env.ref.templates[tplPlanInfo] = "id={user_id} plan={plan_days}"

	env.dispatch(textUpdate(10, btnAccountInfo))

	want := fmt.Sprintf("id=10 plan=%s", textPlanNone)
	if got := env.api.lastSent().text; got != want {
		t.Fatalf("sent %q, want %q", got, want)
	}
}

// Walks the whole wizard: pick movie upload, send a title, send a file,
// finish. Each stage must advance the persisted step.
func TestUploadWizard(t *testing.T) {
	admin := superuser(10)
	admin.Step = step.AdminHome
	env := newTestEnv(admin)

	env.dispatch(textUpdate(10, btnAdminUpload))
	if admin.Step != step.AdminUpload {
		t.Fatalf("step = %q, want %q", admin.Step, step.AdminUpload)
	}

	env.dispatch(textUpdate(10, btnUploadMovie))
	if admin.Step != "get_title:movie" {
		t.Fatalf("step = %q, want get_title:movie", admin.Step)
	}

	env.dispatch(textUpdate(10, "The Big Short"))
	if len(env.content.sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(env.content.sessions))
	}
	var session *model.ContentSession
	for _, s := range env.content.sessions {
		session = s
	}
	if session.Title != "The Big Short" || session.ContentType != model.ContentTypeMovie {
		t.Fatalf("session = %+v", session)
	}
	wantStep := fmt.Sprintf("get_episode:%d", session.ID)
	if admin.Step != wantStep {
		t.Fatalf("step = %q, want %q", admin.Step, wantStep)
	}

	env.dispatch(photoUpdate(10, "cut one"))
	if len(env.content.episodes) != 1 {
		t.Fatalf("episodes = %d, want 1", len(env.content.episodes))
	}
	if env.api.copied[0].toChat != "-1001" {
		t.Fatalf("media copied to %q, want backup channel", env.api.copied[0].toChat)
	}
	if !env.api.sentContaining("[E-1]") {
		t.Fatal("episode link not sent back to admin")
	}

	env.dispatch(textUpdate(10, btnFinishUpload))
	if admin.Step != step.AdminHome {
		t.Fatalf("step = %q, want %q after finish", admin.Step, step.AdminHome)
	}
	if !env.api.sentContaining(session.Link) {
		t.Fatal("session share link missing from summary")
	}
}

func TestUploadWizardCancelDeletesSession(t *testing.T) {
	admin := superuser(10)
	env := newTestEnv(admin)
	s := env.content.addSession("Doomed", "series", "S_doom")
	env.content.addEpisode(s.ID, "E_d1", 900)
	admin.Step = fmt.Sprintf("get_episode:%d", s.ID)

	env.dispatch(textUpdate(10, btnCancelUpload))

	if len(env.content.sessions) != 0 {
		t.Fatal("session not deleted on cancel")
	}
	if len(env.content.episodes) != 0 {
		t.Fatal("episodes not cascaded on cancel")
	}
	if admin.Step != step.AdminUpload {
		t.Fatalf("step = %q, want %q", admin.Step, step.AdminUpload)
	}
}

func TestExtraCaptionAppended(t *testing.T) {
	admin := superuser(10)
	env := newTestEnv(admin)
	env.deps.Cfg.ExtraCaption = "\n@serialbox"
	s := env.content.addSession("Captioned", "movie", "S_cap")
	admin.Step = fmt.Sprintf("get_episode:%d", s.ID)

	env.dispatch(photoUpdate(10, "original"))

	if got := env.api.copied[0].caption; got != "original\n@serialbox" {
		t.Fatalf("caption = %q", got)
	}
}

func TestMediaCopyFailureKeepsSessionClean(t *testing.T) {
	admin := superuser(10)
	env := newTestEnv(admin)
	env.api.copyErr = fmt.Errorf("bad request")
	s := env.content.addSession("Flaky", "movie", "S_fk")
	admin.Step = fmt.Sprintf("get_episode:%d", s.ID)

	env.dispatch(photoUpdate(10, ""))

	if len(env.content.episodes) != 0 {
		t.Fatal("episode recorded despite failed copy")
	}
	if got := env.api.lastSent().text; got != textUploadFailed {
		t.Fatalf("sent %q, want upload failure notice", got)
	}
	if !strings.HasPrefix(admin.Step, step.GetEpisode) {
		t.Fatalf("step = %q, wizard should stay on get_episode", admin.Step)
	}
}

func TestMediaIgnoredForRegularUser(t *testing.T) {
	env := newTestEnv()
	env.dispatch(photoUpdate(10, "random photo"))
	if len(env.api.copied) != 0 {
		t.Fatal("regular user media was copied")
	}
}

func TestAdminUserInfo(t *testing.T) {
	admin := superuser(10)
	admin.Step = step.AdminUserInfo
	target := &model.User{ID: 2, TelegramID: 777, Step: step.Home, IsActive: true}
	env := newTestEnv(admin, target)
	env.ref.templates[tplUserInfo] = "user {user_id}: {plan_title}"

	env.dispatch(textUpdate(10, "777"))

	want := fmt.Sprintf("user 777: %s", model.SubscriptionNone)
	if got := env.api.lastSent().text; got != want {
		t.Fatalf("sent %q, want %q", got, want)
	}
}

func TestAdminUserInfoUnknownUser(t *testing.T) {
	admin := superuser(10)
	admin.Step = step.AdminUserInfo
	env := newTestEnv(admin)

	env.dispatch(textUpdate(10, "999"))

	if got := env.api.lastSent().text; got != textUserNotFound {
		t.Fatalf("sent %q, want %q", got, textUserNotFound)
	}
}

func TestAdminStepsIgnoredForRegularUser(t *testing.T) {
	u := &model.User{ID: 1, TelegramID: 10, Step: step.AdminHome, IsActive: true}
	env := newTestEnv(u)

	env.dispatch(textUpdate(10, btnAdminUpload))

	if len(env.api.sent) != 0 {
		t.Fatalf("non-superuser drove admin flow: %v", env.api.sent)
	}
	if u.Step != step.AdminHome {
		t.Fatalf("step changed to %q", u.Step)
	}
}
