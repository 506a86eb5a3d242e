package bot

import (
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"serialbox/internal/model"
	"serialbox/internal/telegram/keyboard"
)

func homeKeyboard() *tele.ReplyMarkup {
	return keyboard.Reply([]string{btnBuyPlan, btnAccountInfo})
}

func backKeyboard() *tele.ReplyMarkup {
	return keyboard.Reply([]string{btnBack})
}

func adminHomeKeyboard() *tele.ReplyMarkup {
	return keyboard.Reply([]string{btnAdminUpload, btnAdminUser})
}

func adminUploadKeyboard() *tele.ReplyMarkup {
	return keyboard.Reply(
		[]string{btnUploadMovie, btnUploadSeries},
		[]string{btnBack},
	)
}

func cancelUploadKeyboard() *tele.ReplyMarkup {
	return keyboard.Reply(
		[]string{btnFinishUpload},
		[]string{btnCancelUpload},
	)
}

// sponsorKeyboard lists join links for the channels the user is missing,
// followed by a membership re-check button.
func sponsorKeyboard(channels []model.SponsorChannel) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, len(channels)+1)
	for _, ch := range channels {
		rows = append(rows, []tele.InlineButton{keyboard.URL(ch.Name, ch.Link)})
	}
	rows = append(rows, []tele.InlineButton{keyboard.Data(btnConfirmJoin, "joined_to_sponsor")})
	return keyboard.Inline(rows...)
}

func payPlanKeyboard(plans []model.Plan) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, len(plans))
	for _, p := range plans {
		label := fmt.Sprintf("%s - %d ریال", p.Name, p.PriceRial)
		rows = append(rows, []tele.InlineButton{
			keyboard.Data(label, "pay:"+strconv.FormatInt(p.ID, 10)),
		})
	}
	return keyboard.Inline(rows...)
}

// editSessionKeyboard drives the admin session-management screen. One delete
// button per episode, then add-episode and delete-session rows.
func editSessionKeyboard(session *model.ContentSession, episodes []model.Episode) *tele.ReplyMarkup {
	sid := strconv.FormatInt(session.ID, 10)
	rows := make([][]tele.InlineButton, 0, len(episodes)+2)
	for _, ep := range episodes {
		label := fmt.Sprintf("%s E%d", btnDeleteEpisode, ep.Ord)
		rows = append(rows, []tele.InlineButton{
			keyboard.Data(label, "edit_session:delete_e:"+strconv.FormatInt(ep.ID, 10)),
		})
	}
	rows = append(rows,
		[]tele.InlineButton{keyboard.Data(btnAddEpisode, "edit_session:add_e:"+sid)},
		[]tele.InlineButton{keyboard.Data(btnDeleteSession, "edit_session:delete_s:"+sid)},
	)
	return keyboard.Inline(rows...)
}

// sureDeleteKeyboard asks for confirmation before destroying a session ("s")
// or an episode ("e").
func sureDeleteKeyboard(objectType string, objectID int64) *tele.ReplyMarkup {
	id := strconv.FormatInt(objectID, 10)
	return keyboard.Inline([]tele.InlineButton{
		keyboard.Data(btnYes, "sure_delete_object:yes:"+objectType+":"+id),
		keyboard.Data(btnNo, "sure_delete_object:no:"+objectType+":"+id),
	})
}
