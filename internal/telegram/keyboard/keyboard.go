// Package keyboard provides small builders for telebot reply and inline
// markups so handlers can describe keyboards as plain rows.
package keyboard

import tele "gopkg.in/telebot.v4"

// Reply builds a resized reply keyboard from rows of button labels.
func Reply(rows ...[]string) *tele.ReplyMarkup {
	kb := make([][]tele.ReplyButton, 0, len(rows))
	for _, row := range rows {
		btns := make([]tele.ReplyButton, 0, len(row))
		for _, label := range row {
			btns = append(btns, tele.ReplyButton{Text: label})
		}
		kb = append(kb, btns)
	}
	return &tele.ReplyMarkup{ReplyKeyboard: kb, ResizeKeyboard: true}
}

// Inline builds an inline keyboard from pre-assembled button rows.
func Inline(rows ...[]tele.InlineButton) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

// Data makes a callback button. Handlers pack routing segments into data
// with ":" separators, so labels never carry the separator.
func Data(text, data string) tele.InlineButton {
	return tele.InlineButton{Text: text, Data: data}
}

// URL makes a link button.
func URL(text, url string) tele.InlineButton {
	return tele.InlineButton{Text: text, URL: url}
}
