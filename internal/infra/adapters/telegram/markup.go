package telegram

import (
	"strings"

	"leads-relay-bot/internal/domain/ports/adapter"
)

// tgbotapi v5.5.1 predates web_app buttons, so the keyboard is rendered by
// hand. MessageConfig.ReplyMarkup is JSON-encoded as-is.
type inlineKeyboard struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type inlineButton struct {
	Text         string      `json:"text"`
	URL          string      `json:"url,omitempty"`
	CallbackData string      `json:"callback_data,omitempty"`
	WebApp       *webAppInfo `json:"web_app,omitempty"`
}

type webAppInfo struct {
	URL string `json:"url"`
}

func newInlineKeyboard(rows [][]adapter.InlineButton) inlineKeyboard {
	kb := inlineKeyboard{InlineKeyboard: make([][]inlineButton, 0, len(rows))}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		out := make([]inlineButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			b := inlineButton{Text: label}
			switch {
			case btn.WebAppURL != "":
				b.WebApp = &webAppInfo{URL: btn.WebAppURL}
			case btn.URL != "":
				b.URL = btn.URL
			case btn.Data != "":
				b.CallbackData = btn.Data
			default:
				// Telegram rejects buttons without an action
				continue
			}
			out = append(out, b)
		}
		if len(out) > 0 {
			kb.InlineKeyboard = append(kb.InlineKeyboard, out)
		}
	}
	return kb
}
