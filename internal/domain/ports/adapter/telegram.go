// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

// InlineButton is one button of an inline keyboard. Exactly one of Data, URL
// or WebAppURL is expected; WebAppURL opens the Mini App inside Telegram and
// must be https.
type InlineButton struct {
	Text      string
	Data      string
	URL       string
	WebAppURL string
}

type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, telegramID int64, text string) error
	SendButtons(ctx context.Context, telegramID int64, text string, rows [][]InlineButton) error
}
