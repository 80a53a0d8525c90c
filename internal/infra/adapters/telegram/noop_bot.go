package telegram

import (
	"context"

	"github.com/rs/zerolog"

	"leads-relay-bot/internal/domain/ports/adapter"
)

var _ adapter.TelegramBotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter implements adapter.TelegramBotAdapter for local/dev runs.
// It logs messages instead of sending real Telegram messages.
type NoopBotAdapter struct {
	log *zerolog.Logger
}

func NewNoopBotAdapter(logger *zerolog.Logger) *NoopBotAdapter {
	l := logger.With().Str("component", "noop-telegram").Logger()
	return &NoopBotAdapter{log: &l}
}

func (b *NoopBotAdapter) SendMessage(ctx context.Context, tgID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.log.Info().Int64("tg_id", tgID).Str("text", text).Msg("send message")
	return nil
}

func (b *NoopBotAdapter) SendButtons(ctx context.Context, tgID int64, text string, rows [][]adapter.InlineButton) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.log.Info().Int64("tg_id", tgID).Str("text", text).Interface("buttons", rows).Msg("send buttons")
	return nil
}

// StartPolling blocks until ctx ends; there is nothing to poll in dev mode.
func (b *NoopBotAdapter) StartPolling(ctx context.Context) error {
	b.log.Warn().Msg("dev mode: telegram polling disabled")
	<-ctx.Done()
	return ctx.Err()
}

func (b *NoopBotAdapter) StopPolling() {}
