package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type commandHandler func(ctx context.Context, message *tgbotapi.Message) error

// commandRoutes defines all available bot commands and their handlers.
func (r *RealTelegramBotAdapter) commandRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		"start":   r.handleStartCommand,
		"help":    r.handleHelpCommand,
		"stats":   r.handleStatsCommand,
		"balance": r.handleBalanceCommand,
	}
}

// handleStartCommand registers the user (best effort) and always greets.
func (r *RealTelegramBotAdapter) handleStartCommand(ctx context.Context, message *tgbotapi.Message) error {
	from := message.From
	fullName := strings.TrimSpace(from.FirstName + " " + from.LastName)

	// failures are logged by the use case; the greeting goes out regardless
	_, _ = r.userUC.Register(ctx, from.ID, from.UserName, fullName)

	name := strings.TrimSpace(from.FirstName)
	if name == "" {
		name = r.translator.T("default_name")
	}
	return r.SendButtons(ctx, message.Chat.ID, r.translator.T("welcome", name), r.mainMenu(from.ID))
}

func (r *RealTelegramBotAdapter) handleHelpCommand(ctx context.Context, message *tgbotapi.Message) error {
	return r.SendMessage(ctx, message.Chat.ID, r.translator.T("help"))
}

func (r *RealTelegramBotAdapter) handleStatsCommand(ctx context.Context, message *tgbotapi.Message) error {
	return r.sendStats(ctx, message.Chat.ID, message.From.ID)
}

func (r *RealTelegramBotAdapter) handleBalanceCommand(ctx context.Context, message *tgbotapi.Message) error {
	return r.sendBalance(ctx, message.Chat.ID, message.From.ID)
}
