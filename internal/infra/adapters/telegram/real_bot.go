package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"leads-relay-bot/internal/config"
	"leads-relay-bot/internal/domain/model"
	"leads-relay-bot/internal/domain/ports/adapter"
	"leads-relay-bot/internal/infra/i18n"
	"leads-relay-bot/internal/infra/logging"
	"leads-relay-bot/internal/infra/metrics"
	red "leads-relay-bot/internal/infra/redis"
	"leads-relay-bot/internal/infra/worker"
	"leads-relay-bot/internal/usecase"
)

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

const (
	pollTimeoutSec = 60
	// must outlast the long-poll, sends are bounded by their ctx
	apiHTTPTimeout = (pollTimeoutSec + 30) * time.Second
)

// botAPI is the part of *tgbotapi.BotAPI the adapter uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// RealTelegramBotAdapter long-polls Telegram and maps commands and inline
// button presses onto the user use case.
type RealTelegramBotAdapter struct {
	bot         botAPI
	cfg         *config.BotConfig
	userUC      usecase.UserUseCase
	translator  *i18n.Translator
	rateLimiter *red.RateLimiter
	log         *zerolog.Logger

	secureApp bool

	mu            sync.Mutex
	cancelPolling context.CancelFunc
}

func NewRealTelegramBotAdapter(cfg *config.BotConfig, userUC usecase.UserUseCase, translator *i18n.Translator, rateLimiter *red.RateLimiter, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, &http.Client{Timeout: apiHTTPTimeout})
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	bot.Debug = cfg.Debug
	logger.Info().Str("bot", bot.Self.UserName).Msg("authorized on telegram")

	return newAdapter(bot, cfg, userUC, translator, rateLimiter, logger)
}

func newAdapter(bot botAPI, cfg *config.BotConfig, userUC usecase.UserUseCase, translator *i18n.Translator, rateLimiter *red.RateLimiter, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if userUC == nil {
		return nil, errors.New("user use case is nil")
	}
	if translator == nil {
		return nil, errors.New("translator is nil")
	}
	l := logger.With().Str("component", "telegram").Logger()
	return &RealTelegramBotAdapter{
		bot:         bot,
		cfg:         cfg,
		userUC:      userUC,
		translator:  translator,
		rateLimiter: rateLimiter,
		log:         &l,
		secureApp:   cfg.SecureWebApp(),
	}, nil
}

// StartPolling drops any webhook (and the updates queued while the bot was
// down), then feeds updates to a worker pool until ctx is cancelled.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	err := r.call(ctx, func() error {
		_, err := r.bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true})
		return err
	})
	if err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	if err := r.SetMenuCommands(ctx); err != nil {
		r.log.Warn().Err(err).Msg("failed to set menu commands")
	}

	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancelPolling = cancel
	r.mu.Unlock()
	defer cancel()

	pool := worker.NewPool(r.cfg.Workers, r.log)
	pool.Start(ctx)
	defer pool.Stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSec
	updates := r.bot.GetUpdatesChan(u)
	defer r.bot.StopReceivingUpdates()

	r.log.Info().Int("workers", r.cfg.Workers).Bool("web_app_buttons", r.secureApp).Msg("polling started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case up, ok := <-updates:
			if !ok {
				return errors.New("telegram updates channel closed")
			}
			if err := pool.Submit(ctx, func(ctx context.Context) error {
				return r.dispatch(ctx, up)
			}); err != nil {
				return ctx.Err()
			}
		}
	}
}

func (r *RealTelegramBotAdapter) StopPolling() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// dispatch tags the context for logging and hands the update to its handler.
func (r *RealTelegramBotAdapter) dispatch(ctx context.Context, up tgbotapi.Update) error {
	ctx = logging.WithTraceID(ctx, uuid.NewString())
	ctx = logging.WithUpdateID(ctx, up.UpdateID)
	if from := up.SentFrom(); from != nil {
		ctx = logging.WithTgID(ctx, from.ID)
	}
	start := time.Now()
	err := r.handleUpdate(ctx, up)
	log := logging.With(ctx, r.log)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("update failed")
		return nil
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("update handled")
	return nil
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		return r.handleQuery(ctx, update.CallbackQuery)
	}

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return nil
	}

	if !r.allow(ctx, msg.From.ID) {
		return r.SendMessage(ctx, msg.Chat.ID, r.translator.T("rate_limited"))
	}

	if !msg.IsCommand() {
		return r.SendMessage(ctx, msg.Chat.ID, r.translator.T("help"))
	}

	cmd := msg.Command()
	if h, ok := r.commandRoutes()[cmd]; ok {
		metrics.IncTelegramCommand(cmd)
		return h(ctx, msg)
	}
	metrics.IncTelegramCommand("unknown")
	return r.SendMessage(ctx, msg.Chat.ID, r.translator.T("unknown_command"))
}

// handleQuery answers the callback exactly once, whatever happens below.
// Without the answer Telegram keeps a spinner on the pressed button.
func (r *RealTelegramBotAdapter) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil {
		return errors.New("invalid callback query")
	}
	defer r.ack(ctx, query.ID)

	if query.From == nil {
		return errors.New("callback query without sender")
	}
	userID := query.From.ID
	chatID := userID
	if query.Message != nil && query.Message.Chat != nil {
		chatID = query.Message.Chat.ID
	}

	cb, err := model.ParseCallback(query.Data)
	if err != nil {
		metrics.IncTelegramCallback("")
		logging.With(ctx, r.log).Warn().Err(err).Msg("ignoring callback")
		return nil
	}
	metrics.IncTelegramCallback(string(cb.Kind))

	if !r.allow(ctx, userID) {
		return r.SendMessage(ctx, chatID, r.translator.T("rate_limited"))
	}

	fn, ok := r.cbRoutes()[cb.Kind]
	if !ok {
		return fmt.Errorf("no route for callback %q", cb.Kind)
	}
	return fn(ctx, chatID, userID, cb)
}

func (r *RealTelegramBotAdapter) ack(ctx context.Context, queryID string) {
	err := r.call(ctx, func() error {
		_, err := r.bot.Request(tgbotapi.NewCallback(queryID, ""))
		return err
	})
	if err != nil {
		logging.With(ctx, r.log).Warn().Err(err).Msg("callback answer failed")
	}
}

// allow applies the per-user limit. Redis failures let the request through.
func (r *RealTelegramBotAdapter) allow(ctx context.Context, userID int64) bool {
	if r.rateLimiter == nil || r.cfg.RateLimitPerMinute <= 0 {
		return true
	}
	ok, err := r.rateLimiter.Allow(ctx, red.UserKey(userID), r.cfg.RateLimitPerMinute, time.Minute)
	if err != nil {
		logging.With(ctx, r.log).Warn().Err(err).Msg("rate limiter unavailable")
		return true
	}
	if !ok {
		metrics.IncRateLimitTriggered()
	}
	return ok
}

// SetMenuCommands publishes the command list shown in the client's menu.
func (r *RealTelegramBotAdapter) SetMenuCommands(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmds := make([]tgbotapi.BotCommand, 0, len(menuCommands))
	for _, c := range menuCommands {
		cmds = append(cmds, tgbotapi.BotCommand{Command: c, Description: r.translator.T("cmd_" + c)})
	}
	return r.call(ctx, func() error {
		_, err := r.bot.Request(tgbotapi.NewSetMyCommands(cmds...))
		return err
	})
}

func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, tgID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(tgID, text)
	if err := r.send(ctx, msg); err != nil {
		metrics.IncTelegramSendError()
		return fmt.Errorf("send to %d: %w", tgID, err)
	}
	return nil
}

// SendButtons sends text with an inline keyboard. Buttons with WebAppURL open
// the Mini App in place; URL buttons open the browser; the rest carry Data.
func (r *RealTelegramBotAdapter) SendButtons(ctx context.Context, tgID int64, text string, rows [][]adapter.InlineButton) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(tgID, text)
	if kb := newInlineKeyboard(rows); len(kb.InlineKeyboard) > 0 {
		msg.ReplyMarkup = kb
	}
	if err := r.send(ctx, msg); err != nil {
		metrics.IncTelegramSendError()
		return fmt.Errorf("send to %d: %w", tgID, err)
	}
	return nil
}

func (r *RealTelegramBotAdapter) send(ctx context.Context, c tgbotapi.Chattable) error {
	return r.call(ctx, func() error {
		_, err := r.bot.Send(c)
		return err
	})
}

// call runs a Bot API request but stops waiting once ctx is done. tgbotapi
// takes no context; the request itself is still cut off by apiHTTPTimeout.
func (r *RealTelegramBotAdapter) call(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("telegram request: %w", ctx.Err())
	}
}
