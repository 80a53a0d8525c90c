package usecase

import (
	"context"
	"fmt"

	"leads-relay-bot/internal/domain"
	"leads-relay-bot/internal/domain/model"
	"leads-relay-bot/internal/domain/ports/adapter"
	"leads-relay-bot/internal/infra/i18n"
	"leads-relay-bot/internal/infra/logging"
	"leads-relay-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ NotificationUseCase = (*notificationUC)(nil)

// NotificationUseCase renders backend events as chat messages. A returned
// Delivery only means the Bot API accepted the message.
type NotificationUseCase interface {
	NotifyUpload(ctx context.Context, n model.UploadNotification) (*model.Delivery, error)
	NotifyPurchase(ctx context.Context, n model.PurchaseNotification) (*model.Delivery, error)
}

type notificationUC struct {
	bot adapter.TelegramBotAdapter
	tr  *i18n.Translator
	log *zerolog.Logger
	dev bool
}

func NewNotificationUseCase(bot adapter.TelegramBotAdapter, tr *i18n.Translator, logger *zerolog.Logger, dev bool) *notificationUC {
	return &notificationUC{bot: bot, tr: tr, log: logger, dev: dev}
}

func (n *notificationUC) NotifyUpload(ctx context.Context, in model.UploadNotification) (*model.Delivery, error) {
	defer logging.TraceDuration(n.log, "NotificationUC.NotifyUpload")()

	if err := model.Validate(in); err != nil {
		metrics.IncNotification(string(model.NotificationUpload), "invalid")
		return nil, err
	}
	text := n.tr.T("notify_upload", in.TotalValid, in.PointsCredited)
	return n.deliver(ctx, model.NotificationUpload, in.TelegramID, text, func(e *zerolog.Event) {
		e.Int("total_valid", in.TotalValid).Int("points_credited", in.PointsCredited)
	})
}

func (n *notificationUC) NotifyPurchase(ctx context.Context, in model.PurchaseNotification) (*model.Delivery, error) {
	defer logging.TraceDuration(n.log, "NotificationUC.NotifyPurchase")()

	if err := model.Validate(in); err != nil {
		metrics.IncNotification(string(model.NotificationPurchase), "invalid")
		return nil, err
	}
	text := n.tr.T("notify_purchase", in.LeadPhone, in.Price, in.NewBalance)
	return n.deliver(ctx, model.NotificationPurchase, in.TelegramID, text, func(e *zerolog.Event) {
		e.Str("lead_phone", logging.Redact(in.LeadPhone, n.dev)).Int("price", in.Price).Int("new_balance", in.NewBalance)
	})
}

func (n *notificationUC) deliver(ctx context.Context, kind model.NotificationKind, telegramID, text string, fields func(*zerolog.Event)) (*model.Delivery, error) {
	chatID, err := model.ParseChatID(telegramID)
	if err != nil {
		metrics.IncNotification(string(kind), "invalid")
		return nil, err
	}
	log := logging.With(logging.WithTgID(ctx, chatID), n.log)

	if err := n.bot.SendMessage(ctx, chatID, text); err != nil {
		metrics.IncNotification(string(kind), "failed")
		ev := log.Error().Err(err).Str("kind", string(kind))
		fields(ev)
		ev.Msg("notification not delivered")
		return nil, fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	d := model.NewDelivery(kind, chatID)
	metrics.IncNotification(string(kind), "sent")
	ev := log.Info().Str("kind", string(kind)).Str("delivery_id", d.ID)
	fields(ev)
	ev.Msg("notification sent")
	return d, nil
}
