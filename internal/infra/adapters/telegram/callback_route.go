package telegram

import (
	"context"

	"leads-relay-bot/internal/domain/model"
)

type cbHandler func(ctx context.Context, chatID, userID int64, cb model.Callback) error

func (r *RealTelegramBotAdapter) cbRoutes() map[model.CallbackKind]cbHandler {
	return map[model.CallbackKind]cbHandler{
		model.CallbackOpenApp:     r.openAppCBRoute,
		model.CallbackStats:       r.statsCBRoute,
		model.CallbackBalance:     r.balanceCBRoute,
		model.CallbackUploadLeads: r.appRouteCB,
		model.CallbackMarketplace: r.appRouteCB,
		model.CallbackMyLeads:     r.appRouteCB,
	}
}

// openAppCBRoute answers the non-https fallback button with a plain link for
// the user id carried in the payload.
func (r *RealTelegramBotAdapter) openAppCBRoute(ctx context.Context, chatID, _ int64, cb model.Callback) error {
	link := model.AppURL(r.cfg.WebAppURL, model.RouteHome, cb.UserID)
	return r.SendMessage(ctx, chatID, r.translator.T("open_app_link", link))
}

func (r *RealTelegramBotAdapter) statsCBRoute(ctx context.Context, chatID, userID int64, _ model.Callback) error {
	return r.sendStats(ctx, chatID, userID)
}

func (r *RealTelegramBotAdapter) balanceCBRoute(ctx context.Context, chatID, userID int64, _ model.Callback) error {
	return r.sendBalance(ctx, chatID, userID)
}

func (r *RealTelegramBotAdapter) appRouteCB(ctx context.Context, chatID, userID int64, cb model.Callback) error {
	return r.sendRoute(ctx, chatID, userID, appRoutes[cb.Kind])
}
