package telegram

import (
	"context"

	"leads-relay-bot/internal/domain/model"
	"leads-relay-bot/internal/domain/ports/adapter"
)

var menuCommands = []string{"start", "help", "stats", "balance"}

// appRoute describes a web app section reachable from an inline button.
type appRoute struct {
	path      model.WebAppRoute
	textKey   string
	buttonKey string
	linkKey   string
}

var appRoutes = map[model.CallbackKind]appRoute{
	model.CallbackUploadLeads: {model.RouteUpload, "upload_text", "upload_button", "upload_link"},
	model.CallbackMarketplace: {model.RouteMarket, "market_text", "market_button", "market_link"},
	model.CallbackMyLeads:     {model.RouteLeads, "leads_text", "leads_button", "leads_link"},
}

// mainMenu is the keyboard attached to the /start greeting. The app button
// opens the Mini App directly when the URL is https; otherwise it falls back
// to an open_app callback that replies with a plain link.
func (r *RealTelegramBotAdapter) mainMenu(tgID int64) [][]adapter.InlineButton {
	app := adapter.InlineButton{Text: r.translator.T("btn_open_app")}
	if r.secureApp {
		app.WebAppURL = model.AppURL(r.cfg.WebAppURL, model.RouteHome, tgID)
	} else {
		app.Data = model.NewOpenAppCallback(tgID).Data()
	}

	return [][]adapter.InlineButton{
		{app},
		{{Text: r.translator.T("btn_upload"), Data: model.Callback{Kind: model.CallbackUploadLeads}.Data()}},
		{{Text: r.translator.T("btn_market"), Data: model.Callback{Kind: model.CallbackMarketplace}.Data()}},
		{{Text: r.translator.T("btn_leads"), Data: model.Callback{Kind: model.CallbackMyLeads}.Data()}},
		{
			{Text: r.translator.T("btn_stats"), Data: model.Callback{Kind: model.CallbackStats}.Data()},
			{Text: r.translator.T("btn_balance"), Data: model.Callback{Kind: model.CallbackBalance}.Data()},
		},
	}
}

func (r *RealTelegramBotAdapter) sendRoute(ctx context.Context, chatID, tgID int64, route appRoute) error {
	link := model.AppURL(r.cfg.WebAppURL, route.path, tgID)
	if !r.secureApp {
		return r.SendMessage(ctx, chatID, r.translator.T(route.linkKey, link))
	}
	rows := [][]adapter.InlineButton{{{Text: r.translator.T(route.buttonKey), WebAppURL: link}}}
	return r.SendButtons(ctx, chatID, r.translator.T(route.textKey), rows)
}

// sendStats falls back to the register prompt on any backend failure.
func (r *RealTelegramBotAdapter) sendStats(ctx context.Context, chatID, tgID int64) error {
	st, err := r.userUC.Stats(ctx, tgID)
	if err != nil {
		return r.SendMessage(ctx, chatID, r.translator.T("stats_unavailable"))
	}
	text := r.translator.T("stats_block", st.TotalUploaded, st.TotalPurchased, st.TotalInMarket, st.CurrentBalance)
	if st.ConversionRate > 0 {
		text += r.translator.T("stats_conversion", st.ConversionRate)
	}
	return r.SendMessage(ctx, chatID, text)
}

func (r *RealTelegramBotAdapter) sendBalance(ctx context.Context, chatID, tgID int64) error {
	bal, err := r.userUC.Balance(ctx, tgID)
	if err != nil {
		return r.SendMessage(ctx, chatID, r.translator.T("balance_unavailable"))
	}
	return r.SendMessage(ctx, chatID, r.translator.T("balance", bal))
}
