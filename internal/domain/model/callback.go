package model

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"leads-relay-bot/internal/domain"
)

// CallbackKind tags the inline button a user pressed.
type CallbackKind string

const (
	CallbackOpenApp     CallbackKind = "open_app"
	CallbackStats       CallbackKind = "stats"
	CallbackBalance     CallbackKind = "balance"
	CallbackUploadLeads CallbackKind = "upload_leads"
	CallbackMarketplace CallbackKind = "marketplace"
	CallbackMyLeads     CallbackKind = "my_leads"
)

const openAppPrefix = string(CallbackOpenApp) + "_"

// Callback is the decoded payload of an inline button. Only open_app carries
// a user id; the other kinds act on whoever pressed the button.
type Callback struct {
	Kind   CallbackKind
	UserID int64
}

func NewOpenAppCallback(userID int64) Callback {
	return Callback{Kind: CallbackOpenApp, UserID: userID}
}

// Data encodes the callback into Telegram's callback_data string.
// The wire format (open_app_<id>, stats, ...) is shared with keyboards already
// sitting in users' chats, so it must not change.
func (c Callback) Data() string {
	if c.Kind == CallbackOpenApp {
		return openAppPrefix + strconv.FormatInt(c.UserID, 10)
	}
	return string(c.Kind)
}

// ParseCallback decodes callback_data into a typed Callback.
func ParseCallback(data string) (Callback, error) {
	data = strings.TrimSpace(data)
	switch CallbackKind(data) {
	case CallbackStats, CallbackBalance, CallbackUploadLeads, CallbackMarketplace, CallbackMyLeads:
		return Callback{Kind: CallbackKind(data)}, nil
	}
	if rest, ok := strings.CutPrefix(data, openAppPrefix); ok {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil || id <= 0 {
			return Callback{}, fmt.Errorf("%w: bad open_app payload %q", domain.ErrInvalidArgument, data)
		}
		return NewOpenAppCallback(id), nil
	}
	return Callback{}, fmt.Errorf("%w: unknown callback %q", domain.ErrInvalidArgument, data)
}

// WebAppRoute is a path inside the web application.
type WebAppRoute string

const (
	RouteHome   WebAppRoute = ""
	RouteUpload WebAppRoute = "/upload"
	RouteMarket WebAppRoute = "/market"
	RouteLeads  WebAppRoute = "/leads"
)

// AppURL builds a deep link into the web app that identifies the user via
// tgWebAppStartParam.
func AppURL(base string, route WebAppRoute, telegramID int64) string {
	q := url.Values{}
	q.Set("tgWebAppStartParam", strconv.FormatInt(telegramID, 10))
	return strings.TrimRight(base, "/") + string(route) + "?" + q.Encode()
}
