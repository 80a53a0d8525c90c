//go:build !integration

package model

import (
	"errors"
	"strings"
	"testing"

	"leads-relay-bot/internal/domain"
)

// --- Callback Tests ---

func TestParseCallback(t *testing.T) {
	t.Run("should decode every plain kind", func(t *testing.T) {
		for _, kind := range []CallbackKind{CallbackStats, CallbackBalance, CallbackUploadLeads, CallbackMarketplace, CallbackMyLeads} {
			cb, err := ParseCallback(string(kind))
			if err != nil {
				t.Fatalf("kind %s: unexpected error: %v", kind, err)
			}
			if cb.Kind != kind || cb.UserID != 0 {
				t.Errorf("kind %s: got %+v", kind, cb)
			}
		}
	})

	t.Run("should decode open_app with user id", func(t *testing.T) {
		cb, err := ParseCallback("open_app_123456")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cb.Kind != CallbackOpenApp || cb.UserID != 123456 {
			t.Errorf("got %+v", cb)
		}
	})

	t.Run("should reject malformed open_app and unknown data", func(t *testing.T) {
		for _, data := range []string{"open_app_", "open_app_abc", "open_app_-5", "settings", ""} {
			_, err := ParseCallback(data)
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("data %q: expected ErrInvalidArgument, got %v", data, err)
			}
		}
	})

	t.Run("Data should round trip", func(t *testing.T) {
		in := NewOpenAppCallback(42)
		if in.Data() != "open_app_42" {
			t.Fatalf("unexpected wire format %q", in.Data())
		}
		out, err := ParseCallback(in.Data())
		if err != nil || out != in {
			t.Errorf("round trip mismatch: %+v, %v", out, err)
		}
		if (Callback{Kind: CallbackMyLeads}).Data() != "my_leads" {
			t.Error("plain kinds must encode as their tag")
		}
	})
}

func TestAppURL(t *testing.T) {
	got := AppURL("https://boardtraff.shop/", RouteMarket, 77)
	want := "https://boardtraff.shop/market?tgWebAppStartParam=77"
	if got != want {
		t.Errorf("wanted %s, got %s", want, got)
	}
	if got := AppURL("https://boardtraff.shop", RouteHome, 1); got != "https://boardtraff.shop?tgWebAppStartParam=1" {
		t.Errorf("home route: got %s", got)
	}
}

// --- Notification Tests ---

func TestValidateNotifications(t *testing.T) {
	t.Run("valid upload passes", func(t *testing.T) {
		n := UploadNotification{TelegramID: "123", TotalValid: 5, PointsCredited: 50}
		if err := Validate(n); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("zero counts are valid", func(t *testing.T) {
		n := UploadNotification{TelegramID: "123"}
		if err := Validate(n); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("non numeric telegram id fails", func(t *testing.T) {
		err := Validate(UploadNotification{TelegramID: "abc"})
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
		if !strings.Contains(err.Error(), "TelegramID") {
			t.Errorf("error should name the field: %v", err)
		}
	})

	t.Run("purchase without phone fails", func(t *testing.T) {
		err := Validate(PurchaseNotification{TelegramID: "1", Price: 10, NewBalance: 5})
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("negative amounts are accepted", func(t *testing.T) {
		if err := Validate(PurchaseNotification{TelegramID: "1", LeadPhone: "+79990000000", Price: -1, NewBalance: -5}); err != nil {
			t.Fatalf("expected no error for negative price, got %v", err)
		}
		if err := Validate(UploadNotification{TelegramID: "1", TotalValid: 5, PointsCredited: -10}); err != nil {
			t.Fatalf("expected no error for points reversal, got %v", err)
		}
	})
}

func TestParseChatID(t *testing.T) {
	id, err := ParseChatID(" 123 ")
	if err != nil || id != 123 {
		t.Fatalf("got %d, %v", id, err)
	}
	if _, err := ParseChatID("0"); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("zero chat id must be rejected, got %v", err)
	}
}

func TestNewDelivery(t *testing.T) {
	a := NewDelivery(NotificationUpload, 1)
	b := NewDelivery(NotificationUpload, 1)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("delivery ids must be unique and non-empty: %q %q", a.ID, b.ID)
	}
	if len(a.ID) != 26 {
		t.Errorf("expected a 26 char ULID, got %q", a.ID)
	}
}
