package model

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"leads-relay-bot/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
)

type NotificationKind string

const (
	NotificationUpload   NotificationKind = "upload"
	NotificationPurchase NotificationKind = "purchase"
)

// UploadNotification tells a user how many of their uploaded leads were
// accepted and how many points they earned.
type UploadNotification struct {
	TelegramID     string `json:"telegram_id" validate:"required,numeric"`
	TotalValid     int    `json:"total_valid"`
	PointsCredited int    `json:"points_credited"`
}

// PurchaseNotification tells a buyer which lead they bought and what it cost.
type PurchaseNotification struct {
	TelegramID string `json:"telegram_id" validate:"required,numeric"`
	LeadPhone  string `json:"lead_phone" validate:"required"`
	Price      int    `json:"price"`
	NewBalance int    `json:"new_balance"`
}

// Delivery is the result of a successful chat send. It only proves Telegram
// accepted the message, not that the user read it.
type Delivery struct {
	ID     string
	Kind   NotificationKind
	ChatID int64
	SentAt time.Time
}

func NewDelivery(kind NotificationKind, chatID int64) *Delivery {
	now := time.Now()
	return &Delivery{
		ID:     ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Kind:   kind,
		ChatID: chatID,
		SentAt: now,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate runs struct tag validation and maps failures to domain.ErrInvalidArgument.
func Validate(v any) error {
	if err := validatorInstance().Struct(v); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	return nil
}

// ParseChatID converts the backend's string-encoded telegram id.
func ParseChatID(telegramID string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(telegramID), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: telegram_id %q is not a chat id", domain.ErrInvalidArgument, telegramID)
	}
	return id, nil
}
