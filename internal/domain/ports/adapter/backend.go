package adapter

import (
	"context"

	"leads-relay-bot/internal/domain/model"
)

// BackendAPI is the slice of the web backend the bot reads from.
// Implementations return domain.ErrNotFound or domain.ErrUnavailable on failure.
type BackendAPI interface {
	GetUser(ctx context.Context, telegramID int64, username, fullName string) (*model.User, error)
	GetDashboard(ctx context.Context, telegramID int64) (*model.Stats, error)
}
