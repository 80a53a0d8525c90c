//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"leads-relay-bot/internal/domain"
	"leads-relay-bot/internal/domain/model"
	"leads-relay-bot/internal/usecase"
)

func TestUserUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("Register performs a single lookup and forwards the profile", func(t *testing.T) {
		backend := &MockBackend{GetUserFunc: func(ctx context.Context, tgID int64, _, _ string) (*model.User, error) {
			return &model.User{ID: "c1", TelegramID: fmt.Sprint(tgID)}, nil
		}}
		uc := usecase.NewUserUseCase(backend, newTestLogger())

		user, err := uc.Register(ctx, 123, "ivan", "Ivan Petrov")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.ID != "c1" {
			t.Errorf("unexpected user %+v", user)
		}
		if backend.UserCalls != 1 {
			t.Errorf("expected exactly one backend call, got %d", backend.UserCalls)
		}
		if backend.LastUsername != "ivan" || backend.LastFullName != "Ivan Petrov" {
			t.Errorf("profile not forwarded: %q %q", backend.LastUsername, backend.LastFullName)
		}
	})

	t.Run("Register twice stays a plain lookup", func(t *testing.T) {
		backend := &MockBackend{GetUserFunc: func(context.Context, int64, string, string) (*model.User, error) {
			return &model.User{ID: "c1"}, nil
		}}
		uc := usecase.NewUserUseCase(backend, newTestLogger())
		_, _ = uc.Register(ctx, 1, "", "")
		_, _ = uc.Register(ctx, 1, "", "")
		if backend.UserCalls != 2 {
			t.Errorf("expected one call per /start, got %d", backend.UserCalls)
		}
	})

	t.Run("Register surfaces not found without panicking", func(t *testing.T) {
		backend := &MockBackend{GetUserFunc: func(context.Context, int64, string, string) (*model.User, error) {
			return nil, domain.ErrNotFound
		}}
		uc := usecase.NewUserUseCase(backend, newTestLogger())
		user, err := uc.Register(ctx, 1, "", "")
		if user != nil || !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("got %v, %v", user, err)
		}
	})

	t.Run("Balance returns the user's balance", func(t *testing.T) {
		backend := &MockBackend{GetUserFunc: func(context.Context, int64, string, string) (*model.User, error) {
			return &model.User{ID: "c1", Balance: 42.5}, nil
		}}
		uc := usecase.NewUserUseCase(backend, newTestLogger())
		bal, err := uc.Balance(ctx, 1)
		if err != nil || bal != 42.5 {
			t.Errorf("got %v, %v", bal, err)
		}
	})

	t.Run("Stats propagates unavailable", func(t *testing.T) {
		backend := &MockBackend{DashboardFn: func(context.Context, int64) (*model.Stats, error) {
			return nil, domain.ErrUnavailable
		}}
		uc := usecase.NewUserUseCase(backend, newTestLogger())
		st, err := uc.Stats(ctx, 1)
		if st != nil || !errors.Is(err, domain.ErrUnavailable) {
			t.Errorf("got %v, %v", st, err)
		}
	})
}
