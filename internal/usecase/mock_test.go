//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"
	"testing/fstest"

	"github.com/rs/zerolog"

	"leads-relay-bot/internal/domain/model"
	"leads-relay-bot/internal/domain/ports/adapter"
	"leads-relay-bot/internal/infra/i18n"
)

// ---- Mock TelegramBotAdapter ----

type sentMessage struct {
	ChatID int64
	Text   string
	Rows   [][]adapter.InlineButton
}

type MockTelegramBot struct {
	mu   sync.Mutex
	Sent []sentMessage

	SendMessageFunc func(ctx context.Context, chatID int64, text string) error
}

var _ adapter.TelegramBotAdapter = (*MockTelegramBot)(nil)

func (m *MockTelegramBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	if m.SendMessageFunc != nil {
		if err := m.SendMessageFunc(ctx, chatID, text); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (m *MockTelegramBot) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, sentMessage{ChatID: chatID, Text: text, Rows: rows})
	return nil
}

// ---- Mock BackendAPI ----

type MockBackend struct {
	mu           sync.Mutex
	UserCalls    int
	GetUserFunc  func(ctx context.Context, tgID int64, username, fullName string) (*model.User, error)
	DashboardFn  func(ctx context.Context, tgID int64) (*model.Stats, error)
	LastUsername string
	LastFullName string
}

var _ adapter.BackendAPI = (*MockBackend)(nil)

func (m *MockBackend) GetUser(ctx context.Context, tgID int64, username, fullName string) (*model.User, error) {
	m.mu.Lock()
	m.UserCalls++
	m.LastUsername, m.LastFullName = username, fullName
	m.mu.Unlock()
	return m.GetUserFunc(ctx, tgID, username, fullName)
}

func (m *MockBackend) GetDashboard(ctx context.Context, tgID int64) (*model.Stats, error) {
	return m.DashboardFn(ctx, tgID)
}

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

func newTestTranslator() *i18n.Translator {
	testFS := fstest.MapFS{
		"locales/en.yaml": {
			Data: []byte("notify_upload: 'uploaded %d, credited %d'\nnotify_purchase: 'bought %s for %d, balance %d'\n"),
		},
	}
	translator, _ := i18n.NewTranslator(testFS, "en")
	return translator
}
