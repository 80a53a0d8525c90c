//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_YAMLThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := []byte(`
bot:
  token: "from-yaml"
  web_app_url: "https://app.example.com/"
api:
  port: 9000
`)
	require.NoError(t, os.WriteFile(path, yml, 0o644))

	t.Setenv("BOT_API_PORT", "9100")
	t.Setenv("BACKEND_TIMEOUT", "3s")

	cfg, err := LoadConfig(path, false)
	require.NoError(t, err)

	assert.Equal(t, "from-yaml", cfg.Bot.Token)
	assert.Equal(t, "https://app.example.com", cfg.Bot.WebAppURL)
	assert.Equal(t, "https://app.example.com/api", cfg.Backend.BaseURL)
	assert.Equal(t, 9100, cfg.API.Port)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 5*time.Second, cfg.API.NotifyTimeout)
	assert.Equal(t, "ru", cfg.Bot.Language)
	assert.Equal(t, 8, cfg.Bot.Workers)
	assert.True(t, cfg.SecureWebApp())
}

func TestLoadConfig_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("WEB_APP_URL", "http://localhost:3000")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), false)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Bot.Token)
	assert.Equal(t, 8001, cfg.API.Port)
	assert.False(t, cfg.SecureWebApp())
	assert.False(t, cfg.Bot.SecureWebApp())
}

func TestBotConfig_SecureWebApp(t *testing.T) {
	assert.True(t, (&BotConfig{WebAppURL: "https://boardtraff.shop"}).SecureWebApp())
	assert.False(t, (&BotConfig{WebAppURL: "http://boardtraff.shop"}).SecureWebApp())
	assert.False(t, (&BotConfig{}).SecureWebApp())
}

func TestLoadConfig_TokenRequiredOutsideDev(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	_, err := LoadConfig(missing, false)
	assert.Error(t, err)

	cfg, err := LoadConfig(missing, true)
	require.NoError(t, err)
	assert.True(t, cfg.Runtime.Dev)
}

func TestValidate_RejectsRelativeWebAppURL(t *testing.T) {
	cfg := &Config{Bot: BotConfig{Token: "t", WebAppURL: "boardtraff.shop"}}
	assert.Error(t, cfg.Validate())
}
