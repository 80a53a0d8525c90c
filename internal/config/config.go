// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token     string `yaml:"token" env:"TELEGRAM_BOT_TOKEN"`
	WebAppURL string `yaml:"web_app_url" env:"WEB_APP_URL"`
	Language  string `yaml:"language" env:"BOT_LANGUAGE"`
	Workers   int    `yaml:"workers" env:"BOT_WORKERS"` // polling workers
	Debug     bool   `yaml:"debug" env:"TELEGRAM_DEBUG"`
	// RateLimitPerMinute caps commands+callbacks per user; 0 disables (also disabled without redis).
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"RATE_LIMIT_PER_MINUTE"`
}

type BackendConfig struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_API_URL"`
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT"`
}

type APIConfig struct {
	Port          int           `yaml:"port" env:"BOT_API_PORT"`
	NotifyTimeout time.Duration `yaml:"notify_timeout" env:"NOTIFY_TIMEOUT"`
	JWTSecret     string        `yaml:"jwt_secret" env:"NOTIFY_JWT_SECRET"`
}

type LogConfig struct {
	Level    string `yaml:"level" env:"LOG_LEVEL"`   // trace|debug|info|warn|error
	Format   string `yaml:"format" env:"LOG_FORMAT"` // json|console
	Sampling bool   `yaml:"sampling" env:"LOG_SAMPLING"`
}

type RedisConfig struct {
	URL      string `yaml:"url" env:"REDIS_URL"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

type Config struct {
	Bot     BotConfig     `yaml:"bot"`
	Backend BackendConfig `yaml:"backend"`
	API     APIConfig     `yaml:"api"`
	Log     LogConfig     `yaml:"log"`
	Redis   RedisConfig   `yaml:"redis"`

	Runtime RuntimeConfig `yaml:"-"`
}

const defaultWebAppURL = "https://boardtraff.shop"

// LoadConfig reads .env (if present), then the optional YAML file at path, then
// lets environment variables override both. Defaults are applied last.
func LoadConfig(path string, dev bool) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
			// env-only deployment
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Runtime.Dev = dev
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Bot.WebAppURL == "" {
		c.Bot.WebAppURL = defaultWebAppURL
	}
	c.Bot.WebAppURL = strings.TrimRight(c.Bot.WebAppURL, "/")
	if c.Bot.Language == "" {
		c.Bot.Language = "ru"
	}
	if c.Bot.Workers <= 0 {
		c.Bot.Workers = 8
	}
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = c.Bot.WebAppURL + "/api"
	}
	c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")
	c.Backend.Timeout = normalizeTimeout(c.Backend.Timeout)
	if c.API.Port == 0 {
		c.API.Port = 8001
	}
	c.API.NotifyTimeout = normalizeTimeout(c.API.NotifyTimeout)
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Validate performs the minimal checks needed to boot.
func (c *Config) Validate() error {
	if c.Bot.Token == "" && !c.Runtime.Dev {
		return errors.New("bot.token is required")
	}
	u, err := url.Parse(c.Bot.WebAppURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("bot.web_app_url must be an absolute URL, got %q", c.Bot.WebAppURL)
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port out of range: %d", c.API.Port)
	}
	return nil
}

// SecureWebApp reports whether buttons may open the web app inside Telegram.
// Telegram only accepts https URLs for web_app buttons.
func (c *BotConfig) SecureWebApp() bool {
	return strings.HasPrefix(c.WebAppURL, "https://")
}

func (c *Config) SecureWebApp() bool { return c.Bot.SecureWebApp() }

func normalizeTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 5 * time.Second
	}
	return d
}
