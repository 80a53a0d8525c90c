// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leads-relay-bot/internal/config"
	"leads-relay-bot/internal/domain/ports/adapter"
	tele "leads-relay-bot/internal/infra/adapters/telegram"
	"leads-relay-bot/internal/infra/api"
	"leads-relay-bot/internal/infra/backend"
	"leads-relay-bot/internal/infra/i18n"
	"leads-relay-bot/internal/infra/logging"
	"leads-relay-bot/internal/infra/metrics"
	red "leads-relay-bot/internal/infra/redis"
	"leads-relay-bot/internal/usecase"
)

// set via -ldflags
var (
	version = "dev"
	commit  = "none"
)

type poller interface {
	adapter.TelegramBotAdapter
	StartPolling(ctx context.Context) error
	StopPolling()
}

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file (optional)")
	devMode := flag.Bool("dev", false, "developer mode: no Telegram connection, console logs")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	logger.Info().
		Str("version", version).
		Str("web_app_url", cfg.Bot.WebAppURL).
		Bool("web_app_buttons", cfg.SecureWebApp()).
		Str("backend_url", cfg.Backend.BaseURL).
		Str("bot_token", logging.Redact(cfg.Bot.Token, cfg.Runtime.Dev)).
		Bool("dev", cfg.Runtime.Dev).
		Msg("starting")

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- i18n ----
	translator, err := i18n.NewTranslator(i18n.LocalesFS, cfg.Bot.Language)
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}

	// ---- Backend API client ----
	backendClient, err := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("backend client")
	}

	// ---- Redis (optional, rate limiting only) ----
	var rateLimiter *red.RateLimiter
	if cfg.Redis.URL != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		redisClient, err := red.NewClient(pingCtx, &cfg.Redis)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
		} else {
			defer redisClient.Close()
			rateLimiter = red.NewRateLimiter(redisClient)
		}
	}

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(backendClient, logger)

	// ---- Telegram ----
	var bot poller
	if cfg.Runtime.Dev && cfg.Bot.Token == "" {
		bot = tele.NewNoopBotAdapter(logger)
	} else {
		bot, err = tele.NewRealTelegramBotAdapter(&cfg.Bot, userUC, translator, rateLimiter, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram")
		}
	}
	notifyUC := usecase.NewNotificationUseCase(bot, translator, logger, cfg.Runtime.Dev)

	// ---- Notify HTTP API ----
	srv := api.NewServer(&cfg.API, notifyUC, logger)

	errc := make(chan error, 2)
	go func() {
		if err := bot.StartPolling(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errc <- fmt.Errorf("telegram polling: %w", err)
		}
	}()
	go func() {
		if err := srv.Start(); err != nil {
			errc <- fmt.Errorf("http server: %w", err)
		}
	}()

	// ---- Graceful shutdown ----
	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown requested")
	case err := <-errc:
		logger.Error().Err(err).Msg("component failed, shutting down")
	}
	stop()
	bot.StopPolling()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	logger.Info().Msg("stopped")
}
