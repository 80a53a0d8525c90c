// File: cmd/notify/main.go
//
// notify sends a single upload or purchase notification through a running bot,
// the same call the web backend makes. Useful for smoke tests.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"leads-relay-bot/pkg/notifyclient"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type settings struct {
	BotAPIURL string        `env:"BOT_API_URL" envDefault:"http://localhost:8001"`
	JWTSecret string        `env:"NOTIFY_JWT_SECRET"`
	Timeout   time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	_ = godotenv.Load()
	var s settings
	if err := env.Parse(&s); err != nil {
		log.Fatal().Err(err).Msg("parse env")
	}

	kind := flag.String("kind", "upload", "notification kind: upload|purchase|health")
	tgID := flag.String("telegram-id", "", "recipient telegram id")
	totalValid := flag.Int("total-valid", 0, "upload: accepted leads")
	points := flag.Int("points", 0, "upload: points credited")
	phone := flag.String("phone", "", "purchase: lead phone")
	price := flag.Int("price", 0, "purchase: price in points")
	balance := flag.Int("balance", 0, "purchase: new balance")
	baseURL := flag.String("url", s.BotAPIURL, "bot notify API base url")
	flag.Parse()

	if s.Timeout <= 0 {
		s.Timeout = notifyclient.DefaultTimeout
	}
	opts := []notifyclient.Option{notifyclient.WithHTTPClient(&http.Client{Timeout: s.Timeout})}
	if s.JWTSecret != "" {
		opts = append(opts, notifyclient.WithJWTSecret(s.JWTSecret, time.Minute))
	}
	client, err := notifyclient.New(*baseURL, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout+time.Second)
	defer cancel()

	switch *kind {
	case "upload":
		err = client.NotifyUpload(ctx, *tgID, *totalValid, *points)
	case "purchase":
		err = client.NotifyPurchase(ctx, *tgID, *phone, *price, *balance)
	case "health":
		err = client.Health(ctx)
	default:
		log.Fatal().Str("kind", *kind).Msg("unknown kind")
	}
	if err != nil {
		log.Error().Err(err).Bool("rejected", notifyclient.IsRejected(err)).Msg("notification failed")
		os.Exit(1)
	}
	log.Info().Str("kind", *kind).Str("telegram_id", *tgID).Msg("notification accepted")
}
