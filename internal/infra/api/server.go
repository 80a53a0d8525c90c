// File: internal/infra/api/server.go
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"leads-relay-bot/internal/config"
	"leads-relay-bot/internal/infra/metrics"
	"leads-relay-bot/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Server exposes the notify endpoints the web backend calls.
type Server struct {
	cfg      *config.APIConfig
	notifyUC usecase.NotificationUseCase
	log      *zerolog.Logger
	router   chi.Router
	server   *http.Server
}

func NewServer(cfg *config.APIConfig, notifyUC usecase.NotificationUseCase, logger *zerolog.Logger) *Server {
	l := logger.With().Str("component", "api").Logger()
	s := &Server{cfg: cfg, notifyUC: notifyUC, log: &l}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(s.log), Recover(s.log))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	timeout := s.cfg.NotifyTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	r.Route("/notify", func(r chi.Router) {
		r.Use(Timeout(timeout))
		if s.cfg.JWTSecret != "" {
			r.Use(JWTAuth([]byte(s.cfg.JWTSecret), s.log))
		}
		r.Post("/upload", s.handleNotifyUpload)
		r.Post("/purchase", s.handleNotifyPurchase)
	})
	return r
}

func (s *Server) Handler() http.Handler { return s.router }

// Start blocks serving on the configured port until Shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Info().Int("port", s.cfg.Port).Bool("jwt", s.cfg.JWTSecret != "").Msg("notify API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
