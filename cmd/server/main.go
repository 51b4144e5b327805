package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/handlers"
	httpMiddleware "github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/middleware"
	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/http/respond"
	redisstorage "github.com/SamPomeroy/workforce-analytics-api/internal/adapters/storage/redis"
	"github.com/SamPomeroy/workforce-analytics-api/internal/adapters/token/jwtcodec"
	"github.com/SamPomeroy/workforce-analytics-api/internal/config"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/domain"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/ports"
	"github.com/SamPomeroy/workforce-analytics-api/internal/core/services"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid LOG_LEVEL")
	}
	logger = logger.Level(level)

	storage, closeFn, err := initStorage(cfg.Redis, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init storage")
	}
	defer closeFn()

	limiter, err := services.NewRateLimiterService(storage, logger, cfg.RateLimiter.StoreTimeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create limiter")
	}

	codec, err := jwtcodec.New(jwtcodec.Config{
		Secret: cfg.Auth.SecretKey,
		Expiry: cfg.Auth.TokenExpiry,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create token codec")
	}

	gate, err := services.NewAuthService(codec)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create auth gate")
	}

	router := newRouter(cfg, logger, storage, limiter, gate, codec)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		err := srv.ListenAndServe()
		if err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newRouter liga a tabela de acesso ao pipeline por requisição: request id →
// limiter → gate → handler, com os cabeçalhos de quota em toda resposta.
func newRouter(cfg config.Config, logger zerolog.Logger, storage ports.CounterStore, limiter ports.RateLimiter, gate ports.Gate, codec ports.TokenCodec) *chi.Mux {
	policy := domain.DefaultAccessPolicy()

	authHandler := handlers.NewAuthHandler(codec, cfg.Auth.Clients, cfg.Auth.TokenExpiry)
	jobsHandler := handlers.NewJobsHandler()
	skillsHandler := handlers.NewSkillsHandler()

	defaultLimit := httpMiddleware.RateLimit(limiter, "default", cfg.RateLimiter.DefaultRule)
	authLimit := httpMiddleware.RateLimit(limiter, "auth", cfg.RateLimiter.AuthRule)

	requireFor := func(method, pattern string) func(http.Handler) http.Handler {
		return httpMiddleware.RequireRoles(gate, policy.Roles(method, pattern)...)
	}

	r := chi.NewRouter()
	r.Use(httpMiddleware.RequestID)
	r.Use(httpMiddleware.RequestLogger(logger))
	r.Use(httpMiddleware.Recover(logger))

	// Rotas não mapeadas também respondem com o envelope padrão.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respond.Error(w, req, http.StatusNotFound, "not_found", "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respond.Error(w, req, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed for this resource")
	})

	// Classe auth: janela própria, mais apertada, para emissão de tokens.
	r.Group(func(r chi.Router) {
		r.Use(authLimit)
		r.With(requireFor("POST", "/v1/auth/token")).Post("/v1/auth/token", authHandler.IssueToken)
	})

	r.Group(func(r chi.Router) {
		r.Use(defaultLimit)

		r.With(requireFor("GET", "/health")).Get("/health", handlers.Health(storage))
		r.With(requireFor("GET", "/v1/auth/me")).Get("/v1/auth/me", authHandler.Me)

		r.With(requireFor("GET", "/v1/jobs")).Get("/v1/jobs", jobsHandler.List)
		r.With(requireFor("POST", "/v1/jobs")).Post("/v1/jobs", jobsHandler.Create)
		r.With(requireFor("PUT", "/v1/jobs/{id}")).Put("/v1/jobs/{id}", jobsHandler.Update)
		r.With(requireFor("DELETE", "/v1/jobs/{id}")).Delete("/v1/jobs/{id}", jobsHandler.Delete)

		r.With(requireFor("GET", "/v1/skills")).Get("/v1/skills", skillsHandler.List)
		r.With(requireFor("POST", "/v1/skills")).Post("/v1/skills", skillsHandler.Create)
	})

	return r
}

func initStorage(cfg config.RedisConfig, logger zerolog.Logger) (ports.CounterStore, func(), error) {
	storage, err := redisstorage.New(redisstorage.Config{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, nil, err
	}

	return storage, func() {
		if err := storage.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close redis storage")
		}
	}, nil
}
