package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conduit-demo/app/internal/config"
	"github.com/conduit-demo/app/internal/crypto"
	"github.com/conduit-demo/app/internal/database"
	"github.com/conduit-demo/app/internal/logger"
	"github.com/conduit-demo/app/internal/metrics"
	"github.com/conduit-demo/app/internal/server/handlers"
	"github.com/conduit-demo/app/internal/server/middleware"
	"github.com/conduit-demo/app/internal/version"
)

type Server struct {
	pool    *pgxpool.Pool
	queries *database.Queries
	config  *config.ServerEnvironment
	logger  *slog.Logger
	router  *chi.Mux
	metrics *metrics.Metrics
	tokens  *crypto.TokenIssuer
}

func NewServer(
	pool *pgxpool.Pool,
	cfg *config.ServerEnvironment,
	logger *slog.Logger,
) (*Server, error) {
	tokens, err := crypto.NewTokenIssuer(cfg.SecretKey, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	server := &Server{
		pool:    pool,
		queries: database.New(pool),
		config:  cfg,
		logger:  logger,
		router:  chi.NewRouter(),
		metrics: metrics.New(),
		tokens:  tokens,
	}

	if err := server.setupMiddleware(); err != nil {
		return nil, err
	}
	server.registerRoutes()

	return server, nil
}

func (s *Server) setupMiddleware() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(s.metrics.Middleware)
	s.router.Use(chimiddleware.Timeout(s.config.RequestTimeout))
	s.router.Use(middleware.SecurityHeaders(s.config.Environment))
	s.router.Use(middleware.RequestSizeLimit(s.config.MaxRequestSize))
	s.router.Use(middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst))

	if len(s.config.AllowedOrigins) > 0 {
		cors, err := middleware.CORS(s.config.AllowedOrigins)
		if err != nil {
			return fmt.Errorf("failed to configure CORS: %w", err)
		}
		s.router.Use(cors)
		s.logger.Info("CORS enabled", slog.Any("allowed_origins", s.config.AllowedOrigins))
	}
	return nil
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", handlers.HandleHealth)
	s.router.Get("/ready", handlers.HandleReadiness(s.queries))
	s.router.Get("/version", handlers.HandleVersion(version.Get()))
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	users := handlers.NewUserHandler(s.queries, s.tokens)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/users", users.Register)
		r.Post("/users/login", users.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.tokens))
			r.Get("/user", users.CurrentUser)
			r.Put("/user", users.UpdateUser)
		})
	})

	if docsPath := strings.TrimRight(s.config.DocsUIPath, "/"); docsPath != "" {
		specPath := docsPath + "/openapi.json"
		s.router.Get(docsPath, handlers.HandleDocsUI(specPath))
		s.router.Get(specPath, handlers.HandleOpenAPISpec)
	}

	if s.config.StaticDir != "" {
		s.router.NotFound(http.FileServer(http.Dir(s.config.StaticDir)).ServeHTTP)
	}
}

// Handler returns the fully configured router. The caller decides how it is served.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on HOST:PORT until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	serverAddr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("service listening",
			slog.String("environment", s.config.Environment),
			slog.String("address", serverAddr))

		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer shutdownCancel()

	s.logger.Info("shutting down HTTP server")

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Warn("HTTP server shutdown error",
			slog.String("error", err.Error()))
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

func (s *Server) DatabaseShutdown() {
	if s.pool != nil {
		s.pool.Close()
		s.logger.Info("database connection closed")
	}
}
