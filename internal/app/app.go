// Package app assembles the conduit server from its configuration: database pool,
// migrations and HTTP handler.
//
// The caller decides how the handler is served. cmd/conduit-server serves it on
// HOST:PORT; the test environment serves it on a listener it owns.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/conduit-demo/app/internal/config"
	"github.com/conduit-demo/app/internal/database"
	"github.com/conduit-demo/app/internal/server"
)

type App struct {
	server    *server.Server
	closeOnce sync.Once
}

// Build connects to the database, applies migrations when cfg.Migrate is set and builds the server.
// Any failure releases what was already acquired.
func Build(ctx context.Context, cfg *config.ServerEnvironment, logger *slog.Logger) (*App, error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("connected to PostgreSQL")

	if cfg.Migrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, err
		}
	}

	srv, err := server.NewServer(pool, cfg, logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &App{server: srv}, nil
}

// NewPool creates the connection pool and checks the database is reachable within DATABASE_PING_TIMEOUT.
func NewPool(ctx context.Context, cfg *config.ServerEnvironment) (*pgxpool.Pool, error) {
	dbCtx, dbCancel := context.WithTimeout(ctx, cfg.DatabasePingTimeout)
	defer dbCancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConnections
	poolConfig.MinConns = cfg.DBMinConnections
	poolConfig.MaxConnLifetime = cfg.DBMaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	poolConfig.ConnConfig.ConnectTimeout = cfg.DBConnectTimeout

	pool, err := pgxpool.NewWithConfig(dbCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err = pool.Ping(dbCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return pool, nil
}

func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

// Start serves on HOST:PORT until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	return a.server.Start(ctx)
}

// Close releases the database pool. It is safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(a.server.DatabaseShutdown)
}
