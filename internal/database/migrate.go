package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/conduit-demo/app/sql/schema"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies all pending goose migrations from sql/schema.
//
// Several servers may migrate different databases in one process, so a goose Provider
// is used instead of the package level goose functions (which share global state).
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	// Convert pgx pool to database/sql interface that Goose expects
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, schema.FS)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, r := range results {
		logger.Debug("applied migration",
			slog.Int64("version", r.Source.Version),
			slog.String("file", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Info("database migrations complete", slog.Int64("schema_version", version))

	return nil
}
