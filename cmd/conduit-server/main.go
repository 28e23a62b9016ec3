package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conduit-demo/app/internal/app"
	"github.com/conduit-demo/app/internal/config"
	"github.com/conduit-demo/app/internal/logger"
	"github.com/conduit-demo/app/internal/version"
)

//	@title			conduit-server
//	@description	conduit-server implements the user registration, login and profile API.
//	@description
//	@description	## Common Error Responses
//	@description	All endpoints may return:
//	@description	- `413` Request body exceeds size limit
//	@description	- `429` Rate limit exceeded
//	@description	- `500` Internal server error
//	@description
//	@description	Errors use the body `{"errors": {"body": ["..."]}}`.
//	@description
//	@description	## Request Limits
//	@description	All endpoints are protected by:
//	@description	- **Rate limiting**: Configurable requests per second (see env vars) - default 100 rps (set to 0 to disable)
//	@description	- **Request size limits**: Configurable (see env vars) - default 1MB
//	@description
//	@description	Check the X-Max-Request-Size response header for the configured limit.
//	@description
//	@description	## Authentication
//	@description
//	@description	`POST /api/users` and `POST /api/users/login` return an access token.
//	@description	Send it as `Authorization: Token <jwt>` (or `Bearer <jwt>`) on the `/api/user` endpoints.
//	@description	Tokens are HS256 signed and expire after TOKEN_TTL (default 24h).
//	@license.name	MIT

//	@servers.url			http://localhost:8080
//	@servers.description	Development server

//	@accept		json
//	@produce	json

//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						Authorization
//	@description				Token <jwt>

//	@tag.name			Users
//	@tag.description	Registration, login and the current user's profile

//	@tag.name			Common
//	@tag.description	Server API endpoints (health, readiness, version)

func main() {
	cmd := &cobra.Command{
		Use:   "conduit-server",
		Short: "conduit API server",
		Long:  `conduit-server serves the user registration, login and profile API, configured through environment variables`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		os.Exit(1)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.Bool("MIGRATE", cfg.Migrate),
		slog.String("DOCS_UI_PATH", cfg.DocsUIPath),
		slog.String("STATIC_DIR", cfg.StaticDir),
		slog.Any("ALLOWED_ORIGINS", cfg.AllowedOrigins),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.Build(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to start", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer application.Close()

	appLogger.Info("Starting server", slog.String("version", version.Get().Version))

	if err := application.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("server shutdown complete")
	return nil
}
