package testenv

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Netflix/go-env"

	"github.com/conduit-demo/app/internal/config"
)

// Config holds the orchestrator settings. Every field has a default, so an empty environment works.
type Config struct {
	PostgresImage   string        `env:"TESTENV_POSTGRES_IMAGE,default=postgres:17"`
	SetupTimeout    time.Duration `env:"TESTENV_SETUP_TIMEOUT,default=5s"`
	TeardownTimeout time.Duration `env:"TESTENV_TEARDOWN_TIMEOUT,default=30s"`
	WebDriverURL    string        `env:"WEBDRIVER_URL,default=http://localhost:4444"`
	DocsUIPath      string        `env:"TESTENV_DOCS_UI_PATH,default=/scalar"`

	// front-end build served for unknown routes, e.g. ../../frontend/build
	StaticDir string `env:"TESTENV_STATIC_DIR"`

	HTTPClientTimeout time.Duration `env:"TESTENV_HTTP_CLIENT_TIMEOUT,default=10s"`
	EnableServerLogs  bool          `env:"ENABLE_SERVER_LOGS,default=false"`
}

// LoadConfig reads the orchestrator settings from the process environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal testenv environment variables: %w", err)
	}
	if cfg.SetupTimeout <= 0 {
		return nil, fmt.Errorf("TESTENV_SETUP_TIMEOUT must be positive")
	}
	if cfg.TeardownTimeout <= 0 {
		return nil, fmt.Errorf("TESTENV_TEARDOWN_TIMEOUT must be positive")
	}
	return &cfg, nil
}

// RunConfig is the server configuration for one run. It is not changed after NewRunConfig.
type RunConfig struct {
	SecretKey      string
	Host           string
	Port           int
	DatabaseURL    string
	Migrate        bool
	DocsUIPath     string
	AllowedOrigins []string
	StaticDir      string
	LogLevel       string
}

// NewRunConfig returns the configuration used by every run: loopback only, OS assigned port,
// migrations applied on boot and CORS disabled.
func NewRunConfig(databaseURL, secret, docsUIPath, staticDir string) RunConfig {
	return RunConfig{
		SecretKey:   secret,
		Host:        "127.0.0.1",
		Port:        0,
		DatabaseURL: databaseURL,
		Migrate:     true,
		DocsUIPath:  docsUIPath,
		StaticDir:   staticDir,
		LogLevel:    "debug",
	}
}

// ServerEnvironment converts the run configuration into the server configuration, without
// reading or changing the process environment.
func (rc RunConfig) ServerEnvironment() (*config.ServerEnvironment, error) {
	es := env.EnvSet{
		"ENVIRONMENT":    "test",
		"HOST":           rc.Host,
		"PORT":           strconv.Itoa(rc.Port),
		"DATABASE_URL":   rc.DatabaseURL,
		"SECRET_KEY":     rc.SecretKey,
		"MIGRATE":        strconv.FormatBool(rc.Migrate),
		"LOG_LEVEL":      rc.LogLevel,
		"RATE_LIMIT_RPS": "0",
	}
	if rc.DocsUIPath != "" {
		es["DOCS_UI_PATH"] = rc.DocsUIPath
	}
	if rc.StaticDir != "" {
		es["STATIC_DIR"] = rc.StaticDir
	}
	if len(rc.AllowedOrigins) > 0 {
		es["ALLOWED_ORIGINS"] = strings.Join(rc.AllowedOrigins, "|")
	}
	return config.NewServerConfigFromEnvSet(es)
}
