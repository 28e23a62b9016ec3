package config

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"time"

	"github.com/Netflix/go-env"
)

// Environment variables with defaults
type ServerEnvironment struct {

	// http server settings
	Environment     string        `env:"ENVIRONMENT,default=dev"`
	Host            string        `env:"HOST,default=0.0.0.0"`
	Port            int           `env:"PORT,default=8080"`
	LogLevel        string        `env:"LOG_LEVEL,default=debug"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT,default=60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=10s"`
	RateLimitRPS    int32         `env:"RATE_LIMIT_RPS,default=100"`
	RateLimitBurst  int32         `env:"RATE_LIMIT_BURST,default=200"`
	MaxRequestSize  int64         `env:"MAX_REQUEST_SIZE,default=1048576"`

	// ALLOWED_ORIGINS is a | separated list of origin regexes. CORS is disabled when empty.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,separator=|"`

	// optional: serve the API docs UI at this path (e.g. /scalar)
	DocsUIPath string `env:"DOCS_UI_PATH"`

	// optional: directory served for unknown routes (the front-end build)
	StaticDir string `env:"STATIC_DIR"`

	// auth
	TokenTTL time.Duration `env:"TOKEN_TTL,default=24h"`

	// database settings
	Migrate             bool          `env:"MIGRATE,default=false"`
	DBMaxConnections    int32         `env:"DB_MAX_CONNECTIONS,default=4"`
	DBMinConnections    int32         `env:"DB_MIN_CONNECTIONS,default=0"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME,default=60m"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME,default=30m"`
	DBConnectTimeout    time.Duration `env:"DB_CONNECT_TIMEOUT,default=5s"`
	DatabasePingTimeout time.Duration `env:"DATABASE_PING_TIMEOUT,default=10s"`

	// Required configuration - must be set by environment variables
	DatabaseURL string `env:"DATABASE_URL,required=true"`

	// SECRET_KEY is the base64 encoded key used to sign access tokens (see cmd/keygen)
	SecretKey string `env:"SECRET_KEY,required=true"`
}

// MinSecretKeyBytes is the minimum decoded length of SECRET_KEY
const MinSecretKeyBytes = 32

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"prod":    true,
	"staging": true,
}

// NewServerConfig loads environment variables and returns a ServerEnvironment struct that contains the values
func NewServerConfig() (*ServerEnvironment, error) {
	var cfg ServerEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil

}

// NewServerConfigFromEnvSet builds the config from an explicit set of variables instead of the
// process environment. Defaults apply to anything not in the set.
//
// Servers started in-process by tests use this so that concurrent servers never share (or mutate)
// the process environment.
func NewServerConfigFromEnvSet(es env.EnvSet) (*ServerEnvironment, error) {
	var cfg ServerEnvironment

	if err := env.Unmarshal(es, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment set: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SecretKeyBytes returns the decoded signing key
func (c *ServerEnvironment) SecretKeyBytes() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(c.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("SECRET_KEY is not valid base64: %w", err)
	}
	return key, nil
}

// validateConfig checks for required env variables
func validateConfig(cfg *ServerEnvironment) error {
	// port 0 asks the OS for a free port
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("PORT must be between 0 and 65535")
	}
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}

	key, err := cfg.SecretKeyBytes()
	if err != nil {
		return err
	}
	if len(key) < MinSecretKeyBytes {
		return fmt.Errorf("SECRET_KEY must decode to at least %d bytes, got %d", MinSecretKeyBytes, len(key))
	}

	for _, origin := range cfg.AllowedOrigins {
		if _, err := regexp.Compile(origin); err != nil {
			return fmt.Errorf("ALLOWED_ORIGINS contains an invalid regex %q: %w", origin, err)
		}
	}

	if cfg.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	// Validate database pool configuration
	if cfg.DBMaxConnections < 1 {
		return fmt.Errorf("DB_MAX_CONNECTIONS must be at least 1")
	}
	if cfg.DBMinConnections < 0 {
		return fmt.Errorf("DB_MIN_CONNECTIONS must be 0 or greater")
	}
	if cfg.DBMinConnections > cfg.DBMaxConnections {
		return fmt.Errorf("DB_MIN_CONNECTIONS (%d) cannot be greater than DB_MAX_CONNECTIONS (%d)",
			cfg.DBMinConnections, cfg.DBMaxConnections)
	}

	return nil
}
