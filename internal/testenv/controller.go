package testenv

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"

	"github.com/conduit-demo/app/internal/logger"
)

// Body is the code under test. It runs in its own goroutine; returning an error or panicking
// fails the run, after teardown.
type Body func(ctx context.Context, rc *RunContext) error

// Controller provisions, runs and tears down test environments. A Controller can serve any
// number of concurrent runs.
type Controller struct {
	cfg       *Config
	databases DatabaseProvisioner
	launcher  *Launcher
	clients   *ClientFactory
	logger    *slog.Logger
}

func NewController(cfg *Config, databases DatabaseProvisioner, factory AppFactory, clients *ClientFactory, log *slog.Logger) *Controller {
	return &Controller{
		cfg:       cfg,
		databases: databases,
		launcher:  NewLauncher(factory, cfg.SetupTimeout, log),
		clients:   clients,
		logger:    log,
	}
}

// NewDefaultController returns a controller that starts postgres containers and the conduit server,
// configured from the environment (see Config).
func NewDefaultController() (*Controller, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	log := discardLogger()
	if cfg.EnableServerLogs {
		log = logger.NewLogger(os.Stderr, logger.ParseLogLevel("debug"), "test")
	}

	return NewController(
		cfg,
		NewPostgresProvisioner(cfg.PostgresImage, log),
		ConduitApp(log),
		NewClientFactory(cfg.WebDriverURL, cfg.HTTPClientTimeout, log),
		log,
	), nil
}

// runEnvelope owns everything a run acquired so that teardown can release it from one place.
type runEnvelope struct {
	db     DatabaseHandle
	server *ServerHandle
	rc     *RunContext
}

// Run builds an environment called name, runs body against it and tears the environment down.
//
// A *SetupError is returned when the environment could not be built; body is not run and
// whatever was already started is released. A *BodyError is returned when body failed or panicked,
// always after teardown has finished. Teardown errors are logged and never returned.
func (c *Controller) Run(ctx context.Context, name string, features Features, body Body) error {
	runID := uuid.NewString()
	log := c.logger.With(slog.String("run", name), slog.String("run_id", runID))

	env := &runEnvelope{}
	if err := c.setup(ctx, log, name, runID, features, env); err != nil {
		log.Error("test environment setup failed", slog.String("error", err.Error()))
		c.teardown(ctx, log, env)
		return err
	}

	bodyErr := c.runBody(ctx, env.rc, body)

	c.teardown(ctx, log, env)

	if bodyErr != nil {
		log.Debug("test body failed", slog.String("error", bodyErr.Error()))
		return bodyErr
	}
	return nil
}

func (c *Controller) setup(ctx context.Context, log *slog.Logger, name, runID string, features Features, env *runEnvelope) error {
	start := time.Now()

	secret, err := GenerateSecret()
	if err != nil {
		return &SetupError{Stage: StageSecret, Err: err}
	}

	dbName := DatabaseName(name)
	db, err := c.databases.Provision(ctx, dbName)
	if err != nil {
		return &SetupError{Stage: StageDatabase, Err: err}
	}
	env.db = db

	runCfg := NewRunConfig(db.ConnString(), secret, c.cfg.DocsUIPath, c.cfg.StaticDir)
	if _, err := runCfg.ServerEnvironment(); err != nil {
		return &SetupError{Stage: StageConfig, Err: err}
	}

	server, port, err := c.launcher.Launch(ctx, runCfg)
	env.server = server
	if err != nil {
		return &SetupError{Stage: StageServer, Err: err}
	}

	rc, err := c.clients.Build(ctx, fmt.Sprintf("http://localhost:%d", port), features)
	if err != nil {
		return &SetupError{Stage: StageClients, Err: err}
	}
	rc.DatabaseURL = db.ConnString()
	rc.RunID = runID
	env.rc = rc

	log.Info("test environment ready",
		slog.String("url", rc.URL),
		slog.String("database", dbName),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// runBody runs body in its own goroutine and reports how it ended. A panic is captured
// with its stack and does not propagate.
func (c *Controller) runBody(ctx context.Context, rc *RunContext, body Body) error {
	var (
		wg       conc.WaitGroup
		err      error
		returned bool
	)

	wg.Go(func() {
		err = body(ctx, rc)
		returned = true
	})

	if recovered := wg.WaitAndRecover(); recovered != nil {
		return &BodyError{Panic: recovered.Value, Stack: recovered.Stack}
	}
	if !returned {
		return &BodyError{Err: ErrBodyAborted}
	}
	if err != nil {
		return &BodyError{Err: err}
	}
	return nil
}

// teardown stops the server, then the database (no grace period), then the browser session.
// It runs on a context detached from ctx so that an expired test context cannot skip it.
func (c *Controller) teardown(ctx context.Context, log *slog.Logger, env *runEnvelope) {
	teardownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.TeardownTimeout)
	defer cancel()

	if env.server != nil {
		env.server.Cancel()
	}

	if env.db != nil {
		if err := env.db.Terminate(teardownCtx, 0); err != nil {
			log.Warn("database teardown failed", slog.String("database", env.db.Name()), slog.String("error", err.Error()))
		} else {
			log.Debug("database stopped", slog.String("database", env.db.Name()))
		}
	}

	if env.rc != nil && env.rc.Browser != nil {
		if err := env.rc.Browser.Quit(); err != nil {
			log.Warn("webdriver session close failed", slog.String("error", err.Error()))
		}
	}

	log.Debug("test environment torn down")
}
