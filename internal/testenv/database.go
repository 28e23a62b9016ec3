package testenv

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DatabaseHandle is a running, disposable database.
type DatabaseHandle interface {
	Name() string

	// Port is the host port the database is reachable on
	Port() int

	ConnString() string

	// Terminate stops the database, allowing grace for a clean shutdown (0 kills it immediately),
	// and removes it. Only the first call has any effect.
	Terminate(ctx context.Context, grace time.Duration) error
}

// DatabaseProvisioner starts an empty database called name and returns once it accepts connections.
type DatabaseProvisioner interface {
	Provision(ctx context.Context, name string) (DatabaseHandle, error)
}

const (
	// well known credentials of the disposable database
	dbUser     = "postgres"
	dbPassword = "postgres"

	postgresPort = "5432/tcp"

	// maximum identifier length in postgres
	maxDatabaseNameLen = 63

	// LabelDatabase is set on every container started by the PostgresProvisioner
	LabelDatabase = "dev.conduit.testenv.database"
)

// DatabaseName turns a test name into a postgres database name.
//
// The result is lower case and only contains [a-z0-9_]: every other rune (including the "/" of
// subtests) becomes "_". Names starting with a digit get a "t_" prefix and the result is cut to 63 bytes.
func DatabaseName(testName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(testName) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	name := b.String()
	if name == "" {
		name = "testenv"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "t_" + name
	}
	if len(name) > maxDatabaseNameLen {
		name = name[:maxDatabaseNameLen]
	}
	return name
}

// PostgresProvisioner starts one postgres container per run with testcontainers.
type PostgresProvisioner struct {
	image  string
	logger *slog.Logger
}

func NewPostgresProvisioner(image string, logger *slog.Logger) *PostgresProvisioner {
	return &PostgresProvisioner{image: image, logger: logger}
}

func (p *PostgresProvisioner) Provision(ctx context.Context, name string) (DatabaseHandle, error) {
	start := time.Now()

	container, err := postgres.Run(ctx, p.image,
		postgres.WithDatabase(name),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// postgres logs this twice: once for the init scripts, once for the real start
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(postgresPort),
		),
		testcontainers.CustomizeRequestOption(func(req *testcontainers.GenericContainerRequest) error {
			if req.Labels == nil {
				req.Labels = make(map[string]string)
			}
			req.Labels[LabelDatabase] = name
			return nil
		}),
	)
	if err != nil {
		// Run can return a container that failed its wait strategy
		if container != nil {
			_ = container.Terminate(context.WithoutCancel(ctx))
		}
		return nil, fmt.Errorf("failed to start postgres container %s: %w", p.image, err)
	}

	handle := &postgresHandle{name: name, container: container}

	mapped, err := container.MappedPort(ctx, postgresPort)
	if err != nil {
		_ = handle.Terminate(context.WithoutCancel(ctx), 0)
		return nil, fmt.Errorf("failed to resolve postgres port: %w", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		_ = handle.Terminate(context.WithoutCancel(ctx), 0)
		return nil, fmt.Errorf("failed to resolve postgres host: %w", err)
	}

	handle.port = mapped.Int()
	handle.host = host

	p.logger.Debug("database ready",
		slog.String("database", name),
		slog.String("container_id", container.GetContainerID()),
		slog.Int("port", handle.port),
		slog.Duration("duration", time.Since(start)),
	)

	return handle, nil
}

// dbContainer is the part of a testcontainers container the handle needs to shut it down.
type dbContainer interface {
	Stop(ctx context.Context, timeout *time.Duration) error
	Terminate(ctx context.Context, opts ...testcontainers.TerminateOption) error
}

type postgresHandle struct {
	name      string
	host      string
	port      int
	container dbContainer

	terminateOnce sync.Once
	terminateErr  error
}

func (h *postgresHandle) Name() string { return h.name }
func (h *postgresHandle) Port() int    { return h.port }

func (h *postgresHandle) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", dbUser, dbPassword, h.host, h.port, h.name)
}

func (h *postgresHandle) Terminate(ctx context.Context, grace time.Duration) error {
	h.terminateOnce.Do(func() {
		if err := h.container.Stop(ctx, &grace); err != nil {
			h.terminateErr = fmt.Errorf("failed to stop postgres container: %w", err)
		}
		if err := h.container.Terminate(ctx); err != nil && h.terminateErr == nil {
			h.terminateErr = fmt.Errorf("failed to remove postgres container: %w", err)
		}
	})
	return h.terminateErr
}
