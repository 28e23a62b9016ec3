package testenv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/conduit-demo/app/internal/app"
	"github.com/conduit-demo/app/internal/logger"
)

// App is a built application. The launcher serves Handler and calls Close after serving stops.
type App interface {
	Handler() http.Handler
	Close()
}

// AppFactory builds the application for one run. It is called after the listener is bound.
type AppFactory func(ctx context.Context, cfg RunConfig) (App, error)

// ConduitApp builds the conduit server (database pool, migrations, router) for a run.
func ConduitApp(appLogger *slog.Logger) AppFactory {
	return func(ctx context.Context, rc RunConfig) (App, error) {
		cfg, err := rc.ServerEnvironment()
		if err != nil {
			return nil, err
		}
		return app.Build(ctx, cfg, appLogger)
	}
}

// Launcher starts the application in its own goroutine on an OS assigned port.
type Launcher struct {
	factory     AppFactory
	portTimeout time.Duration
	logger      *slog.Logger
}

func NewLauncher(factory AppFactory, portTimeout time.Duration, logger *slog.Logger) *Launcher {
	return &Launcher{factory: factory, portTimeout: portTimeout, logger: logger}
}

// Launch starts the server and waits for it to announce its port.
//
// The serve goroutine binds the listener, builds the app, sends the port on a single use channel
// and then serves until the handle is cancelled. The wait is bounded by the launcher's port timeout:
// expiry gives ErrPortTimeout, a goroutine that ends without announcing gives ErrServerExited.
// The returned handle must be cancelled on every path, including errors.
func (l *Launcher) Launch(ctx context.Context, rc RunConfig) (*ServerHandle, int, error) {
	serverCtx, cancel := context.WithCancel(ctx)

	h := &ServerHandle{
		cancel: cancel,
		done:   make(chan struct{}),
		logger: l.logger,
	}

	ports := make(chan int, 1)

	go func() {
		defer close(h.done)
		defer close(ports)
		h.serveErr = h.serve(serverCtx, l.factory, rc, ports)
	}()

	timer := time.NewTimer(l.portTimeout)
	defer timer.Stop()

	select {
	case port, ok := <-ports:
		if !ok {
			// the goroutine has returned, so serveErr is set
			<-h.done
			return h, 0, fmt.Errorf("%w: %w", ErrServerExited, h.serveErr)
		}
		l.logger.Debug("server port announced", slog.Int("port", port))
		return h, port, nil
	case <-timer.C:
		return h, 0, fmt.Errorf("%w (%s)", ErrPortTimeout, l.portTimeout)
	case <-ctx.Done():
		return h, 0, ctx.Err()
	}
}

// ServerHandle controls a server started by Launch.
type ServerHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
	logger *slog.Logger

	mu  sync.Mutex
	srv *http.Server
	app App

	// written by the serve goroutine before done is closed
	serveErr error

	cancelOnce sync.Once
}

func (h *ServerHandle) serve(ctx context.Context, factory AppFactory, rc RunConfig, ports chan<- int) error {
	ln, err := net.Listen("tcp", net.JoinHostPort(rc.Host, strconv.Itoa(rc.Port)))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	application, err := factory(ctx, rc)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("failed to build app: %w", err)
	}

	srv := &http.Server{
		Handler:           application.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(h.logger.Handler(), slog.LevelDebug),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	h.mu.Lock()
	if ctx.Err() != nil {
		// cancelled while the app was being built
		h.mu.Unlock()
		_ = ln.Close()
		application.Close()
		return ctx.Err()
	}
	h.srv = srv
	h.app = application
	h.mu.Unlock()

	ports <- ln.Addr().(*net.TCPAddr).Port

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Cancel stops the server without draining in-flight requests, waits for the serve goroutine to
// return and releases the app. It is safe to call more than once and from any path.
func (h *ServerHandle) Cancel() {
	h.cancelOnce.Do(func() {
		h.cancel()

		h.mu.Lock()
		srv, application := h.srv, h.app
		h.mu.Unlock()

		if srv != nil {
			if err := srv.Close(); err != nil {
				h.logger.Debug("server close error", slog.String("error", err.Error()))
			}
		}

		<-h.done

		if application != nil {
			application.Close()
		}
		h.logger.Debug("server stopped")
	})
}

// Done is closed once the serve goroutine has returned.
func (h *ServerHandle) Done() <-chan struct{} {
	return h.done
}

// Err returns the serve goroutine's error. It is only meaningful after Done is closed.
func (h *ServerHandle) Err() error {
	select {
	case <-h.done:
		return h.serveErr
	default:
		return nil
	}
}

// discardLogger is used when server logs are disabled.
func discardLogger() *slog.Logger {
	return logger.NewLogger(nil, logger.LevelNone, "test")
}
