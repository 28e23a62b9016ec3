package testenv

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type runOptions struct {
	features   Features
	controller *Controller
}

// Option configures Run.
type Option func(*runOptions)

// WithBrowser adds a webdriver session (RunContext.Browser). Requires a webdriver at WEBDRIVER_URL.
func WithBrowser() Option {
	return func(o *runOptions) { o.features.Browser = true }
}

// WithoutHTTPClient leaves RunContext.HTTP nil.
func WithoutHTTPClient() Option {
	return func(o *runOptions) { o.features.HTTPClient = false }
}

// WithController runs on c instead of the default controller.
func WithController(c *Controller) Option {
	return func(o *runOptions) { o.controller = c }
}

var (
	defaultOnce       sync.Once
	defaultController *Controller
	defaultErr        error
)

func sharedController() (*Controller, error) {
	defaultOnce.Do(func() {
		defaultController, defaultErr = NewDefaultController()
	})
	return defaultController, defaultErr
}

// Run runs body against a fresh environment named after the test and fails t if setup fails,
// body panics, or body calls t.FailNow. body may use t (and require/assert) as usual; a body
// that calls t.Skip leaves the test skipped.
//
// Teardown always completes before Run returns.
func Run(t *testing.T, body func(t *testing.T, rc *RunContext), opts ...Option) {
	t.Helper()

	o := runOptions{features: Features{HTTPClient: true}}
	for _, opt := range opts {
		opt(&o)
	}

	if o.controller == nil {
		c, err := sharedController()
		if err != nil {
			t.Fatalf("test environment setup failed: %v", err)
		}
		o.controller = c
	}

	err := o.controller.Run(t.Context(), t.Name(), o.features, func(ctx context.Context, rc *RunContext) error {
		body(t, rc)
		return nil
	})
	if err == nil {
		return
	}

	var setupErr *SetupError
	if errors.As(err, &setupErr) {
		t.Fatalf("test environment setup failed (%s): %v", setupErr.Stage, setupErr.Err)
	}

	var bodyErr *BodyError
	if errors.As(err, &bodyErr) {
		switch {
		case bodyErr.Panicked():
			t.Fatalf("test body panicked: %v\n%s", bodyErr.Panic, bodyErr.Stack)
		case errors.Is(bodyErr, ErrBodyAborted):
			// the body ended through t.SkipNow or t.FailNow and already recorded that on t
			if t.Skipped() && !t.Failed() {
				t.SkipNow()
			}
			t.FailNow()
		default:
			t.Fatal(bodyErr.Err)
		}
	}

	t.Fatal(err)
}
