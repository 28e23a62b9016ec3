package testenv

import (
	"errors"
	"fmt"
)

var (
	// ErrPortTimeout is returned when the server does not announce its port within the setup timeout.
	ErrPortTimeout = errors.New("server did not announce its port before the timeout")

	// ErrServerExited is returned when the server goroutine ends before announcing its port.
	ErrServerExited = errors.New("server exited before announcing its port")

	// ErrWebDriverUnavailable is returned when a browser was requested and the webdriver endpoint does not answer.
	ErrWebDriverUnavailable = errors.New("webdriver endpoint unreachable")

	// ErrBodyAborted is the BodyError cause when the body goroutine exited without returning,
	// e.g. after t.FailNow.
	ErrBodyAborted = errors.New("test body exited without returning")
)

// Stage names the setup step that failed.
type Stage string

const (
	StageSecret   Stage = "secret"
	StageDatabase Stage = "database"
	StageConfig   Stage = "config"
	StageServer   Stage = "server"
	StageClients  Stage = "clients"
)

// SetupError means the environment could not be built. The test body was not run.
type SetupError struct {
	Stage Stage
	Err   error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("test environment setup failed at %s: %v", e.Stage, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// BodyError reports a test body that returned an error or panicked.
// It is returned only after teardown has completed.
type BodyError struct {
	// Err is the error returned by the body (nil when it panicked)
	Err error

	// Panic is the recovered value and Stack the stack of the panicking goroutine
	Panic any
	Stack []byte
}

func (e *BodyError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("test body panicked: %v", e.Panic)
	}
	return fmt.Sprintf("test body failed: %v", e.Err)
}

func (e *BodyError) Unwrap() error { return e.Err }

// Panicked reports whether the body panicked rather than returning an error.
func (e *BodyError) Panicked() bool {
	return e.Panic != nil
}
