package httpserver

import "errors"

var (
	// ErrStart indicates that the server failed to start.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
	// ErrForcedShutdown indicates that connections were still open when the
	// shutdown timeout expired and were closed forcibly.
	ErrForcedShutdown = errors.New("server did not close in time, connections were forcibly closed")
)

// Process exit codes returned by ExitCode.
const (
	ExitOK     = 0
	ExitForced = 1
	ExitStart  = 2
)

// ExitCode maps the result of Run or Listen to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrStart):
		return ExitStart
	default:
		return ExitForced
	}
}
