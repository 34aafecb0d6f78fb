// Package httpserver runs an http.Handler with connection tracking and
// two-phase graceful shutdown.
//
// Listen binds the address, calls onReady once listening begins and blocks.
// SIGINT, SIGTERM, SIGQUIT, cancellation of the context or a call to Shutdown
// start a single shutdown sequence:
//
//  1. The listener is closed and http.Server.Shutdown drains in-flight
//     requests. When it completes, onReady is called again and Listen
//     returns nil.
//  2. A grace timer (10s by default, WithShutdownTimeout or
//     HTTP_SHUTDOWN_TIMEOUT) runs in parallel. If it fires first every open
//     connection is closed, onReady is called and Listen returns
//     ErrForcedShutdown.
//
// Further signals during shutdown are ignored. The package never exits the
// process; ExitCode maps the result to 0 (clean), 1 (forced) or 2 (start
// failure) for main to pass to os.Exit.
//
// # Usage
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	err := srv.Listen(ctx, mux, func() { log.Info("ready") })
//	os.Exit(httpserver.ExitCode(err))
//
// HealthCheckHandler serves liveness and readiness checks.
package httpserver
