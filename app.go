package servekit

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/servekit/handler"
	"github.com/dmitrymomot/servekit/pkg/binder"
	"github.com/dmitrymomot/servekit/pkg/httpserver"
	"github.com/dmitrymomot/servekit/pkg/logger"
	"github.com/dmitrymomot/servekit/pkg/requestid"
	"github.com/dmitrymomot/servekit/router"
)

// HealthPath serves the readiness check.
const HealthPath = "/healthz"

// App owns the master route table, the dispatcher and the server lifecycle.
type App struct {
	cfg    *config
	routes *router.Router

	once    sync.Once
	handler http.Handler
}

// New creates an App.
func New(opts ...Option) *App {
	cfg := &config{
		log:       logger.Noop(),
		bodyLimit: binder.DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.errorHandler == nil {
		cfg.errorHandler = handler.NewErrorHandler(cfg.log)
	}
	if cfg.server == nil {
		cfg.server = httpserver.New(httpserver.WithLogger(cfg.log))
	}
	return &App{cfg: cfg, routes: router.New()}
}

// Router merges the routes of every given router into the master table.
// Routes added after Register has run are ignored.
func (a *App) Router(routers ...*router.Router) *App {
	a.routes.Merge(routers...)
	return a
}

// Register binds the master table onto a chi mux behind the middleware stack
// and returns it. The table is consumed: later calls return the same handler.
func (a *App) Register() http.Handler {
	a.once.Do(func() {
		mux := chi.NewRouter()
		mux.Use(
			middleware.RealIP,
			requestid.Middleware,
			accessLog(a.cfg.log),
			middleware.Recoverer,
			binder.Middleware(binder.WithMaxBodySize(a.cfg.bodyLimit)),
		)
		mux.Use(a.cfg.middlewares...)

		mux.Get(HealthPath, httpserver.HealthCheckHandler(a.cfg.log, a.cfg.health...))

		opts := []handler.Option{handler.WithErrorHandler(a.cfg.errorHandler)}
		if a.cfg.validator != nil {
			opts = append(opts, handler.WithValidator(a.cfg.validator))
		}
		router.Bind(mux, a.routes.Routes(), opts...)

		a.cfg.log.Info("routes registered",
			logger.Component("app"),
			slog.Int("routes", a.routes.Len()),
		)
		a.routes.Reset()
		a.handler = mux
	})
	return a.handler
}

// Listen registers the routes if needed and serves them until shutdown.
// onReady is called once listening begins and again when shutdown completes.
// The result maps to a process exit code through httpserver.ExitCode.
func (a *App) Listen(ctx context.Context, onReady func()) error {
	return a.cfg.server.Listen(ctx, a.Register(), onReady)
}

// Shutdown starts the graceful shutdown of a running Listen.
func (a *App) Shutdown(ctx context.Context) error {
	return a.cfg.server.Shutdown(ctx)
}

// Server returns the underlying server.
func (a *App) Server() *httpserver.Server {
	return a.cfg.server
}
