package servekit

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/servekit/handler"
	"github.com/dmitrymomot/servekit/pkg/httpserver"
	"github.com/dmitrymomot/servekit/pkg/schema"
)

type config struct {
	log          *slog.Logger
	server       *httpserver.Server
	validator    *schema.Validator
	errorHandler handler.ErrorHandler
	middlewares  []func(http.Handler) http.Handler
	health       []func(context.Context) error
	bodyLimit    int64
}

// Option configures an App.
type Option func(*config)

// WithLogger sets the logger for access logs, handler errors and the default server.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithServer replaces the default server.
func WithServer(srv *httpserver.Server) Option {
	return func(c *config) {
		c.server = srv
	}
}

// WithValidator sets the schema validator used by every route.
func WithValidator(v *schema.Validator) Option {
	return func(c *config) {
		c.validator = v
	}
}

// WithErrorHandler sets the handler for errors returned by route handlers.
func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(c *config) {
		c.errorHandler = h
	}
}

// WithMiddleware appends middlewares after the built-in stack.
func WithMiddleware(mws ...func(http.Handler) http.Handler) Option {
	return func(c *config) {
		c.middlewares = append(c.middlewares, mws...)
	}
}

// WithHealthCheck adds readiness checks to the health endpoint.
func WithHealthCheck(checks ...func(context.Context) error) Option {
	return func(c *config) {
		c.health = append(c.health, checks...)
	}
}

// WithMaxBodySize sets the request body limit. It panics if n is not positive.
func WithMaxBodySize(n int64) Option {
	if n <= 0 {
		panic("servekit: max body size must be positive")
	}
	return func(c *config) {
		c.bodyLimit = n
	}
}
