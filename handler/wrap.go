package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/servekit/pkg/schema"
)

// Option configures Wrap.
type Option func(*options)

type options struct {
	validator    *schema.Validator
	errorHandler ErrorHandler
	route        string
}

// WithValidator sets the schema validator. Defaults to schema.Default().
func WithValidator(v *schema.Validator) Option {
	return func(o *options) {
		if v != nil {
			o.validator = v
		}
	}
}

// WithErrorHandler sets the handler for errors returned by Func and hooks.
func WithErrorHandler(h ErrorHandler) Option {
	return func(o *options) {
		if h != nil {
			o.errorHandler = h
		}
	}
}

// WithRoute sets the route template reported in Context.Route.
func WithRoute(template string) Option {
	return func(o *options) {
		o.route = template
	}
}

// Wrap converts a handler definition to an http.HandlerFunc.
//
// Per request it builds the Context, runs Hook.Before, validates against
// Hook.Schema, runs the handlers in order until one fails or commits,
// runs Hook.After and writes the reply.
func Wrap(def Definition, opts ...Option) http.HandlerFunc {
	o := &options{
		validator: schema.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.errorHandler == nil {
		o.errorHandler = NewErrorHandler(slog.Default())
	}

	hook := def.Hook
	if hook == nil {
		hook = &Hook{}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)
		if o.route != "" {
			ctx.Route = o.route
		}

		if hook.Before != nil {
			if err := hook.Before(ctx); err != nil {
				o.errorHandler(ctx, err)
				return
			}
		}

		if hook.Schema != nil {
			res := o.validator.Validate(ctx.input(), hook.Schema)
			if res.Failed {
				WriteError(w, http.StatusBadRequest, res.Desc, res.Errors)
				return
			}
		}

		var reply *Reply
		for _, h := range def.Handlers {
			out, err := h(ctx)
			if err != nil {
				o.errorHandler(ctx, err)
				return
			}
			if out != nil {
				reply = out
			}
			if ctx.committed {
				return
			}
		}

		if hook.After != nil {
			out, err := hook.After(ctx, reply)
			if err != nil {
				o.errorHandler(ctx, err)
				return
			}
			reply = out
		}

		ctx.finish(reply)
	}
}

// WriteError writes {"desc": desc, "data": data} with the given status.
func WriteError(w http.ResponseWriter, status int, desc string, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{Desc: desc, Data: data})
}

// NotFound replies 404 with the request method and URL.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, ErrNotFound.Key, map[string]string{
		"method": r.Method,
		"url":    r.URL.RequestURI(),
	})
}
