package binder

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
)

type bodyKey struct{}

// WithBody stores a parsed body in ctx.
func WithBody(ctx context.Context, body any) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

// BodyFromContext returns the body stored by Middleware.
// The second value is false when the request did not pass through Middleware.
func BodyFromContext(ctx context.Context) (any, bool) {
	if ctx == nil {
		return nil, false
	}
	v := ctx.Value(bodyKey{})
	if v == nil {
		return nil, false
	}
	return v, true
}

// Option configures Middleware.
type Option func(*options)

type options struct {
	maxBodySize int64
}

// WithMaxBodySize sets the largest accepted body in bytes.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// Middleware parses the request body once and stores it in the request context.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	o := &options{maxBodySize: DefaultMaxBodySize}
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := parse(r, o.maxBodySize)
			if err != nil {
				writeError(w, err)
				return
			}
			if body == nil {
				body = map[string]any{}
			}
			next.ServeHTTP(w, r.WithContext(WithBody(r.Context(), body)))
		})
	}
}

func parse(r *http.Request, limit int64) (any, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		return JSON(r, limit)
	case "application/x-www-form-urlencoded":
		return Form(r, limit)
	default:
		return nil, nil
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, ErrBodyTooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"desc": "invalid_body",
		"data": map[string]string{"message": err.Error()},
	})
}
