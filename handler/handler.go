package handler

import "github.com/dmitrymomot/servekit/pkg/schema"

// Func handles a request.
// It either returns a reply, returns nil after calling ctx.Response, or
// returns an error for the ErrorHandler. When no handler replies and nothing
// is committed the response is 204, or ctx.Set.Status with an empty body
// when it was set to something other than 200.
type Func func(ctx *Context) (*Reply, error)

// Reply is the value model of a response.
// A zero Status falls back to ctx.Set.Status.
type Reply struct {
	Status int
	Body   any
}

// OK returns a reply that uses ctx.Set.Status.
func OK(body any) *Reply {
	return &Reply{Body: body}
}

// Status returns a reply with an explicit status.
func Status(status int, body any) *Reply {
	return &Reply{Status: status, Body: body}
}

// Hook carries a route's schema and optional transforms.
type Hook struct {
	Schema *schema.Schema

	// Before runs after the context is built and before validation.
	// A non-nil error goes to the ErrorHandler.
	Before func(ctx *Context) error

	// After receives the reply of the handler chain and may replace it.
	// It does not run when a handler committed through ctx.Response.
	After func(ctx *Context, reply *Reply) (*Reply, error)
}

// Definition is a handler chain bundled with its hook.
type Definition struct {
	Handlers []Func
	Hook     *Hook
}

// WithSchema bundles a single handler with its hook.
func WithSchema(h Func, hook *Hook) Definition {
	return Definition{Handlers: []Func{h}, Hook: hook}
}

// Chain bundles several handlers run in order.
func Chain(hook *Hook, handlers ...Func) Definition {
	return Definition{Handlers: handlers, Hook: hook}
}

// ErrorBody is the JSON shape of every error reply written by this package.
type ErrorBody struct {
	Desc string `json:"desc"`
	Data any    `json:"data"`
}
