package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/servekit/pkg/binder"
	"github.com/dmitrymomot/servekit/pkg/schema"
)

// Set holds response mutations declared by a handler.
// They are applied when the reply is written.
type Set struct {
	Headers  map[string]string
	Status   int
	Redirect string
	Cookie   *Cookie
}

// Context is the per-request value passed to handlers.
// It embeds the request's context.Context.
type Context struct {
	Body    any
	Headers map[string]string
	Query   map[string]any
	Params  map[string]string
	Path    string
	Route   string
	Set     Set

	w         http.ResponseWriter
	r         *http.Request
	committed bool
}

// NewContext builds a Context from the request.
// The body comes from binder.Middleware; without it the body is an empty object.
func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	body, ok := binder.BodyFromContext(r.Context())
	if !ok {
		body = map[string]any{}
	}

	ctx := &Context{
		Body:    body,
		Headers: headers(r.Header),
		Query:   binder.Query(r),
		Params:  params(r),
		Path:    r.URL.Path,
		Set:     Set{Status: http.StatusOK},
		w:       w,
		r:       r,
	}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		ctx.Route = rctx.RoutePattern()
	}
	return ctx
}

func headers(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		out[strings.ToLower(name)] = strings.Join(values, ", ")
	}
	return out
}

func params(r *http.Request) map[string]string {
	out := map[string]string{}
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return out
	}
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			out[key] = rctx.URLParams.Values[i]
		}
	}
	return out
}

// Request returns the underlying request.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the underlying writer. Writing to it directly bypasses Set.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Delegate context.Context methods to the request's context
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done returns the request context done channel.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err returns the request context error.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns the request context value for key.
func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

// Cookies returns the cookies sent with the request.
func (c *Context) Cookies() []*http.Cookie {
	return c.r.Cookies()
}

// Cookie returns the named request cookie.
func (c *Context) Cookie(name string) (*http.Cookie, error) {
	return c.r.Cookie(name)
}

// Bind decodes the request body into v through its JSON form.
func (c *Context) Bind(v any) error {
	raw, err := json.Marshal(c.Body)
	if err != nil {
		return errors.Join(ErrBind, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrBind, err)
	}
	return nil
}

// Redirect asks for a redirect once the handler chain completes.
// The status defaults to 302 Found.
func (c *Context) Redirect(url string, status ...int) {
	c.Set.Redirect = url
	c.Set.Status = http.StatusFound
	if len(status) > 0 {
		c.Set.Status = status[0]
	}
}

// Response writes the reply immediately with Set.Headers and Set.Cookie as they
// are at the time of the call. Later calls and later Set changes are ignored.
func (c *Context) Response(status int, body any) {
	if c.committed {
		return
	}
	c.write(status, body)
}

// Committed reports whether the reply has been written.
func (c *Context) Committed() bool {
	return c.committed
}

func (c *Context) input() schema.Input {
	return schema.Input{
		Body:    c.Body,
		Params:  c.Params,
		Query:   c.Query,
		Headers: c.Headers,
	}
}

func (c *Context) applySet() {
	for k, v := range c.Set.Headers {
		c.w.Header().Set(k, v)
	}
	if c.Set.Cookie != nil {
		http.SetCookie(c.w, c.Set.Cookie.httpCookie())
	}
}

// finish writes the reply produced by the handler chain.
func (c *Context) finish(reply *Reply) {
	if c.committed {
		return
	}

	if c.Set.Redirect != "" {
		c.applySet()
		status := c.Set.Status
		if status < http.StatusMultipleChoices || status >= http.StatusBadRequest {
			status = http.StatusFound
		}
		c.committed = true
		http.Redirect(c.w, c.r, c.Set.Redirect, status)
		return
	}

	if reply == nil {
		status := c.Set.Status
		if status == 0 || status == http.StatusOK {
			status = http.StatusNoContent
		}
		c.applySet()
		c.committed = true
		c.w.WriteHeader(status)
		return
	}

	status := reply.Status
	if status == 0 {
		status = c.Set.Status
	}
	if status == 0 {
		status = http.StatusOK
	}
	c.write(status, reply.Body)
}

func (c *Context) write(status int, body any) {
	raw, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		raw, _ = json.Marshal(ErrorBody{
			Desc: ErrInternalServerError.Key,
			Data: map[string]string{"message": errors.Join(ErrEncodeResponse, err).Error()},
		})
	}

	c.applySet()
	c.committed = true
	c.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.w.WriteHeader(status)
	_, _ = c.w.Write(append(raw, '\n'))
}
