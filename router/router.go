package router

import (
	"net/http"
	"slices"
	"strings"
	"unicode"

	"github.com/dmitrymomot/servekit/handler"
)

// Route is a registered method, path template and handler chain.
type Route struct {
	Method   string
	Path     string
	Handlers []handler.Func
	Hook     *handler.Hook
}

// Router is an ordered route table.
// It is not safe for concurrent registration.
type Router struct {
	routes []Route
}

// New returns an empty Router.
func New() *Router {
	return &Router{}
}

// Add registers a route. Path gets a leading slash if missing.
// It panics on an unsupported method or an empty handler chain.
func (rt *Router) Add(method, path string, handlers []handler.Func, hook *handler.Hook) *Router {
	method = strings.ToUpper(method)
	if !supported(method) {
		panic("router: unsupported method " + method)
	}
	if len(handlers) == 0 || slices.ContainsFunc(handlers, isNil) {
		panic("router: route " + method + " " + path + " has no handler")
	}

	rt.routes = append(rt.routes, Route{
		Method:   method,
		Path:     normalize(path),
		Handlers: slices.Clone(handlers),
		Hook:     hook,
	})
	return rt
}

func isNil(h handler.Func) bool { return h == nil }

func (rt *Router) add(method, path string, h handler.Func, hooks []*handler.Hook) *Router {
	var hook *handler.Hook
	if len(hooks) > 0 {
		hook = hooks[0]
	}
	return rt.Add(method, path, []handler.Func{h}, hook)
}

// Get registers a GET route with an optional hook.
func (rt *Router) Get(path string, h handler.Func, hooks ...*handler.Hook) *Router {
	return rt.add(http.MethodGet, path, h, hooks)
}

// Post registers a POST route with an optional hook.
func (rt *Router) Post(path string, h handler.Func, hooks ...*handler.Hook) *Router {
	return rt.add(http.MethodPost, path, h, hooks)
}

// Put registers a PUT route with an optional hook.
func (rt *Router) Put(path string, h handler.Func, hooks ...*handler.Hook) *Router {
	return rt.add(http.MethodPut, path, h, hooks)
}

// Patch registers a PATCH route with an optional hook.
func (rt *Router) Patch(path string, h handler.Func, hooks ...*handler.Hook) *Router {
	return rt.add(http.MethodPatch, path, h, hooks)
}

// Delete registers a DELETE route with an optional hook.
func (rt *Router) Delete(path string, h handler.Func, hooks ...*handler.Hook) *Router {
	return rt.add(http.MethodDelete, path, h, hooks)
}

// GetRoute registers a GET route from a handler definition.
func (rt *Router) GetRoute(path string, def handler.Definition) *Router {
	return rt.Add(http.MethodGet, path, def.Handlers, def.Hook)
}

// PostRoute registers a POST route from a handler definition.
func (rt *Router) PostRoute(path string, def handler.Definition) *Router {
	return rt.Add(http.MethodPost, path, def.Handlers, def.Hook)
}

// PutRoute registers a PUT route from a handler definition.
func (rt *Router) PutRoute(path string, def handler.Definition) *Router {
	return rt.Add(http.MethodPut, path, def.Handlers, def.Hook)
}

// PatchRoute registers a PATCH route from a handler definition.
func (rt *Router) PatchRoute(path string, def handler.Definition) *Router {
	return rt.Add(http.MethodPatch, path, def.Handlers, def.Hook)
}

// DeleteRoute registers a DELETE route from a handler definition.
func (rt *Router) DeleteRoute(path string, def handler.Definition) *Router {
	return rt.Add(http.MethodDelete, path, def.Handlers, def.Hook)
}

// Routes returns a copy of the routes in registration order.
func (rt *Router) Routes() []Route {
	return slices.Clone(rt.routes)
}

// Len returns the number of routes held.
func (rt *Router) Len() int {
	return len(rt.routes)
}

// Group prefixes every route currently held with prefix.
// An empty prefix is a no-op; a prefix containing whitespace panics.
func (rt *Router) Group(prefix string) *Router {
	if prefix == "" {
		return rt
	}
	if strings.ContainsFunc(prefix, unicode.IsSpace) {
		panic("router: group prefix must not contain whitespace: " + prefix)
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	for i := range rt.routes {
		p := strings.TrimSuffix(prefix+rt.routes[i].Path, "/")
		if p == "" {
			p = "/"
		}
		rt.routes[i].Path = p
	}
	return rt
}

// Merge appends the routes of others in order.
func (rt *Router) Merge(others ...*Router) *Router {
	for _, o := range others {
		if o == nil {
			continue
		}
		rt.routes = append(rt.routes, o.routes...)
	}
	return rt
}

// Reset drops every route.
func (rt *Router) Reset() {
	rt.routes = nil
}

func supported(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func normalize(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}
