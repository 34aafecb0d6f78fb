package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/servekit/handler"
)

// Bind registers routes on mux through handler.Wrap and installs the
// not-found reply for unmatched paths and methods.
func Bind(mux chi.Router, routes []Route, opts ...handler.Option) {
	for _, route := range routes {
		def := handler.Definition{Handlers: route.Handlers, Hook: route.Hook}
		routeOpts := append(append([]handler.Option(nil), opts...), handler.WithRoute(route.Path))
		h := handler.Wrap(def, routeOpts...)
		pattern := Pattern(route.Path)

		switch route.Method {
		case http.MethodGet:
			mux.Get(pattern, h)
		case http.MethodPost:
			mux.Post(pattern, h)
		case http.MethodPut:
			mux.Put(pattern, h)
		case http.MethodPatch:
			mux.Patch(pattern, h)
		case http.MethodDelete:
			mux.Delete(pattern, h)
		}
	}

	mux.NotFound(handler.NotFound)
	mux.MethodNotAllowed(handler.NotFound)
}
