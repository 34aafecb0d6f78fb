package user

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrymomot/servekit/handler"
	"github.com/dmitrymomot/servekit/pkg/httpclient"
	"github.com/dmitrymomot/servekit/pkg/requestid"
	"github.com/dmitrymomot/servekit/pkg/schema"
	"github.com/dmitrymomot/servekit/router"
)

// Prefix is the path group of the user routes.
const Prefix = "users"

// Forwarded headers are copied from the inbound request to the upstream call.
var forwarded = []string{requestid.Header, requestid.SessionHeader, requestid.TraceHeader}

// Upstream sends requests to the remote user service.
type Upstream interface {
	Request(ctx context.Context, opts httpclient.Options) httpclient.Response
}

// Router returns the user routes grouped under /users.
func Router(repo Repository, upstream Upstream, upstreamURL string) *router.Router {
	return router.New().
		Get("/", list(repo)).
		PostRoute("/", handler.WithSchema(create(repo), &handler.Hook{
			Schema: &schema.Schema{Body: CreateSchema},
		})).
		Get("/:id", proxy(upstream, upstreamURL)).
		Group(Prefix)
}

func list(repo Repository) handler.Func {
	return func(ctx *handler.Context) (*handler.Reply, error) {
		users, err := repo.List(ctx)
		if err != nil {
			return nil, err
		}
		return handler.OK(users), nil
	}
}

func create(repo Repository) handler.Func {
	return func(ctx *handler.Context) (*handler.Reply, error) {
		var in CreateInput
		if err := ctx.Bind(&in); err != nil {
			return nil, handler.ErrBadRequest
		}
		u, err := repo.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		return handler.Status(http.StatusCreated, u), nil
	}
}

// proxy relays the upstream status and body verbatim.
func proxy(upstream Upstream, upstreamURL string) handler.Func {
	return func(ctx *handler.Context) (*handler.Reply, error) {
		headers := make(map[string]string, len(forwarded))
		for _, name := range forwarded {
			if v := ctx.Headers[strings.ToLower(name)]; v != "" {
				headers[name] = v
			}
		}

		resp := upstream.Request(ctx, httpclient.Options{
			Method:  http.MethodGet,
			URL:     upstreamURL,
			Params:  map[string]string{"id": ctx.Params["id"]},
			Headers: headers,
		})
		return handler.Status(resp.Status, resp.Data), nil
	}
}
