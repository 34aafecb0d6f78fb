package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/servekit/handler"
	"github.com/dmitrymomot/servekit/pkg/binder"
	"github.com/dmitrymomot/servekit/pkg/schema"
	"github.com/dmitrymomot/servekit/router"
)

func text(s string) handler.Func {
	return func(ctx *handler.Context) (*handler.Reply, error) {
		ctx.Response(http.StatusOK, s)
		return nil, nil
	}
}

func mount(rt *router.Router, opts ...handler.Option) http.Handler {
	mux := chi.NewRouter()
	mux.Use(binder.Middleware())
	router.Bind(mux, rt.Routes(), opts...)
	return mux
}

func do(t *testing.T, h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Desc string         `json:"desc"`
	Data []schema.Issue `json:"data"`
}

func decodeIssues(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var out errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func sampleRoutes() *router.Router {
	idParams := &handler.Hook{Schema: &schema.Schema{
		Params: schema.Object(schema.Props{"id": schema.String()}),
	}}

	return router.New().
		Get("", text("Hello World")).
		Post("/", text("Hello World")).
		Patch("/:id", text("Hello World")).
		Put("/:id", text("Put: Hello World")).
		Delete("/:id", text("Hello World")).
		Get("/xx/:id/:name", text("Hello World"), &handler.Hook{Schema: &schema.Schema{
			Params: schema.Object(schema.Props{
				"id":   schema.String(),
				"name": schema.Number(),
			}),
		}}).
		Put("/x/:id", text("x"), idParams).
		Post("/x", text("x"), &handler.Hook{Schema: &schema.Schema{
			Body: schema.Object(schema.Props{"x": schema.String()}),
		}}).
		Delete("/x/:id", text("x"), idParams).
		Patch("/x/:id", text("x"), idParams).
		GetRoute("/x", handler.WithSchema(
			func(ctx *handler.Context) (*handler.Reply, error) {
				key := ctx.Headers["x-api-key"]
				if key == "" {
					key = "1vcxvcbfkkkkkhfngxnfnvnb2"
				}
				ctx.Set.Headers = map[string]string{"x-api-key": key}
				ctx.Response(http.StatusOK, "x")
				return nil, nil
			},
			&handler.Hook{Schema: &schema.Schema{
				Headers: schema.Object(schema.Props{
					"x-api-key": schema.Optional(schema.String(schema.MinLength(3))),
				}),
			}},
		))
}

func TestBind_Methods(t *testing.T) {
	t.Parallel()

	h := mount(sampleRoutes())

	tests := []struct {
		method, target, body string
		headers              []string
		want                 int
	}{
		{http.MethodGet, "/", "", nil, http.StatusOK},
		{http.MethodPost, "/", "", nil, http.StatusOK},
		{http.MethodPatch, "/1", "", nil, http.StatusOK},
		{http.MethodPut, "/1", "", nil, http.StatusOK},
		{http.MethodDelete, "/1", "", nil, http.StatusOK},
		{http.MethodGet, "/x", "", []string{"x-api-key", "1vcxvcbfkkkkkhfngxnfnvnb2"}, http.StatusOK},
		{http.MethodGet, "/x", "", nil, http.StatusOK},
		{http.MethodPost, "/x", `{"x":"x"}`, nil, http.StatusOK},
		{http.MethodPut, "/x/1", "", nil, http.StatusOK},
		{http.MethodDelete, "/x/1", "", nil, http.StatusOK},
		{http.MethodPatch, "/x/1", "", nil, http.StatusOK},
		{http.MethodPost, "/x", "", nil, http.StatusBadRequest},
		{http.MethodGet, "/xx/1/2", "", nil, http.StatusBadRequest},
		{http.MethodGet, "/x", "", []string{"x-api-key", "12"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			t.Parallel()
			rec := do(t, h, tt.method, tt.target, tt.body, tt.headers...)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestBind_PutBody(t *testing.T) {
	t.Parallel()

	rec := do(t, mount(sampleRoutes()), http.MethodPut, "/1", "")
	assert.JSONEq(t, `"Put: Hello World"`, rec.Body.String())
}

func TestBind_MissingBodyProperty(t *testing.T) {
	t.Parallel()

	rec := do(t, mount(sampleRoutes()), http.MethodPost, "/x", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeIssues(t, rec)
	assert.Equal(t, "invalid_request", body.Desc)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "body", body.Data[0].Type)
	assert.Equal(t, "/x", body.Data[0].Path)
	assert.NotEmpty(t, body.Data[0].Message)
}

func TestBind_HeaderEcho(t *testing.T) {
	t.Parallel()

	rec := do(t, mount(sampleRoutes()), http.MethodGet, "/x", "")
	assert.Equal(t, "1vcxvcbfkkkkkhfngxnfnvnb2", rec.Header().Get("X-Api-Key"))
}

func TestBind_CombinedParamsAndQueryErrors(t *testing.T) {
	t.Parallel()

	rt := router.New().Get("/items/:id/:count", text("ok"), &handler.Hook{Schema: &schema.Schema{
		Params: schema.Object(schema.Props{"count": schema.Integer()}),
		Query:  schema.Object(schema.Props{"name": schema.String()}),
	}})

	rec := do(t, mount(rt), http.MethodGet, "/items/1/many", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeIssues(t, rec)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "params", body.Data[0].Type)
	assert.Equal(t, "/count", body.Data[0].Path)
	assert.Equal(t, "query", body.Data[1].Type)
	assert.Equal(t, "/name", body.Data[1].Path)
}

func TestBind_Group(t *testing.T) {
	t.Parallel()

	rt := router.New().
		Get("/xx", func(ctx *handler.Context) (*handler.Reply, error) {
			ctx.Response(http.StatusOK, "Hello World")
			return nil, nil
		}, &handler.Hook{Schema: &schema.Schema{
			Query: schema.Object(schema.Props{"name": schema.String()}),
		}}).
		Get("/xzx", func(ctx *handler.Context) (*handler.Reply, error) {
			ctx.Set.Headers = map[string]string{"x-api-key": "1vcxvcbfkkkkkhfngxnfnvnb2"}
			ctx.Set.Cookie = handler.NewCookie("test", "test", handler.WithDomain("localhost"))
			return handler.Status(http.StatusOK, "Hello World"), nil
		}).
		Group("/group")

	h := mount(rt)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/group/xx?name=1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/group/xx", "").Code)

	rec := do(t, h, http.MethodGet, "/group/xzx", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Set-Cookie"))

	rec = do(t, h, http.MethodGet, "/group/xz/xx", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"desc":"not_found","data":{"method":"GET","url":"/group/xz/xx"}}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/xx?name=1", "").Code)
}

func TestBind_MethodNotAllowedIsNotFound(t *testing.T) {
	t.Parallel()

	rec := do(t, mount(router.New().Get("/only-get", text("ok"))), http.MethodPost, "/only-get", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"desc":"not_found","data":{"method":"POST","url":"/only-get"}}`, rec.Body.String())
}

func TestBind_DuplicateRegistrationLaterWins(t *testing.T) {
	t.Parallel()

	rt := router.New().
		Get("/dup", text("first")).
		Get("/dup", text("second"))
	require.Len(t, rt.Routes(), 2)

	rec := do(t, mount(rt), http.MethodGet, "/dup", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"second"`, rec.Body.String())
}

func TestBind_WildcardAndRoute(t *testing.T) {
	t.Parallel()

	rt := router.New().Get("/files/:bucket/*", func(ctx *handler.Context) (*handler.Reply, error) {
		return handler.OK(map[string]string{
			"bucket": ctx.Params["bucket"],
			"rest":   ctx.Params["*"],
			"route":  ctx.Route,
		}), nil
	})

	rec := do(t, mount(rt), http.MethodGet, "/files/b1/a/b.txt", "")
	assert.JSONEq(t, `{"bucket":"b1","rest":"a/b.txt","route":"/files/:bucket/*"}`, rec.Body.String())
}

func TestBind_SchemaCompiledOnce(t *testing.T) {
	t.Parallel()

	v := schema.New()
	rt := router.New().Get("/q", text("ok"), &handler.Hook{Schema: &schema.Schema{
		Query: schema.Object(schema.Props{"name": schema.String()}),
	}})
	h := mount(rt, handler.WithValidator(v))

	for range 5 {
		assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/q?name=pen", "").Code)
	}
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/q", "").Code)
	assert.Equal(t, uint64(1), v.Compiled())
}
