package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/servekit/handler"
	"github.com/dmitrymomot/servekit/pkg/binder"
)

type ctxKey struct{}

func TestNewContext(t *testing.T) {
	t.Parallel()

	var got *handler.Context
	r := chi.NewRouter()
	r.Use(binder.Middleware())
	r.Post("/items/{id}/*", func(w http.ResponseWriter, req *http.Request) {
		got = handler.NewContext(w, req)
	})

	req := httptest.NewRequest(http.MethodPost, "/items/42/a/b?q=pen&tag=x&tag=y", strings.NewReader(`{"name":"pen"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Add("X-Multi", "one")
	req.Header.Add("X-Multi", "two")
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, map[string]any{"name": "pen"}, got.Body)
	assert.Equal(t, "42", got.Params["id"])
	assert.Equal(t, "a/b", got.Params["*"])
	assert.Equal(t, "pen", got.Query["q"])
	assert.Equal(t, []any{"x", "y"}, got.Query["tag"])
	assert.Equal(t, "one, two", got.Headers["x-multi"])
	assert.Equal(t, "application/json", got.Headers["content-type"])
	assert.Equal(t, "/items/42/a/b", got.Path)
	assert.Equal(t, "/items/{id}/*", got.Route)
	assert.Equal(t, http.StatusOK, got.Set.Status)
	assert.False(t, got.Committed())
}

func TestNewContext_WithoutMiddleware(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := handler.NewContext(httptest.NewRecorder(), req)

	assert.Equal(t, map[string]any{}, ctx.Body)
	assert.NotNil(t, ctx.Params)
	assert.Empty(t, ctx.Params)
	assert.Empty(t, ctx.Route)
}

func TestContext_ContextInterface(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	reqCtx, cancel := context.WithCancel(context.WithValue(req.Context(), ctxKey{}, "v"))
	req = req.WithContext(reqCtx)

	var ctx context.Context = handler.NewContext(httptest.NewRecorder(), req)
	assert.Equal(t, "v", ctx.Value(ctxKey{}))
	assert.NoError(t, ctx.Err())

	cancel()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestContext_Cookies(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "abc"})
	ctx := handler.NewContext(httptest.NewRecorder(), req)

	require.Len(t, ctx.Cookies(), 1)
	c, err := ctx.Cookie("sid")
	require.NoError(t, err)
	assert.Equal(t, "abc", c.Value)

	_, err = ctx.Cookie("missing")
	assert.ErrorIs(t, err, http.ErrNoCookie)
}

func TestContext_Bind(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := handler.NewContext(httptest.NewRecorder(), req)
	ctx.Body = map[string]any{"name": "pen", "price": 1.5}

	var dst struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	require.NoError(t, ctx.Bind(&dst))
	assert.Equal(t, "pen", dst.Name)
	assert.InDelta(t, 1.5, dst.Price, 0.0001)

	ctx.Body = map[string]any{"price": "free"}
	assert.ErrorIs(t, ctx.Bind(&dst), handler.ErrBind)
}

func TestContext_Response(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ctx := handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	ctx.Set.Headers = map[string]string{"X-Before": "1"}
	ctx.Response(http.StatusAccepted, map[string]string{"ok": "yes"})
	ctx.Set.Headers = map[string]string{"X-After": "1"}
	ctx.Response(http.StatusTeapot, "ignored")

	assert.True(t, ctx.Committed())
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Before"))
	assert.Empty(t, rec.Header().Get("X-After"))
	assert.JSONEq(t, `{"ok":"yes"}`, rec.Body.String())
}

func TestContext_Redirect(t *testing.T) {
	t.Parallel()

	ctx := handler.NewContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	ctx.Redirect("/login")
	assert.Equal(t, "/login", ctx.Set.Redirect)
	assert.Equal(t, http.StatusFound, ctx.Set.Status)

	ctx.Redirect("/moved", http.StatusMovedPermanently)
	assert.Equal(t, "/moved", ctx.Set.Redirect)
	assert.Equal(t, http.StatusMovedPermanently, ctx.Set.Status)
}
