package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/servekit/handler"
)

func TestNewCookie(t *testing.T) {
	t.Parallel()

	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	c := handler.NewCookie("sid", "abc",
		handler.WithPath("/app"),
		handler.WithDomain("localhost"),
		handler.WithMaxAge(60),
		handler.WithExpires(expires),
		handler.WithSecure(true),
		handler.WithHTTPOnly(true),
		handler.WithSameSite(http.SameSiteStrictMode),
		handler.WithPartitioned(true),
	)

	assert.Equal(t, "sid", c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.Equal(t, "/app", c.Path)
	assert.Equal(t, "localhost", c.Domain)
	assert.Equal(t, 60, c.MaxAge)
	assert.Equal(t, expires, c.Expires)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.True(t, c.Partitioned)

	assert.Equal(t, "/", handler.NewCookie("a", "b").Path)
}

func TestCookie_WrittenWithReply(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(handler.Definition{Handlers: []handler.Func{
		func(ctx *handler.Context) (*handler.Reply, error) {
			ctx.Set.Cookie = &handler.Cookie{Name: "test", Value: "test", Domain: "localhost"}
			return handler.OK("Hello World"), nil
		},
	}})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "test", cookies[0].Name)
	assert.Equal(t, "test", cookies[0].Value)
	assert.Equal(t, "localhost", cookies[0].Domain)
	assert.Equal(t, "/", cookies[0].Path)
}
