package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/servekit/handler"
	"github.com/dmitrymomot/servekit/modules/user"
	"github.com/dmitrymomot/servekit/pkg/binder"
	"github.com/dmitrymomot/servekit/pkg/httpclient"
	"github.com/dmitrymomot/servekit/pkg/logger"
	"github.com/dmitrymomot/servekit/pkg/requestid"
	"github.com/dmitrymomot/servekit/router"
)

type memoryRepo struct {
	mu    sync.Mutex
	users []user.User
}

func (m *memoryRepo) Create(_ context.Context, in user.CreateInput) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := user.User{ID: "u" + string(rune('0'+len(m.users)+1)), Name: in.Name, Email: in.Email, Age: in.Age}
	m.users = append(m.users, u)
	return u, nil
}

func (m *memoryRepo) List(context.Context) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]user.User{}, m.users...), nil
}

func setup(repo user.Repository, upstream user.Upstream, upstreamURL string) http.Handler {
	mux := chi.NewRouter()
	mux.Use(requestid.Middleware, binder.Middleware())
	router.Bind(mux, user.Router(repo, upstream, upstreamURL).Routes(),
		handler.WithErrorHandler(handler.NewErrorHandler(logger.Noop())),
	)
	return mux
}

func send(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndListUsers(t *testing.T) {
	t.Parallel()

	h := setup(&memoryRepo{}, httpclient.New(), "http://localhost:3001/users/:id")

	rec := send(h, http.MethodPost, "/users", `{"name":"Ann","email":"ann@example.com","age":30}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"u1","name":"Ann","email":"ann@example.com","age":30}`, rec.Body.String())

	rec = send(h, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var users []user.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "Ann", users[0].Name)
}

func TestCreateUserValidation(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	h := setup(repo, httpclient.New(), "http://localhost:3001/users/:id")

	rec := send(h, http.MethodPost, "/users", `{"name":"","email":"nope","age":-1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"desc":"invalid_request"`)
	assert.Empty(t, repo.users)
}

func TestGetUserProxiesUpstream(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get(requestid.SessionHeader))
		assert.NotEmpty(t, r.Header.Get(requestid.TraceHeader))
		assert.Equal(t, "abc", r.Header.Get(requestid.Header))

		if r.URL.Path != "/users/7" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"no such user"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 7, "name": "Leanne"})
	}))
	defer upstream.Close()

	h := setup(&memoryRepo{}, httpclient.New(), upstream.URL+"/users/:id")

	req := httptest.NewRequest(http.MethodGet, "/users/7", nil)
	req.Header.Set(requestid.Header, "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7,"name":"Leanne"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/users/8", nil)
	req.Header.Set(requestid.Header, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"no such user"}`, rec.Body.String())
}

func TestGetUserUpstreamDown(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	client := httpclient.New(httpclient.WithTimeout(time.Second))
	h := setup(&memoryRepo{}, client, url+"/users/:id")

	rec := send(h, http.MethodGet, "/users/7", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
