package product_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/servekit/handler"
	"github.com/dmitrymomot/servekit/modules/product"
	"github.com/dmitrymomot/servekit/pkg/binder"
	"github.com/dmitrymomot/servekit/pkg/logger"
	"github.com/dmitrymomot/servekit/router"
)

type memoryRepo struct {
	mu       sync.Mutex
	items    []product.Product
	failList bool
}

func (m *memoryRepo) Create(_ context.Context, in product.CreateInput) (product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := fmt.Sprintf("%024d", len(m.items)+1)
	p := product.Product{
		ID:          id,
		Href:        product.Href("http://localhost:3000", id),
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
	}
	m.items = append(m.items, p)
	return p, nil
}

func (m *memoryRepo) List(context.Context) ([]product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList {
		return nil, errors.Join(product.ErrListProducts, errors.New("connection reset"))
	}
	return append([]product.Product{}, m.items...), nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.items {
		if p.ID == id {
			return p, nil
		}
	}
	return product.Product{}, product.ErrNotFound
}

func setup(repo product.Repository) http.Handler {
	mux := chi.NewRouter()
	mux.Use(binder.Middleware())
	router.Bind(mux, product.Router(product.NewService(repo, nil)).Routes(),
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

func TestCreateProduct(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	h := setup(repo)

	rec := send(h, http.MethodPost, "/products", `{"name":"Lamp","price":19.5,"description":"desk lamp"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var p product.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Lamp", p.Name)
	assert.Equal(t, 19.5, p.Price)
	assert.Equal(t, "desk lamp", p.Description)
	assert.Equal(t, "http://localhost:3000/products/"+p.ID, p.Href)
	assert.Len(t, repo.items, 1)
}

func TestCreateProductValidation(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	h := setup(repo)

	rec := send(h, http.MethodPost, "/products", `{"name":"Lamp","price":"cheap"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Desc string `json:"desc"`
		Data []struct {
			Path string `json:"path"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_request", body.Desc)

	paths := make([]string, 0, len(body.Data))
	for _, issue := range body.Data {
		paths = append(paths, issue.Path)
	}
	assert.ElementsMatch(t, []string{"/description", "/price"}, paths)
	assert.Empty(t, repo.items)
}

func TestListProducts(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	h := setup(repo)

	rec := send(h, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	send(h, http.MethodPost, "/products", `{"name":"A","price":1,"description":"a"}`)
	send(h, http.MethodPost, "/products", `{"name":"B","price":2,"description":"b"}`)

	rec = send(h, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var products []product.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, "A", products[0].Name)
	assert.Equal(t, "B", products[1].Name)
}

func TestListProductsFailure(t *testing.T) {
	t.Parallel()

	h := setup(&memoryRepo{failList: true})

	rec := send(h, http.MethodGet, "/products", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"desc":"internal_error"`)
}

func TestGetProduct(t *testing.T) {
	t.Parallel()

	repo := &memoryRepo{}
	h := setup(repo)

	rec := send(h, http.MethodPost, "/products", `{"name":"Lamp","price":3,"description":"d"}`)
	var created product.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = send(h, http.MethodGet, "/products/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got product.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created, got)

	rec = send(h, http.MethodGet, "/products/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Product not found"}`, rec.Body.String())
}

func TestHref(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "http://localhost:3000/products/abc", product.Href("http://localhost:3000/", "abc"))
}
