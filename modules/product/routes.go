package product

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/servekit/handler"
	"github.com/dmitrymomot/servekit/pkg/schema"
	"github.com/dmitrymomot/servekit/router"
)

// Prefix is the path group of the product routes.
const Prefix = "products"

// Router returns the product routes grouped under /products.
func Router(svc *Service) *router.Router {
	return router.New().
		PostRoute("/", handler.WithSchema(create(svc), &handler.Hook{
			Schema: &schema.Schema{Body: CreateSchema},
		})).
		Get("/", list(svc)).
		Get("/:id", get(svc)).
		Group(Prefix)
}

func create(svc *Service) handler.Func {
	return func(ctx *handler.Context) (*handler.Reply, error) {
		var in CreateInput
		if err := ctx.Bind(&in); err != nil {
			return nil, handler.ErrBadRequest
		}
		p, err := svc.Create(ctx, in)
		if err != nil {
			return nil, err
		}
		return handler.Status(http.StatusCreated, p), nil
	}
}

func list(svc *Service) handler.Func {
	return func(ctx *handler.Context) (*handler.Reply, error) {
		products, err := svc.List(ctx)
		if err != nil {
			return nil, err
		}
		return handler.OK(products), nil
	}
}

func get(svc *Service) handler.Func {
	return func(ctx *handler.Context) (*handler.Reply, error) {
		p, err := svc.GetByID(ctx, ctx.Params["id"])
		if errors.Is(err, ErrNotFound) {
			return handler.Status(http.StatusNotFound, map[string]string{"message": "Product not found"}), nil
		}
		if err != nil {
			return nil, err
		}
		return handler.OK(p), nil
	}
}
