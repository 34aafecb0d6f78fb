// Package router holds the route table and binds it onto a chi mux.
//
// Routes are declared on a Router with Express-style templates (":id" for a
// parameter, "*" for a wildcard) and an optional handler.Hook:
//
//	r := router.New()
//	r.Get("/", listProducts)
//	r.PostRoute("/", handler.WithSchema(createProduct, &handler.Hook{
//		Schema: &schema.Schema{Body: createProductBody},
//	}))
//	r.Get("/:id", getProduct)
//	r.Group("products")
//
// Group prefixes every route already held; Merge appends other tables. Bind
// registers the routes on a chi.Router through handler.Wrap. Registering the
// same method and path twice is allowed: the later handler replaces the earlier
// one, as chi does.
package router
