// Package handler turns route handlers into http.HandlerFunc values.
//
// A handler receives a *Context holding the normalized request (body, headers,
// query, params) and either returns a *Reply or writes one itself:
//
//	func getProduct(ctx *handler.Context) (*handler.Reply, error) {
//		p, err := svc.Get(ctx, ctx.Params["id"])
//		if errors.Is(err, product.ErrNotFound) {
//			ctx.Response(http.StatusNotFound, map[string]string{"message": "Product not found"})
//			return nil, nil
//		}
//		if err != nil {
//			return nil, err
//		}
//		return handler.OK(p), nil
//	}
//
// # Response mutations
//
// Handlers declare headers, a cookie, a status or a redirect through ctx.Set
// instead of touching the ResponseWriter:
//
//	ctx.Set.Headers = map[string]string{"x-api-key": key}
//	ctx.Set.Cookie = handler.NewCookie("session", id, handler.WithHTTPOnly(true))
//	ctx.Set.Status = http.StatusCreated
//	return handler.OK(item), nil
//
// Mutations are applied when the reply is written. ctx.Response commits the
// reply immediately, so Set changes made after it are dropped. When the chain
// returns no reply and nothing was committed the response is 204 No Content.
//
// # Validation
//
// A Hook may declare a schema.Schema. The request is validated before any
// handler runs; a failure replies 400:
//
//	{"desc": "invalid_request", "data": [{"type": "body", "path": "/name", "message": "..."}]}
//
// # Errors
//
// Errors returned by handlers and hooks go to the ErrorHandler. The default one
// logs through slog and replies 500 {"desc": "internal_error", "data": {"message": ...}},
// or the code and key of an HTTPError. Panics are left to recovery middleware.
package handler
