// Package servekit is a small request routing and validation layer on top of chi.
//
// Routes are declared on router.Router tables, optionally with a schema for the
// body, params, query and headers. App merges the tables, binds them behind a
// middleware stack (real ip, request ids, access log, panic recovery and body
// parsing) and serves them with graceful shutdown:
//
//	products := router.New().
//		PostRoute("/", handler.WithSchema(create, &handler.Hook{
//			Schema: &schema.Schema{Body: schema.Object(schema.Props{
//				"name":  schema.String(),
//				"price": schema.Number(),
//			})},
//		})).
//		Get("/:id", get).
//		Group("products")
//
//	app := servekit.New(servekit.WithLogger(log))
//	app.Router(products)
//	err := app.Listen(ctx, func() { log.Info("ready") })
//	os.Exit(httpserver.ExitCode(err))
//
// Handlers receive a *handler.Context carrying the parsed body, headers, query
// and params. They return a *handler.Reply or declare status, headers, cookies
// and redirects through ctx.Set. Requests failing validation get a 400
// {"desc":"invalid_request","data":[...]} reply and never reach the handler;
// unknown routes get 404 {"desc":"not_found","data":{"method","url"}}.
package servekit
