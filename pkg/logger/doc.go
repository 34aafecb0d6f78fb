// Package logger builds *slog.Logger instances for servekit services.
//
// New applies functional options on top of production defaults (JSON, INFO,
// stdout) and wraps the selected handler so that attributes carried in a
// context.Context, such as the request id, are added to every record logged
// through the *Context methods.
//
//	log := logger.New(
//		logger.WithEnvironment("development", "products-api"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "route registered", logger.Method("GET"), logger.Route("/products"))
//
// NewFromConfig reads the same settings from a Config populated by the
// config package (APP_ENV, APP_NAME, LOG_LEVEL, LOG_FORMAT).
//
// Attribute helpers in attr.go keep key names consistent across packages.
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
