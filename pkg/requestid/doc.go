// Package requestid attaches correlation identifiers to inbound requests.
//
// Middleware makes sure every request carries three identifiers before it
// reaches the router:
//
//   - X-Request-ID: reused when the client sends a well-formed value,
//     otherwise a new UUIDv4. Echoed in the response and stored in the
//     request context.
//   - X-Session: client session id, a new UUIDv4 when absent.
//   - X-Tid: transaction id, a new time-ordered UUIDv7 when absent.
//
// X-Session and X-Tid are written into the request headers so handlers and
// header schemas see them like any client-supplied header.
//
// LoggerExtractor plugs the request id into logger.WithContextExtractors.
package requestid
