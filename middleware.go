package servekit

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/servekit/pkg/logger"
	"github.com/dmitrymomot/servekit/pkg/requestid"
)

// accessLog writes one record per request once the response is sent.
func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				level := slog.LevelInfo
				switch {
				case status >= http.StatusInternalServerError:
					level = slog.LevelError
				case status >= http.StatusBadRequest:
					level = slog.LevelWarn
				}

				attrs := []slog.Attr{
					logger.Component("http"),
					logger.RequestID(requestid.FromContext(r.Context())),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.Status(status),
					logger.Duration(time.Since(start)),
					slog.Int("bytes", ww.BytesWritten()),
					slog.String("remote_ip", r.RemoteAddr),
					slog.String("user_agent", r.UserAgent()),
				}
				if rctx := chi.RouteContext(r.Context()); rctx != nil {
					if pattern := rctx.RoutePattern(); pattern != "" {
						attrs = append(attrs, logger.Route(pattern))
					}
				}

				log.LogAttrs(r.Context(), level, "request completed", attrs...)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
