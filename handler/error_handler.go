package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/servekit/pkg/logger"
	"github.com/dmitrymomot/servekit/pkg/requestid"
)

// ErrorHandler handles an error returned by a handler or hook.
type ErrorHandler func(ctx *Context, err error)

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Desc       string
	Message    string
	LogLevel   slog.Level
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

// classifyError maps err to a status, desc and log level.
func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Desc:       ErrInternalServerError.Key,
		Message:    err.Error(),
		LogLevel:   slog.LevelError,
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.StatusCode = httpErr.Code
		info.Desc = httpErr.Key
		info.Message = http.StatusText(httpErr.Code)
	}

	if isClientError(info.StatusCode) {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// NewErrorHandler returns the default error handler. It logs the error and
// replies {"desc": ..., "data": {"message": ...}}. When the reply is already
// committed it only logs, joining ErrAlreadyCommitted to the logged error.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx *Context, err error) {
		info := classifyError(err)
		r := ctx.Request()
		if ctx.committed {
			err = errors.Join(err, ErrAlreadyCommitted)
		}

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			logger.Status(info.StatusCode),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.Route(ctx.Route),
			logger.Component("error_handler"),
		)

		if ctx.committed {
			return
		}
		ctx.committed = true
		WriteError(ctx.ResponseWriter(), info.StatusCode, info.Desc, map[string]string{
			"message": info.Message,
		})
	}
}
