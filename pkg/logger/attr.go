package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under the key "error". Nil errors produce an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component names the emitting component.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event names a domain event.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Method is the HTTP method.
func Method(method string) slog.Attr {
	return slog.String("method", method)
}

// Path is the request path or outbound URL.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// Route records the registered path template, as opposed to the concrete path.
func Route(template string) slog.Attr {
	return slog.String("route", template)
}

// Status is the HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Duration is an elapsed time.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Signal is an OS signal name.
func Signal(name string) slog.Attr {
	return slog.String("signal", name)
}

// Attempt is a 1-based retry attempt.
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// Addr is a network address.
func Addr(addr string) slog.Attr {
	return slog.String("addr", addr)
}
