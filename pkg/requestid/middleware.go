package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Headers read and set by Middleware.
const (
	Header        = "X-Request-ID"
	SessionHeader = "X-Session"
	TraceHeader   = "X-Tid"

	maxIDLength = 128
	idPattern   = "^[a-zA-Z0-9_-]+$"
)

var validIDRegex = regexp.MustCompile(idPattern)

// Middleware keeps a valid incoming X-Request-ID or generates one, fills missing
// session and trace headers, and echoes the request id on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if !isValidRequestID(requestID) {
			requestID = uuid.NewString()
			r.Header.Set(Header, requestID)
		}
		if r.Header.Get(SessionHeader) == "" {
			r.Header.Set(SessionHeader, uuid.NewString())
		}
		if r.Header.Get(TraceHeader) == "" {
			r.Header.Set(TraceHeader, newTraceID())
		}

		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), requestID)))
	})
}

// newTraceID returns a UUIDv7, falling back to v4 if the clock source fails.
func newTraceID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
