// Package middleware holds the HTTP middleware shared by every route:
// request tracing, access logging and request metrics.
package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aanand-mishra/student-management-api/internal/logger"
)

// TraceIDHeader carries the trace id in both directions.
const TraceIDHeader = "X-Trace-ID"

// WithTraceID attaches a child of log to the request context, tagged with
// the caller's X-Trace-ID or a freshly generated UUID. The id is echoed in
// the response header. Handlers reach the logger with logger.FromRequest.
func WithTraceID(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			l := log.GetChildLogger()
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("trace_id", traceID)
			})
			r = r.WithContext(l.WithContext(r.Context()))

			w.Header().Set(TraceIDHeader, traceID)
			next.ServeHTTP(w, r)
		})
	}
}
