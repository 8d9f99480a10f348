package middleware

import (
	"net/http"
	"time"

	"github.com/aanand-mishra/student-management-api/internal/logger"
)

// WithLogging writes one access-log line per request through the request
// logger, so it must run inside WithTraceID.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()
		uri := r.RequestURI
		method := r.Method

		lw := wrap(w)
		next.ServeHTTP(lw, r)

		log.Info().
			Str("uri", uri).
			Str("method", method).
			Int("status", lw.Status()).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
