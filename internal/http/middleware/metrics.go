package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aanand-mishra/student-management-api/internal/metrics"
)

// unmatchedRoute labels requests no route claimed, keeping label
// cardinality bounded.
const unmatchedRoute = "unmatched"

// WithMetrics observes metrics.HTTPRequestDuration. The route label is the
// chi pattern ("/students/{id}"), never the raw path.
func WithMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		mw := wrap(w)
		next.ServeHTTP(mw, r)

		metrics.HTTPRequestDuration.
			WithLabelValues(routePattern(r), r.Method, strconv.Itoa(mw.Status())).
			Observe(time.Since(start).Seconds())
	})
}

// routePattern is only complete once routing has finished, i.e. after
// next.ServeHTTP returns.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return unmatchedRoute
}
