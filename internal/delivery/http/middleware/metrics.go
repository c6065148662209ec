package middleware

import (
	"net/http"
	"time"

	"eventcalendar/internal/metrics"
)

// Metrics records request counts and latency per matched route. Requests
// that match no route are reported under "unmatched".
func Metrics(m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrap(w)
		next.ServeHTTP(wrapped, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(r.Method, route, wrapped.status, time.Since(start))
	})
}
