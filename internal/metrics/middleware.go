package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

var requestsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests partitioned by status code, method and route.",
	}, []string{"code", "method", "path"})

var latencyMetric = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Name:      "http_request_duration_milliseconds",
	Help:      "Time spent on the request partitioned by status code, method and route.",
	Buckets:   []float64{10, 50, 100, 300, 500, 1000, 5000},
}, []string{"code", "method", "path"})

// Middleware records request counts and latency labelled with the mux route
// template, so /api/calculations/7 and /api/calculations/8 share a series.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := "unmatched"
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		code := strconv.Itoa(ww.Status())
		requestsMetric.WithLabelValues(code, r.Method, path).Inc()
		latencyMetric.WithLabelValues(code, r.Method, path).Observe(float64(time.Since(start).Milliseconds()))
	})
}
