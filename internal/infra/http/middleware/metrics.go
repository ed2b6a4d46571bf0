package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homewiz_leads_created_total",
			Help: "Lead create requests by outcome",
		},
		[]string{"outcome"},
	)

	tenantsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homewiz_tenants_created_total",
			Help: "Tenants created by source",
		},
		[]string{"source"},
	)

	leadConversions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homewiz_lead_conversions_total",
			Help: "Lead conversion attempts by outcome",
		},
		[]string{"outcome"},
	)

	roomsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homewiz_rooms_generated_total",
			Help: "Rooms produced by generation, split into stored and dropped",
		},
		[]string{"result"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern keeps the path label bounded: /api/leads/{leadId} rather
// than one series per lead.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func RecordLeadCreated(outcome string) {
	leadsCreated.WithLabelValues(outcome).Inc()
}

func RecordTenantCreated(source string) {
	tenantsCreated.WithLabelValues(source).Inc()
}

func RecordConversion(outcome string) {
	if outcome == "" {
		outcome = "error"
	}
	leadConversions.WithLabelValues(outcome).Inc()
}

func RecordRoomsGenerated(generated, dropped int) {
	roomsGenerated.WithLabelValues("stored").Add(float64(generated))
	roomsGenerated.WithLabelValues("dropped").Add(float64(dropped))
}
