package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests    *prometheus.CounterVec
	LatencyMS   *prometheus.HistogramVec
	Sessions    prometheus.Counter
	Submissions prometheus.Counter
	Rejections  *prometheus.CounterVec
	OrderItems  prometheus.Histogram
	OrderPieces prometheus.Histogram
}

func NewServerMetrics(reg prometheus.Registerer) *ServerMetrics {
	m := &ServerMetrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kaos",
			Subsystem: "order",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kaos",
			Subsystem: "order",
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"route"}),
		Sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kaos",
			Subsystem: "order",
			Name:      "sessions_started_total",
			Help:      "Order forms opened.",
		}),
		Submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kaos",
			Subsystem: "order",
			Name:      "submissions_total",
			Help:      "Orders handed off to WhatsApp.",
		}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kaos",
			Subsystem: "order",
			Name:      "submission_rejections_total",
			Help:      "Submissions refused by validation.",
		}, []string{"reason"}),
		OrderItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kaos",
			Subsystem: "order",
			Name:      "items_per_order",
			Help:      "Valid product lines per submitted order.",
			Buckets:   []float64{1, 2, 3, 5, 8, 13},
		}),
		OrderPieces: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kaos",
			Subsystem: "order",
			Name:      "pieces_per_order",
			Help:      "Total quantity per submitted order.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
	}

	reg.MustRegister(m.Requests, m.LatencyMS, m.Sessions, m.Submissions, m.Rejections, m.OrderItems, m.OrderPieces)
	return m
}

func (m *ServerMetrics) SessionStarted() {
	m.Sessions.Inc()
}

func (m *ServerMetrics) SubmissionAccepted(items, quantity int) {
	m.Submissions.Inc()
	m.OrderItems.Observe(float64(items))
	m.OrderPieces.Observe(float64(quantity))
}

func (m *ServerMetrics) SubmissionRejected(reason string) {
	m.Rejections.WithLabelValues(reason).Inc()
}

// Middleware records request count and latency per chi route pattern.
func (m *ServerMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = r.Method + " " + rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	})
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
