package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation. All methods are
// nil-safe so instrumentation can be switched off by wiring a nil service.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	tokenChecks     *prometheus.CounterVec
	revocations     *prometheus.CounterVec
	authRejections  prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	tokenChecks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "token_verifications_total",
		Help: "Token verification attempts by kind and outcome",
	}, []string{"kind", "result"})

	revocations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "token_revocations_total",
		Help: "Tokens recorded as revoked, by kind",
	}, []string{"kind"})

	authRejections := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_rejections_total",
		Help: "Requests rejected by the authorization middleware",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, tokenChecks, revocations, authRejections, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		tokenChecks:     tokenChecks,
		revocations:     revocations,
		authRejections:  authRejections,
	}
}

// Handler returns the Prometheus scrape handler.
func (s *MetricsService) Handler() http.Handler {
	if s == nil {
		return http.NotFoundHandler()
	}
	return s.handler
}

// ObserveHTTPRequest records a completed HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if s == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// RecordTokenVerification counts a verification attempt.
func (s *MetricsService) RecordTokenVerification(kind string, ok bool) {
	if s == nil {
		return
	}
	result := "rejected"
	if ok {
		result = "verified"
	}
	s.tokenChecks.WithLabelValues(kind, result).Inc()
}

// RecordRevocation counts a token recorded as revoked.
func (s *MetricsService) RecordRevocation(kind string) {
	if s == nil {
		return
	}
	s.revocations.WithLabelValues(kind).Inc()
}

// RecordAuthRejection counts a request stopped by the middleware gate.
func (s *MetricsService) RecordAuthRejection() {
	if s == nil {
		return
	}
	s.authRejections.Inc()
}
