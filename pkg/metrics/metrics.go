package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry holds every portal metric. It is exposed by the mock backend at /api/metrics.
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// Custom histogram buckets for API response times from milliseconds up to the 30s binary timeout
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34}

	// HTTP server metrics (mock backend)
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// API client metrics
	APIClientRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_api_client_request_duration_seconds",
			Help:    "Outbound API call duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"deployment", "http_request_method", "outcome"},
	)

	APIClientRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_api_client_request_total",
			Help: "Total number of outbound API calls by outcome",
		},
		[]string{"deployment", "http_request_method", "outcome"},
	)

	AuthExpirations = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_auth_expirations_total",
			Help: "Sessions cleared after an authentication failure",
		},
		[]string{"deployment", "source"},
	)

	// Router metrics
	GuardDecisions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_route_guard_decisions_total",
			Help: "Route guard decisions by outcome",
		},
		[]string{"deployment", "outcome"},
	)

	// Mock backend business metrics
	LoginAttempts = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_mock_login_attempts_total",
			Help: "Login attempts against the mock backend",
		},
		[]string{"surface", "status"},
	)

	// Infrastructure metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

func init() {
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// RecordInfrastructureMetrics collects infrastructure metrics until stop is closed
func RecordInfrastructureMetrics(stop <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				var m runtime.MemStats
				runtime.ReadMemStats(&m)

				GoRoutines.Set(float64(runtime.NumGoroutine()))
				HeapAlloc.Set(float64(m.HeapAlloc))
			}
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
