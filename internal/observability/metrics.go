package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP surface metrics
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_studio_http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "voice_studio_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"method", "route"})

	// Provider metrics
	providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_studio_provider_requests_total",
		Help: "Total number of speech provider requests",
	}, []string{"operation", "status"})

	providerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "voice_studio_provider_latency_seconds",
		Help:    "Speech provider latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
	}, []string{"operation"})

	// Synthesis metrics
	synthesisRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_studio_synthesis_requests_total",
		Help: "Total number of synthesis requests",
	}, []string{"status"})

	synthesisAudioSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voice_studio_synthesis_audio_seconds",
		Help:    "Duration of synthesized audio in seconds",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
	})

	synthesisCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_studio_synthesis_cache_total",
		Help: "Synthesis cache lookups by result",
	}, []string{"result"}) // result: "hit", "miss" or "error"

	// Catalog metrics
	catalogRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_studio_catalog_refreshes_total",
		Help: "Voice catalog refreshes by trigger and outcome",
	}, []string{"trigger", "status"})

	catalogVoices = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voice_studio_catalog_voices",
		Help: "Number of voices in the last stored catalog",
	})

	// Error metrics
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_studio_errors_total",
		Help: "Total number of errors",
	}, []string{"type", "component"})

	// Circuit breaker metrics
	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "voice_studio_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
	}, []string{"service"})

	circuitBreakerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voice_studio_circuit_breaker_failures_total",
		Help: "Total circuit breaker failures",
	}, []string{"service"})
)

// Metrics tracks metrics for a single synthesis request
type Metrics struct {
	startTime         time.Time
	providerStartTime time.Time
	mu                sync.Mutex
}

// NewSynthesisMetrics creates a new metrics tracker for a synthesis request
func NewSynthesisMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordProviderStart records the start of a provider call
func (m *Metrics) RecordProviderStart() {
	m.mu.Lock()
	m.providerStartTime = time.Now()
	m.mu.Unlock()
}

// RecordProviderEnd records the end of a provider call
func (m *Metrics) RecordProviderEnd(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.providerStartTime.IsZero() {
		providerLatency.WithLabelValues("synthesize").Observe(time.Since(m.providerStartTime).Seconds())
	}
	providerRequests.WithLabelValues("synthesize", statusLabel(success)).Inc()
}

// RecordEnd records the outcome of the whole synthesis request
func (m *Metrics) RecordEnd(success bool, audioSeconds float64) {
	synthesisRequests.WithLabelValues(statusLabel(success)).Inc()
	if success {
		synthesisAudioSeconds.Observe(audioSeconds)
	}
}

// RecordError records an error
func (m *Metrics) RecordError(errorType, component string) {
	RecordError(errorType, component)
}

// RecordError records an error outside of a request tracker
func RecordError(errorType, component string) {
	errorsTotal.WithLabelValues(errorType, component).Inc()
}

// RecordProviderCall records a provider call that is not part of a synthesis request
func RecordProviderCall(operation string, success bool, latency time.Duration) {
	providerLatency.WithLabelValues(operation).Observe(latency.Seconds())
	providerRequests.WithLabelValues(operation, statusLabel(success)).Inc()
}

// RecordHTTPRequest records a handled HTTP request
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordCacheLookup records a synthesis cache lookup ("hit", "miss" or "error")
func RecordCacheLookup(result string) {
	synthesisCache.WithLabelValues(result).Inc()
}

// RecordCatalogRefresh records the outcome of a catalog refresh
func RecordCatalogRefresh(trigger string, success bool, voices int) {
	catalogRefreshes.WithLabelValues(trigger, statusLabel(success)).Inc()
	if success {
		catalogVoices.Set(float64(voices))
	}
}

// CatalogRefreshCounter exposes the refresh counter for a trigger and status
func CatalogRefreshCounter(trigger, status string) prometheus.Counter {
	return catalogRefreshes.WithLabelValues(trigger, status)
}

// UpdateCircuitBreakerState updates circuit breaker state metric
func UpdateCircuitBreakerState(service string, state int) {
	circuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// IncrementCircuitBreakerFailures increments circuit breaker failure counter
func IncrementCircuitBreakerFailures(service string) {
	circuitBreakerFailures.WithLabelValues(service).Inc()
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
