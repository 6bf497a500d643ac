package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the prompt service
type Metrics struct {
	// Optimization metrics
	PromptsOptimized *prometheus.CounterVec
	QualityScore     *prometheus.HistogramVec

	// Chat metrics
	ChatReplies          *prometheus.CounterVec
	ChatProviderDuration *prometheus.HistogramVec

	// Export and session metrics
	Exports        *prometheus.CounterVec
	ActiveSessions prometheus.Gauge

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

var (
	metricsOnce   sync.Once
	sharedMetrics *Metrics
)

// NewMetrics creates and registers all Prometheus metrics. Registration
// happens once per process; later calls return the same instance.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		sharedMetrics = &Metrics{
			PromptsOptimized: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "legalprompt_prompts_optimized_total",
					Help: "Total number of prompts optimized",
				},
				[]string{"mode", "resolution"},
			),
			QualityScore: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "legalprompt_quality_score",
					Help:    "Quality score of optimized prompts",
					Buckets: prometheus.LinearBuckets(10, 10, 10), // 10 to 100
				},
				[]string{"mode"},
			),
			ChatReplies: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "legalprompt_chat_replies_total",
					Help: "Total number of assistant replies by source",
				},
				[]string{"source"},
			),
			ChatProviderDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "legalprompt_chat_provider_duration_seconds",
					Help:    "Latency of chat provider calls",
					Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 250ms to 32s
				},
				[]string{"provider", "success"},
			),
			Exports: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "legalprompt_exports_total",
					Help: "Total number of prompt exports by format",
				},
				[]string{"format"},
			),
			ActiveSessions: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "legalprompt_active_sessions",
					Help: "Number of live sessions",
				},
			),
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "legalprompt_http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "legalprompt_http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "path"},
			),
		}
	})
	return sharedMetrics
}

// RecordOptimization records one optimized prompt
func (m *Metrics) RecordOptimization(mode, resolution string, score int) {
	if m == nil {
		return
	}
	m.PromptsOptimized.WithLabelValues(mode, resolution).Inc()
	m.QualityScore.WithLabelValues(mode).Observe(float64(score))
}

// RecordChatReply records where an assistant reply came from
func (m *Metrics) RecordChatReply(source string) {
	if m == nil {
		return
	}
	m.ChatReplies.WithLabelValues(source).Inc()
}

// RecordProviderCall records a chat provider round trip
func (m *Metrics) RecordProviderCall(provider string, success bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ChatProviderDuration.WithLabelValues(provider, strconv.FormatBool(success)).Observe(elapsed.Seconds())
}

// RecordExport records a rendered export
func (m *Metrics) RecordExport(format string) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(format).Inc()
}

// SetActiveSessions sets the live session gauge
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}
