package instrumentation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status values for the status label.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Provider owns the metrics registry and the instruments recorded by the
// tool handlers and the API client.
type Provider struct {
	registry *prometheus.Registry

	toolInvocations *prometheus.CounterVec
	toolDuration    *prometheus.HistogramVec
	apiRequests     *prometheus.CounterVec
}

// NewProvider creates a Provider with all instruments registered on a
// private registry.
func NewProvider() *Provider {
	registry := prometheus.NewRegistry()

	p := &Provider{
		registry: registry,
		toolInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mcp_tool_invocations_total",
			Help: "Number of MCP tool invocations by tool name and status.",
		}, []string{"tool", "status"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mcp_tool_duration_seconds",
			Help:    "Duration of MCP tool executions by tool name.",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool"}),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "icu_api_requests_total",
			Help: "Number of Intervals.icu API requests by operation and status.",
		}, []string{"operation", "status"}),
	}

	registry.MustRegister(p.toolInvocations, p.toolDuration, p.apiRequests)
	return p
}

// Registry returns the registry for exposure via the metrics endpoint.
func (p *Provider) Registry() *prometheus.Registry {
	return p.registry
}

// RecordToolInvocation records one MCP tool invocation.
func (p *Provider) RecordToolInvocation(toolName, status string, duration time.Duration) {
	p.toolInvocations.WithLabelValues(toolName, status).Inc()
	p.toolDuration.WithLabelValues(toolName).Observe(duration.Seconds())
}

// RecordAPIRequest records one Intervals.icu API request.
func (p *Provider) RecordAPIRequest(operation, status string) {
	p.apiRequests.WithLabelValues(operation, status).Inc()
}
