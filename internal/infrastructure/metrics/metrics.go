// Package metrics exposes Prometheus instruments for the sidebar and access services.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "agency"

var (
	treeBuildBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5}
	nodeCountBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500}
)

// Metrics owns a registry and the instruments recorded against it.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	treeBuildDuration *prometheus.HistogramVec
	treeNodes         prometheus.Histogram
	togglesTotal      *prometheus.CounterVec
	cacheLookups      *prometheus.CounterVec
	auditFailures     prometheus.Counter
	httpDuration      *prometheus.HistogramVec
	httpRequests      *prometheus.CounterVec
}

// New creates a registry with the process and Go runtime collectors and the
// application instruments. An empty namespace uses "agency".
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = defaultNamespace
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		treeBuildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sidebar",
			Name:      "tree_build_duration_seconds",
			Help:      "Time taken to build a sidebar tree from the flat option list.",
			Buckets:   treeBuildBuckets,
		}, []string{"view"}),
		treeNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sidebar",
			Name:      "tree_nodes",
			Help:      "Number of options in a built sidebar tree.",
			Buckets:   nodeCountBuckets,
		}),
		togglesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "access",
			Name:      "toggles_total",
			Help:      "Count of permission toggles by requested value and outcome.",
		}, []string{"access", "status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sidebar",
			Name:      "cache_lookups_total",
			Help:      "Sidebar option cache lookups by result.",
		}, []string{"result"}),
		auditFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "access",
			Name:      "audit_failures_total",
			Help:      "Audit entries that could not be written.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
	}

	registry.MustRegister(
		m.treeBuildDuration,
		m.treeNodes,
		m.togglesTotal,
		m.cacheLookups,
		m.auditFailures,
		m.httpDuration,
		m.httpRequests,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveTreeBuild records one tree build. view is "full", "grouped" or "visible".
func (m *Metrics) ObserveTreeBuild(view string, nodes int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.treeBuildDuration.WithLabelValues(view).Observe(elapsed.Seconds())
	m.treeNodes.Observe(float64(nodes))
}

// IncToggle counts a toggle attempt
func (m *Metrics) IncToggle(desired bool, err error) {
	if m == nil {
		return
	}
	access := "revoked"
	if desired {
		access = "granted"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.togglesTotal.WithLabelValues(access, status).Inc()
}

// IncCacheLookup counts a sidebar cache hit or miss
func (m *Metrics) IncCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// IncAuditFailure counts an audit entry that failed to persist
func (m *Metrics) IncAuditFailure() {
	if m == nil {
		return
	}
	m.auditFailures.Inc()
}

// ObserveHTTPRequest records one served request
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
