// Package metrics defines the prometheus collectors exported by lendbook.
// All methods are safe on a nil *Metrics, so components can run without metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lendbook"

// Metrics groups the collectors.
type Metrics struct {
	registry *prometheus.Registry

	reminderNotices  *prometheus.CounterVec
	reminderFailures *prometheus.CounterVec
	dispatches       *prometheus.CounterVec
	rpcDuration      *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry together
// with the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		reminderNotices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_notices_total",
			Help:      "Reminder notices computed, by kind.",
		}, []string{"kind"}),
		reminderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_failures_total",
			Help:      "Reminder evaluations that degraded to an empty result, by stage.",
		}, []string{"stage"}),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminder_dispatches_total",
			Help:      "Reminder dispatch attempts, by result.",
		}, []string{"result"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Duration of API calls, by procedure and code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}
	reg.MustRegister(m.reminderNotices, m.reminderFailures, m.dispatches, m.rpcDuration)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ReminderNotice counts one computed notice.
func (m *Metrics) ReminderNotice(kind string) {
	if m == nil {
		return
	}
	m.reminderNotices.WithLabelValues(kind).Inc()
}

// ReminderFailure counts a swallowed evaluation failure.
func (m *Metrics) ReminderFailure(stage string) {
	if m == nil {
		return
	}
	m.reminderFailures.WithLabelValues(stage).Inc()
}

// Dispatch counts a dispatch attempt.
func (m *Metrics) Dispatch(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.dispatches.WithLabelValues(result).Inc()
}

// ObserveRPC records the duration of one API call.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcDuration.WithLabelValues(procedure, code).Observe(d.Seconds())
}
