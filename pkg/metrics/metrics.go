// Package metrics exposes onboarding activity as Prometheus metrics.
//
// Metrics implements log.Logger, so it is fed by the same journal events as
// the file journal and needs no hooks of its own.
package metrics

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	obtlog "github.com/secure-iot/obt-go/pkg/log"
)

const namespace = "obt"

// Metrics holds the collectors of one tool instance on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	completions *prometheus.CounterVec
	duplicates  *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	devices     *prometheus.GaugeVec
}

// New creates the collectors and registers them, plus the Go runtime
// collectors, on a new registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests accepted by the provisioning SDK, by operation.",
		}, []string{"op"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Requests the provisioning SDK declined to issue, by operation.",
		}, []string{"op"}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completions_total",
			Help:      "Completed requests, by operation and outcome.",
		}, []string{"op", "outcome"}),
		duplicates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_completions_total",
			Help:      "Completions dropped because the request had already completed.",
		}, []string{"op"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_latency_seconds",
			Help:      "Time from request issuance to completion.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"op"}),
		devices: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_devices",
			Help:      "Devices in the registry, by collection.",
		}, []string{"collection"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.rejections,
		m.completions,
		m.duplicates,
		m.latency,
		m.devices,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Log updates counters from a journal event.
func (m *Metrics) Log(ev obtlog.Event) {
	if ev.Op == "" {
		return
	}
	switch ev.Category {
	case obtlog.CategoryRequest:
		m.requests.WithLabelValues(ev.Op).Inc()
	case obtlog.CategoryRejection:
		m.rejections.WithLabelValues(ev.Op).Inc()
	case obtlog.CategoryDuplicate:
		m.duplicates.WithLabelValues(ev.Op).Inc()
	case obtlog.CategoryCompletion:
		if ev.Completion == nil {
			return
		}
		outcome := "success"
		if !ev.Completion.Success {
			outcome = "failure"
		}
		m.completions.WithLabelValues(ev.Op, outcome).Inc()
		if ev.Completion.Latency != nil {
			m.latency.WithLabelValues(ev.Op).Observe(ev.Completion.Latency.Seconds())
		}
	}
}

// SetDeviceCounts records the registry collection sizes.
func (m *Metrics) SetDeviceCounts(unowned, owned int) {
	m.devices.WithLabelValues("unowned").Set(float64(unowned))
	m.devices.WithLabelValues("owned").Set(float64(owned))
}

// Handler returns the HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve starts an HTTP server exposing /metrics on addr. The server runs
// until it is shut down by the caller.
func (m *Metrics) Serve(addr string, logger *slog.Logger) (*http.Server, net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("metrics listen: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Handler: mux,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if logger != nil {
				logger.Warn("metrics server stopped", "error", err)
			}
		}
	}()
	return srv, ln.Addr(), nil
}

var _ obtlog.Logger = (*Metrics)(nil)
