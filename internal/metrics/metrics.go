// SPDX-License-Identifier: EPL-2.0

// Package metrics holds the Prometheus collectors of the pcmexport
// service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pcmexport"

// Metrics is a set of collectors bound to their own registry, so several
// servers (and tests) can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	// Gauges
	InFlight prometheus.Gauge

	// Counters
	RequestsTotal *prometheus.CounterVec
	ExportsTotal  *prometheus.CounterVec
	FailuresTotal *prometheus.CounterVec
	AudioSeconds  prometheus.Counter

	// Histograms
	RequestDuration *prometheus.HistogramVec
	StageDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		InFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests being served",
		}),
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route and status code",
		}, []string{"route", "code"}),
		ExportsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Total artifacts produced by source and output format",
		}, []string{"source", "format"}),
		FailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Total pipeline failures by stage",
		}, []string{"stage"}),
		AudioSeconds: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exported_audio_seconds_total",
			Help:      "Total playback length of exported audio",
		}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"route"}),
		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration (synthesize, decode, export)",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"stage"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveStage records how long a pipeline stage took and counts it as a
// failure when err is non-nil.
func (m *Metrics) ObserveStage(stage string, started time.Time, err error) {
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(started).Seconds())
	if err != nil {
		m.FailuresTotal.WithLabelValues(stage).Inc()
	}
}

// ObserveExport counts a produced artifact.
func (m *Metrics) ObserveExport(source, format string, duration time.Duration) {
	m.ExportsTotal.WithLabelValues(source, format).Inc()
	m.AudioSeconds.Add(duration.Seconds())
}
