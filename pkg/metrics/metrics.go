// Package metrics provides Prometheus metrics for the matchday service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "matchday"

// Registry owns every collector the service exports.
// A nil *Registry is valid and records nothing.
type Registry struct {
	reg *prometheus.Registry

	predictions        *prometheus.CounterVec
	predictionDuration prometheus.Histogram
	predictionErrors   *prometheus.CounterVec
	signalNeutral      *prometheus.CounterVec
	signalFailures     *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	cacheLookups *prometheus.CounterVec
	jobRuns      *prometheus.CounterVec
}

// New creates a registry with all collectors registered on a private prometheus.Registry.
func New() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		reg: reg,
		predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prediction",
			Name:      "total",
			Help:      "Completed predictions by winning vote class",
		}, []string{"class"}),
		predictionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "prediction",
			Name:      "duration_seconds",
			Help:      "Time spent evaluating signals and voting",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		predictionErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prediction",
			Name:      "errors_total",
			Help:      "Failed predictions by kind (validation, signal)",
		}, []string{"kind"}),
		signalNeutral: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "signal",
			Name:      "neutral_total",
			Help:      "Signals that produced a neutral outcome",
		}, []string{"signal"}),
		signalFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "signal",
			Name:      "failures_total",
			Help:      "Signal provider failures",
		}, []string{"signal"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by cache name and result (hit, miss)",
		}, []string{"cache", "result"}),
		jobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "job_runs_total",
			Help:      "Scheduled job runs by job and status",
		}, []string{"job", "status"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer returns the underlying gatherer (used by tests).
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObservePrediction records one completed prediction.
func (r *Registry) ObservePrediction(class string, d time.Duration) {
	if r == nil {
		return
	}
	r.predictions.WithLabelValues(class).Inc()
	r.predictionDuration.Observe(d.Seconds())
}

// PredictionError records a rejected or failed prediction.
func (r *Registry) PredictionError(kind string) {
	if r == nil {
		return
	}
	r.predictionErrors.WithLabelValues(kind).Inc()
}

// SignalNeutral records a neutral signal outcome.
func (r *Registry) SignalNeutral(signal string) {
	if r == nil {
		return
	}
	r.signalNeutral.WithLabelValues(signal).Inc()
}

// SignalFailure records a signal provider failure.
func (r *Registry) SignalFailure(signal string) {
	if r == nil {
		return
	}
	r.signalFailures.WithLabelValues(signal).Inc()
}

// ObserveHTTP records one served HTTP request.
func (r *Registry) ObserveHTTP(route, method string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// CacheLookup records a cache hit or miss.
func (r *Registry) CacheLookup(cache string, hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(cache, result).Inc()
}

// JobRun records a scheduled job run.
func (r *Registry) JobRun(job string, success bool) {
	if r == nil {
		return
	}
	status := "success"
	if !success {
		status = "failed"
	}
	r.jobRuns.WithLabelValues(job, status).Inc()
}
