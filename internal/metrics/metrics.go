// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics holds the Prometheus collectors for search calls, model
// calls and evaluation outcomes. A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search call outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeError         = "error"
	OutcomeNotConfigured = "not_configured"
)

// Metrics groups the engine's collectors.
type Metrics struct {
	SearchCalls      *prometheus.CounterVec
	SearchDuration   *prometheus.HistogramVec
	LLMCalls         *prometheus.CounterVec
	LLMDuration      prometheus.Histogram
	Evaluations      *prometheus.CounterVec
	BundleFallbacks  prometheus.Counter
	PerformanceTests *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SearchCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "innovation_search_calls_total",
				Help: "Search backend calls by backend and outcome",
			},
			[]string{"backend", "outcome"},
		),
		SearchDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "innovation_search_duration_seconds",
				Help:    "Duration of search backend calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend"},
		),
		LLMCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "innovation_llm_calls_total",
				Help: "Model calls by purpose and outcome",
			},
			[]string{"purpose", "outcome"},
		),
		LLMDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "innovation_llm_duration_seconds",
				Help:    "Wall-clock duration of model calls in seconds",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
			},
		),
		Evaluations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "innovation_evaluations_total",
				Help: "Completed evaluations by result kind (model or fallback)",
			},
			[]string{"kind"},
		),
		BundleFallbacks: f.NewCounter(
			prometheus.CounterOpts{
				Name: "innovation_bundle_fallbacks_total",
				Help: "Intelligence gatherings replaced by the example bundle",
			},
		),
		PerformanceTests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "innovation_performance_tests_total",
				Help: "Prompt performance tests by quality bucket",
			},
			[]string{"quality"},
		),
	}
}

// ObserveSearch records one search backend call.
func (m *Metrics) ObserveSearch(backend, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.SearchCalls.WithLabelValues(backend, outcome).Inc()
	if outcome != OutcomeNotConfigured {
		m.SearchDuration.WithLabelValues(backend).Observe(d.Seconds())
	}
}

// ObserveLLM records one model call.
func (m *Metrics) ObserveLLM(purpose string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.LLMCalls.WithLabelValues(purpose, outcome).Inc()
	m.LLMDuration.Observe(d.Seconds())
}

// ObserveEvaluation counts a finished evaluation.
func (m *Metrics) ObserveEvaluation(fallback bool) {
	if m == nil {
		return
	}
	kind := "model"
	if fallback {
		kind = "fallback"
	}
	m.Evaluations.WithLabelValues(kind).Inc()
}

// ObserveBundleFallback counts a gathering replaced by the example bundle.
func (m *Metrics) ObserveBundleFallback() {
	if m == nil {
		return
	}
	m.BundleFallbacks.Inc()
}

// ObservePerformanceTest counts a completed performance test.
func (m *Metrics) ObservePerformanceTest(quality string) {
	if m == nil {
		return
	}
	m.PerformanceTests.WithLabelValues(quality).Inc()
}
