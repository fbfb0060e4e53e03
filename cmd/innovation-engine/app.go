// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/pdiddy/innovation-engine/internal/evaluate"
	"github.com/pdiddy/innovation-engine/internal/intel"
	"github.com/pdiddy/innovation-engine/internal/llm"
	"github.com/pdiddy/innovation-engine/internal/logging"
	"github.com/pdiddy/innovation-engine/internal/metrics"
	"github.com/pdiddy/innovation-engine/internal/planner"
	"github.com/pdiddy/innovation-engine/internal/search"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

// app is the dependency graph shared by all commands. It is built once per
// process from the immutable configuration.
type app struct {
	cfg      types.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	table    *planner.Table
	gatherer *intel.Gatherer

	// gemini is nil when no model credential is configured.
	gemini *llm.Gemini
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	table, err := planner.LoadOrDefault(cfg.Planner.ProfilesFile)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		metrics:  m,
		table:    table,
		gatherer: intel.NewGatherer(table, search.NewBackends(cfg.Search, logger, m), logger, m),
	}

	if cfg.LLM.APIKey != "" {
		a.gemini, err = llm.NewGemini(ctx, cfg.LLM)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("model API key not configured; evaluation and performance endpoints are disabled")
	}

	logger.Debug("configuration loaded",
		zap.String("model", cfg.LLM.Model),
		zap.Bool("web_search", cfg.Search.GoogleAPIKey != "" && cfg.Search.GoogleEngineID != ""),
		zap.Bool("repo_search", cfg.Search.GitHubToken != ""),
		zap.Int("max_concurrent_tests", cfg.Perf.MaxConcurrentTests))
	return a, nil
}

func (a *app) model(purpose string) llm.Generator {
	return llm.Observed{Next: a.gemini, Purpose: purpose, Logger: a.logger, Metrics: a.metrics}
}

// evaluator returns nil when no model is configured.
func (a *app) evaluator() *evaluate.Evaluator {
	if a.gemini == nil {
		return nil
	}
	return evaluate.NewEvaluator(a.gatherer, a.model("evaluate"), a.logger, a.metrics)
}

// tester returns nil when no model is configured.
func (a *app) tester() *evaluate.Tester {
	if a.gemini == nil {
		return nil
	}
	return evaluate.NewTester(a.model("performance"), a.logger, a.metrics)
}

func (a *app) modelName() string {
	if a.gemini == nil {
		return a.cfg.LLM.Model
	}
	return a.gemini.Model()
}

func (a *app) close() {
	_ = a.logger.Sync()
}
