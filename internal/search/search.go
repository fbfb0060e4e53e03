// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search wraps the three external search collaborators: general web
// search, code-repository search and the preprint feed. Every backend follows
// the same contract. A missing credential short-circuits to an empty page with
// no network call; a network or HTTP failure is logged and also degrades to an
// empty page. Search never returns an error and never retries.
package search

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/innovation-engine/internal/logging"
	"github.com/pdiddy/innovation-engine/internal/metrics"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

// ErrNotConfigured marks the credential gate. It is never surfaced by Search.
var ErrNotConfigured = errors.New("search backend not configured")

// Backend names used in logs and metrics.
const (
	BackendWeb   = "web"
	BackendRepo  = "repo"
	BackendPaper = "paper"
)

// Backends bundles one client per collaborator. It is built once at startup
// and shared by all evaluations; the backends hold only read-only settings.
type Backends struct {
	Web   *WebBackend
	Repo  *RepoBackend
	Paper *PaperBackend
}

// NewBackends builds the three backends from cfg. A nil logger or metrics
// value is allowed.
func NewBackends(cfg types.SearchConfig, logger *zap.Logger, m *metrics.Metrics) Backends {
	client := &http.Client{Timeout: cfg.Timeout}
	logger = logging.OrNop(logger)
	return Backends{
		Web: &WebBackend{
			Client:     client,
			APIKey:     cfg.GoogleAPIKey,
			EngineID:   cfg.GoogleEngineID,
			MaxResults: cfg.WebMaxResults,
			UserAgent:  cfg.UserAgent,
			Logger:     logger,
			Metrics:    m,
		},
		Repo: &RepoBackend{
			Client:     client,
			Token:      cfg.GitHubToken,
			MaxResults: cfg.RepoMaxResults,
			UserAgent:  cfg.UserAgent,
			Logger:     logger,
			Metrics:    m,
		},
		Paper: &PaperBackend{
			Client:     client,
			MaxResults: cfg.PaperMaxResults,
			UserAgent:  cfg.UserAgent,
			Logger:     logger,
			Metrics:    m,
		},
	}
}

// call runs fetch and converts any failure into fallback, logging and
// recording the outcome.
func call[T any](ctx context.Context, backend, query string, logger *zap.Logger, m *metrics.Metrics,
	fetch func(context.Context, string) (T, error), fallback func() T) T {
	logger = logging.OrNop(logger)
	start := time.Now()
	page, err := fetch(ctx, query)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, ErrNotConfigured):
		logger.Debug("search backend not configured", zap.String("backend", backend), zap.String("query", query))
		m.ObserveSearch(backend, metrics.OutcomeNotConfigured, elapsed)
		return fallback()
	case err != nil:
		logger.Warn("search failed", zap.String("backend", backend), zap.String("query", query), zap.Error(err))
		m.ObserveSearch(backend, metrics.OutcomeError, elapsed)
		return fallback()
	}
	m.ObserveSearch(backend, metrics.OutcomeOK, elapsed)
	return page
}

func header(userAgent string) http.Header {
	h := http.Header{}
	if userAgent == "" {
		userAgent = types.DefaultUserAgent
	}
	h.Set("User-Agent", userAgent)
	return h
}
