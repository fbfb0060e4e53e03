// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intel

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/innovation-engine/internal/logging"
	"github.com/pdiddy/innovation-engine/internal/metrics"
	"github.com/pdiddy/innovation-engine/internal/planner"
	"github.com/pdiddy/innovation-engine/internal/search"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

// WebSearcher runs one general web query.
type WebSearcher interface {
	Search(ctx context.Context, query string) types.WebPage
}

// RepoSearcher runs one repository query.
type RepoSearcher interface {
	Search(ctx context.Context, query string) types.RepoPage
}

// PaperSearcher runs one preprint query.
type PaperSearcher interface {
	Search(ctx context.Context, query string) types.PaperFeed
}

// Gatherer plans the queries for an idea, issues all of them concurrently and
// aggregates the results. Searchers are expected to absorb their own failures.
type Gatherer struct {
	Planner    *planner.Table
	Aggregator *Aggregator
	Web        WebSearcher
	Repo       RepoSearcher
	Paper      PaperSearcher
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
}

// NewGatherer wires a Gatherer to the given backends.
func NewGatherer(table *planner.Table, b search.Backends, logger *zap.Logger, m *metrics.Metrics) *Gatherer {
	return &Gatherer{
		Planner:    table,
		Aggregator: NewAggregator(table),
		Web:        b.Web,
		Repo:       b.Repo,
		Paper:      b.Paper,
		Logger:     logging.OrNop(logger),
		Metrics:    m,
	}
}

// Gather always returns a complete bundle. A non-nil error means the stage
// failed as a whole and the bundle is FallbackBundle.
func (g *Gatherer) Gather(ctx context.Context, idea types.InnovationIdea) (types.IntelligenceBundle, error) {
	logger := logging.OrNop(g.Logger)
	bundle, err := g.gather(ctx, idea)
	if err != nil {
		logger.Warn("intelligence gathering failed, using example bundle",
			zap.String("idea", idea.ID), zap.Error(err))
		g.Metrics.ObserveBundleFallback()
		return FallbackBundle(g.Aggregator.now()), err
	}
	return bundle, nil
}

func (g *Gatherer) gather(ctx context.Context, idea types.InnovationIdea) (bundle types.IntelligenceBundle, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during gathering: %v\n%s", r, debug.Stack())
		}
	}()

	plan, err := g.Planner.Plan(idea)
	if err != nil {
		return types.IntelligenceBundle{}, fmt.Errorf("planning queries: %w", err)
	}
	agg := g.Aggregator

	eg, egCtx := errgroup.WithContext(ctx)
	goSafe(eg, func() error {
		pages, err := fanOut(egCtx, plan.Market, g.Web.Search)
		bundle.MarketData = agg.Market(pages)
		return err
	})
	goSafe(eg, func() error {
		pages, err := fanOut(egCtx, plan.Tech, g.Repo.Search)
		bundle.TechStackData = agg.Tech(idea, pages)
		return err
	})
	goSafe(eg, func() error {
		feeds, err := fanOut(egCtx, plan.Research, g.Paper.Search)
		bundle.ResearchPapers = agg.Research(idea, feeds)
		return err
	})
	goSafe(eg, func() error {
		pages, err := fanOut(egCtx, plan.Competitive, g.Web.Search)
		bundle.CompetitiveData = agg.Competitive(pages)
		return err
	})
	goSafe(eg, func() error {
		pages, err := fanOut(egCtx, plan.Patent, g.Web.Search)
		bundle.PatentData = agg.Patent(pages)
		return err
	})
	if err := eg.Wait(); err != nil {
		return types.IntelligenceBundle{}, err
	}

	bundle.LastUpdated = agg.now().UTC().Format(time.RFC3339)
	bundle.Source = types.SourceRealWebSearch
	return bundle, nil
}

// fanOut issues every query concurrently and waits for all of them. Results
// are stored by query index, so the output order never depends on which call
// finishes first.
func fanOut[T any](ctx context.Context, queries []string, search func(context.Context, string) T) ([]T, error) {
	results := make([]T, len(queries))
	var eg errgroup.Group
	for i, q := range queries {
		goSafe(&eg, func() error {
			results[i] = search(ctx, q)
			return nil
		})
	}
	return results, eg.Wait()
}

// goSafe runs fn on eg, turning a panic into an error.
func goSafe(eg *errgroup.Group, fn func() error) {
	eg.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	})
}
