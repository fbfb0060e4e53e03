// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intel

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/innovation-engine/internal/metrics"
	"github.com/pdiddy/innovation-engine/internal/planner"
	"github.com/pdiddy/innovation-engine/internal/search"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeWeb answers from a per-query table after a random delay.
type fakeWeb struct {
	pages  map[string]types.WebPage
	jitter bool
	mu     sync.Mutex
	seen   []string
}

func (f *fakeWeb) Search(_ context.Context, q string) types.WebPage {
	f.mu.Lock()
	f.seen = append(f.seen, q)
	f.mu.Unlock()
	if f.jitter {
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
	}
	if p, ok := f.pages[q]; ok {
		return p
	}
	return types.EmptyWebPage()
}

type fakeRepo struct{ page types.RepoPage }

func (f fakeRepo) Search(context.Context, string) types.RepoPage { return f.page }

type fakePaper struct{ feed types.PaperFeed }

func (f fakePaper) Search(context.Context, string) types.PaperFeed { return f.feed }

type panicRepo struct{}

func (panicRepo) Search(context.Context, string) types.RepoPage { panic("repo exploded") }

func newTestGatherer(t *testing.T, web WebSearcher, repo RepoSearcher, paper PaperSearcher) *Gatherer {
	t.Helper()
	table := planner.Default()
	return &Gatherer{
		Planner:    table,
		Aggregator: &Aggregator{Table: table, Now: func() time.Time { return fixedNow }},
		Web:        web,
		Repo:       repo,
		Paper:      paper,
		Logger:     zaptest.NewLogger(t),
	}
}

var coach = types.InnovationIdea{ID: "idea-1", Title: "AI Mental Health Coach", Description: "d", Category: "Healthcare"}

func TestGather_UnconfiguredBackendsStillComplete(t *testing.T) {
	// Real backends with no credentials take the configuration gate. The
	// paper backend needs no credential, so an empty fake stands in for it.
	backends := search.NewBackends(types.SearchConfig{}, zaptest.NewLogger(t), nil)
	g := newTestGatherer(t, backends.Web, backends.Repo, fakePaper{feed: types.EmptyPaperFeed()})

	bundle, err := g.Gather(context.Background(), coach)
	require.NoError(t, err)

	assert.Equal(t, types.SourceRealWebSearch, bundle.Source)
	assert.Equal(t, DefaultMarketSize, bundle.MarketData.MarketSize)
	assert.Len(t, bundle.MarketData.Competitors, 3)
	assert.GreaterOrEqual(t, len(bundle.CompetitiveData.DirectCompetitors), 1)
	assert.Equal(t, "React", bundle.TechStackData.RecommendedTechStack[0])
	assert.Equal(t, types.PatentLandscape{TotalPatents: 0, RiskLevel: types.ComplexityLow, Opportunities: types.ComplexityHigh},
		bundle.PatentData.PatentLandscape)
	assertNoNullLists(t, bundle)
}

func TestGather_RoundTrip(t *testing.T) {
	table := planner.Default()
	plan, err := table.Plan(coach)
	require.NoError(t, err)

	web := &fakeWeb{pages: map[string]types.WebPage{
		plan.Market[0]: page(types.WebResult{
			Title:   "Wearables report",
			Snippet: "The segment reached $4.2B as Fitbit and others drive growth.",
			Link:    "https://news.example/wearables",
		}),
	}}
	g := newTestGatherer(t, web, fakeRepo{page: types.EmptyRepoPage()}, fakePaper{feed: types.EmptyPaperFeed()})

	bundle, err := g.Gather(context.Background(), coach)
	require.NoError(t, err)

	assert.Equal(t, "$4.2B", bundle.MarketData.MarketSize)
	require.NotEmpty(t, bundle.MarketData.Competitors)
	assert.Equal(t, "Fitbit", bundle.MarketData.Competitors[0].Name)
	assert.Equal(t, "https://news.example/wearables", bundle.MarketData.Competitors[0].Website)
	assert.Len(t, bundle.MarketData.Trends, 1)
	assert.Equal(t, fixedNow.Format(time.RFC3339), bundle.LastUpdated)

	// Every planned query was issued exactly once.
	assert.ElementsMatch(t, append(append(append([]string{}, plan.Market...), plan.Competitive...), plan.Patent...), web.seen)
}

func TestGather_OrderIndependent(t *testing.T) {
	table := planner.Default()
	plan, err := table.Plan(coach)
	require.NoError(t, err)

	pages := map[string]types.WebPage{}
	for i, q := range plan.Market {
		pages[q] = page(
			types.WebResult{Snippet: []string{"$1B market trend", "$2B growth", "risk of $3B", "$4B potential"}[i]},
			types.WebResult{Title: []string{"Headspace", "Calm", "Talkspace", "Woebot"}[i] + " news"},
		)
	}

	var first types.MarketData
	for run := 0; run < 10; run++ {
		g := newTestGatherer(t, &fakeWeb{pages: pages, jitter: true}, fakeRepo{page: types.EmptyRepoPage()}, fakePaper{feed: types.EmptyPaperFeed()})
		bundle, err := g.Gather(context.Background(), coach)
		require.NoError(t, err)
		if run == 0 {
			first = bundle.MarketData
			continue
		}
		assert.Equal(t, first, bundle.MarketData, "run %d", run)
	}
	assert.Equal(t, "$1B", first.MarketSize)
	assert.Equal(t, []string{"Headspace", "Calm", "Talkspace", "Woebot"}, names(first.Competitors))
}

func TestGather_PanicFallsBackToExampleBundle(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	g := newTestGatherer(t, &fakeWeb{}, panicRepo{}, fakePaper{feed: types.EmptyPaperFeed()})
	g.Metrics = m

	bundle, err := g.Gather(context.Background(), coach)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repo exploded")
	assert.Equal(t, FallbackBundle(fixedNow), bundle)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BundleFallbacks))
}

func TestFallbackBundle(t *testing.T) {
	b := FallbackBundle(fixedNow)
	assert.Equal(t, types.SourceFallback, b.Source)
	assert.Equal(t, "$2.5T", b.MarketData.MarketSize)
	assert.Equal(t, []string{"Competitor 1", "Competitor 2", "Competitor 3"}, names(b.MarketData.Competitors))
	assert.Equal(t, []string{"Python", "React", "Node.js", "PostgreSQL"}, b.TechStackData.RecommendedTechStack)
	assert.Equal(t, []string{"AI", "Machine Learning", "Deep Learning"}, b.ResearchPapers.ResearchTrends)
	assert.Equal(t, []string{"Competitor 3", "Competitor 4"}, names(b.CompetitiveData.IndirectCompetitors))
	assert.Equal(t, []string{"Low risk"}, b.PatentData.IPRisks)
	for _, src := range []string{b.MarketData.Source, b.TechStackData.Source, b.ResearchPapers.Source, b.CompetitiveData.Source, b.PatentData.Source} {
		assert.Equal(t, types.SourceFallback, src)
	}
	assertNoNullLists(t, b)
}

func names(cs []types.Company) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

// assertNoNullLists checks that no list in the bundle serializes as null.
func assertNoNullLists(t *testing.T, b types.IntelligenceBundle) {
	t.Helper()
	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "null")
}
