// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package intel gathers search results for an idea and condenses them into an
// IntelligenceBundle with keyword and pattern heuristics. The extraction
// functions are pure; Gatherer owns the network fan-out and the whole-bundle
// fallback.
package intel

import (
	"time"

	"github.com/pdiddy/innovation-engine/internal/planner"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

// Aggregator turns per-domain search results into bundle parts. It is
// deterministic given its inputs and the clock.
type Aggregator struct {
	Table *planner.Table
	Now   func() time.Time
}

// NewAggregator returns an Aggregator over table using the wall clock.
func NewAggregator(table *planner.Table) *Aggregator {
	return &Aggregator{Table: table, Now: time.Now}
}

func (a *Aggregator) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// Market condenses the market-query pages.
func (a *Aggregator) Market(pages []types.WebPage) types.MarketData {
	return types.MarketData{
		MarketSize:    MarketSize(pages),
		Competitors:   Competitors(pages, a.Table.Brands()),
		Trends:        Trends(pages),
		Opportunities: Opportunities(pages),
		Risks:         Risks(pages),
		LastUpdated:   a.now().UTC().Format(time.RFC3339),
		Source:        types.SourceGoogleSearch,
	}
}

// Tech condenses the repository pages.
func (a *Aggregator) Tech(idea types.InnovationIdea, pages []types.RepoPage) types.TechStackData {
	var repos []types.RepoResult
	for _, p := range pages {
		repos = append(repos, p.Repositories...)
	}
	languages := Languages(repos)
	frameworks := Frameworks(repos)
	stack := RecommendStack(a.Table.RecommendedStack(idea), languages, frameworks)
	complexity := Complexity(stack)

	return types.TechStackData{
		RecommendedTechStack:     stack,
		SimilarTechStacks:        SimilarTechStacks(repos),
		OpenSourceProjects:       SimilarProjects(repos, idea),
		PopularLanguages:         languages,
		PopularFrameworks:        frameworks,
		DevelopmentTools:         Tools(repos),
		ImplementationComplexity: complexity,
		DevelopmentTimeline:      Timeline(complexity),
		RequiredSkills:           RequiredSkills(stack),
		Source:                   types.SourceGitHubSearch,
	}
}

// Research condenses the preprint feeds.
func (a *Aggregator) Research(idea types.InnovationIdea, feeds []types.PaperFeed) types.ResearchData {
	var papers []types.PaperResult
	for _, f := range feeds {
		papers = append(papers, f.Papers...)
	}
	return types.ResearchData{
		ResearchPapers: RelevantPapers(papers, idea),
		RecentPapers:   RecentPapers(papers, a.now()),
		ResearchTrends: ResearchTrends(papers),
		KeyResearchers: KeyResearchers(papers),
		Source:         types.SourceArxivSearch,
	}
}

// Competitive condenses the competitive-query pages. Indirect competitors are
// the direct competitors past the third.
func (a *Aggregator) Competitive(pages []types.WebPage) types.CompetitiveData {
	direct := Competitors(pages, a.Table.Brands())
	indirect := []types.Company{}
	if len(direct) > 3 {
		indirect = append(indirect, direct[3:min(len(direct), 8)]...)
	}
	return types.CompetitiveData{
		DirectCompetitors:   direct,
		IndirectCompetitors: indirect,
		Startups:            Startups(pages),
		MarketLeaders:       MarketLeaders(pages),
		FundingLandscape:    Funding(pages),
		MarketGaps:          MarketGaps(),
		Source:              types.SourceCompetitiveSearch,
	}
}

// Patent condenses the patent-query pages.
func (a *Aggregator) Patent(pages []types.WebPage) types.PatentData {
	patents := Patents(pages)
	return types.PatentData{
		RelevantPatents:     patents,
		PatentLandscape:     Landscape(len(patents)),
		IPRisks:             IPRisks(),
		PatentOpportunities: PatentOpportunities(),
		Source:              types.SourcePatentSearch,
	}
}
