// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intel

import (
	"time"

	"github.com/pdiddy/innovation-engine/pkg/types"
)

// FallbackMarketSize is the market size reported by the example bundle.
const FallbackMarketSize = "$2.5T"

// FallbackBundle is the complete example bundle used when gathering fails as
// a whole. Every list is non-nil and every part is tagged "fallback".
func FallbackBundle(now time.Time) types.IntelligenceBundle {
	stamp := now.UTC().Format(time.RFC3339)
	return types.IntelligenceBundle{
		MarketData: types.MarketData{
			MarketSize:    FallbackMarketSize,
			Competitors:   companies("Competitor 1", "Competitor 2", "Competitor 3"),
			Trends:        []string{"AI integration", "Digital transformation", "Market growth"},
			Opportunities: []string{"Market expansion", "Innovation potential", "Customer demand"},
			Risks:         []string{"Competition", "Regulatory challenges", "Technology adoption"},
			LastUpdated:   stamp,
			Source:        types.SourceFallback,
		},
		TechStackData: types.TechStackData{
			RecommendedTechStack:     []string{"Python", "React", "Node.js", "PostgreSQL"},
			SimilarTechStacks:        []types.TechStack{},
			OpenSourceProjects:       []types.RepoResult{},
			PopularLanguages:         []string{"Python", "JavaScript", "TypeScript"},
			PopularFrameworks:        []string{"React", "Django", "Express"},
			DevelopmentTools:         []string{"Docker", "Git", "VS Code"},
			ImplementationComplexity: types.ComplexityMedium,
			DevelopmentTimeline:      Timeline(types.ComplexityMedium),
			RequiredSkills:           RequiredSkills([]string{"Python", "React", "Node.js", "PostgreSQL"}),
			Source:                   types.SourceFallback,
		},
		ResearchPapers: types.ResearchData{
			ResearchPapers: []types.PaperResult{},
			RecentPapers:   []types.PaperResult{},
			ResearchTrends: []string{"AI", "Machine Learning", "Deep Learning"},
			KeyResearchers: []string{"Researcher 1", "Researcher 2"},
			Source:         types.SourceFallback,
		},
		CompetitiveData: types.CompetitiveData{
			DirectCompetitors:   companies("Competitor 1", "Competitor 2"),
			IndirectCompetitors: companies("Competitor 3", "Competitor 4"),
			Startups:            []string{"Startup 1", "Startup 2"},
			MarketLeaders:       []string{"Company 1", "Company 2"},
			FundingLandscape:    []types.FundingRound{},
			MarketGaps:          []string{"Gap 1", "Gap 2"},
			Source:              types.SourceFallback,
		},
		PatentData: types.PatentData{
			RelevantPatents: []types.Patent{},
			PatentLandscape: types.PatentLandscape{
				TotalPatents:  0,
				RiskLevel:     types.ComplexityLow,
				Opportunities: types.ComplexityHigh,
			},
			IPRisks:             []string{"Low risk"},
			PatentOpportunities: []string{"High opportunity"},
			Source:              types.SourceFallback,
		},
		LastUpdated: stamp,
		Source:      types.SourceFallback,
	}
}

func companies(names ...string) []types.Company {
	out := make([]types.Company, len(names))
	for i, n := range names {
		out[i] = types.Company{Name: n}
	}
	return out
}
