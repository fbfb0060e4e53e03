// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Source tags recorded on the bundle and on each of its parts.
const (
	SourceRealWebSearch     = "real_web_search"
	SourceFallback          = "fallback"
	SourceGoogleSearch      = "google_search"
	SourceGitHubSearch      = "github_search"
	SourceArxivSearch       = "arxiv_search"
	SourceCompetitiveSearch = "competitive_search"
	SourcePatentSearch      = "patent_search"
)

// Company is a competitor, startup or market leader named in search results.
type Company struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Website     string `json:"website" yaml:"website"`
	Funding     string `json:"funding,omitempty" yaml:"funding,omitempty"`
	Employees   string `json:"employees,omitempty" yaml:"employees,omitempty"`
	Founded     string `json:"founded,omitempty" yaml:"founded,omitempty"`
}

// MarketData summarizes market-size and trend signals.
type MarketData struct {
	MarketSize    string    `json:"marketSize" yaml:"market_size"`
	Competitors   []Company `json:"competitors" yaml:"competitors"`
	Trends        []string  `json:"trends" yaml:"trends"`
	Opportunities []string  `json:"opportunities" yaml:"opportunities"`
	Risks         []string  `json:"risks" yaml:"risks"`
	LastUpdated   string    `json:"lastUpdated" yaml:"last_updated"`
	Source        string    `json:"source" yaml:"source"`
}

// TechStack describes the stack observed on one repository.
type TechStack struct {
	Name        string   `json:"name" yaml:"name"`
	TechStack   []string `json:"techStack" yaml:"tech_stack"`
	Stars       int      `json:"stars" yaml:"stars"`
	Description string   `json:"description" yaml:"description"`
}

// Complexity is a coarse Low/Medium/High rating.
type Complexity string

const (
	ComplexityLow    Complexity = "Low"
	ComplexityMedium Complexity = "Medium"
	ComplexityHigh   Complexity = "High"
)

// TechStackData holds the technology recommendation and repository evidence.
type TechStackData struct {
	RecommendedTechStack     []string     `json:"recommendedTechStack" yaml:"recommended_tech_stack"`
	SimilarTechStacks        []TechStack  `json:"similarTechStacks" yaml:"similar_tech_stacks"`
	OpenSourceProjects       []RepoResult `json:"openSourceProjects" yaml:"open_source_projects"`
	PopularLanguages         []string     `json:"popularLanguages" yaml:"popular_languages"`
	PopularFrameworks        []string     `json:"popularFrameworks" yaml:"popular_frameworks"`
	DevelopmentTools         []string     `json:"developmentTools" yaml:"development_tools"`
	ImplementationComplexity Complexity   `json:"implementationComplexity" yaml:"implementation_complexity"`
	DevelopmentTimeline      string       `json:"developmentTimeline" yaml:"development_timeline"`
	RequiredSkills           []string     `json:"requiredSkills" yaml:"required_skills"`
	Source                   string       `json:"source" yaml:"source"`
}

// ResearchData holds preprint evidence.
type ResearchData struct {
	ResearchPapers []PaperResult `json:"researchPapers" yaml:"research_papers"`
	RecentPapers   []PaperResult `json:"recentPapers" yaml:"recent_papers"`
	ResearchTrends []string      `json:"researchTrends" yaml:"research_trends"`
	KeyResearchers []string      `json:"keyResearchers" yaml:"key_researchers"`
	Source         string        `json:"source" yaml:"source"`
}

// FundingRound is a funding mention captured from a snippet.
type FundingRound struct {
	Company     string   `json:"company" yaml:"company"`
	Amount      string   `json:"amount" yaml:"amount"`
	Stage       string   `json:"stage" yaml:"stage"`
	Date        string   `json:"date" yaml:"date"`
	Investors   []string `json:"investors" yaml:"investors"`
	Description string   `json:"description" yaml:"description"`
}

// CompetitiveData holds the competitive landscape.
type CompetitiveData struct {
	DirectCompetitors   []Company      `json:"directCompetitors" yaml:"direct_competitors"`
	IndirectCompetitors []Company      `json:"indirectCompetitors" yaml:"indirect_competitors"`
	Startups            []string       `json:"startups" yaml:"startups"`
	MarketLeaders       []string       `json:"marketLeaders" yaml:"market_leaders"`
	FundingLandscape    []FundingRound `json:"fundingLandscape" yaml:"funding_landscape"`
	MarketGaps          []string       `json:"marketGaps" yaml:"market_gaps"`
	Source              string         `json:"source" yaml:"source"`
}

// Patent is a snippet that mentions patents or intellectual property.
type Patent struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url" yaml:"url"`
	Status      string `json:"status" yaml:"status"`
	FilingDate  string `json:"filingDate" yaml:"filing_date"`
}

// PatentLandscape is derived purely from the number of patents found.
type PatentLandscape struct {
	TotalPatents  int        `json:"totalPatents" yaml:"total_patents"`
	RiskLevel     Complexity `json:"riskLevel" yaml:"risk_level"`
	Opportunities Complexity `json:"opportunities" yaml:"opportunities"`
}

// PatentData holds patent signals.
type PatentData struct {
	RelevantPatents     []Patent        `json:"relevantPatents" yaml:"relevant_patents"`
	PatentLandscape     PatentLandscape `json:"patentLandscape" yaml:"patent_landscape"`
	IPRisks             []string        `json:"ipRisks" yaml:"ip_risks"`
	PatentOpportunities []string        `json:"patentOpportunities" yaml:"patent_opportunities"`
	Source              string          `json:"source" yaml:"source"`
}

// IntelligenceBundle is the five-part output of the aggregation engine. Every
// field is always populated because it is interpolated unconditionally into
// the model prompt and the HTML report.
type IntelligenceBundle struct {
	MarketData      MarketData      `json:"marketData" yaml:"market_data"`
	TechStackData   TechStackData   `json:"techStackData" yaml:"tech_stack_data"`
	ResearchPapers  ResearchData    `json:"researchPapers" yaml:"research_papers"`
	CompetitiveData CompetitiveData `json:"competitiveData" yaml:"competitive_data"`
	PatentData      PatentData      `json:"patentData" yaml:"patent_data"`
	LastUpdated     string          `json:"lastUpdated" yaml:"last_updated"`
	Source          string          `json:"source" yaml:"source"`
}
