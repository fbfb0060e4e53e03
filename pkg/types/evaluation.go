// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// EvaluationCriteria are the five 0-100 sub-scores. RiskLevel is inverted:
// a lower score means lower risk.
type EvaluationCriteria struct {
	InnovationPotential float64 `json:"innovationPotential" yaml:"innovation_potential"`
	Feasibility         float64 `json:"feasibility" yaml:"feasibility"`
	MarketReadiness     float64 `json:"marketReadiness" yaml:"market_readiness"`
	Scalability         float64 `json:"scalability" yaml:"scalability"`
	RiskLevel           float64 `json:"riskLevel" yaml:"risk_level"`
}

// DetailedAnalysis is the SWOT analysis plus recommendations.
type DetailedAnalysis struct {
	Strengths       []string `json:"strengths" yaml:"strengths"`
	Weaknesses      []string `json:"weaknesses" yaml:"weaknesses"`
	Opportunities   []string `json:"opportunities" yaml:"opportunities"`
	Threats         []string `json:"threats" yaml:"threats"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

// PerformanceMetrics describes the model call that produced an evaluation.
// TokenUsage and Cost are fixed approximations, not measured values.
type PerformanceMetrics struct {
	ResponseTime int64   `json:"responseTime" yaml:"response_time"` // milliseconds
	PromptLength int     `json:"promptLength" yaml:"prompt_length"` // characters
	TokenUsage   int     `json:"tokenUsage" yaml:"token_usage"`
	Cost         float64 `json:"cost" yaml:"cost"`
}

// EvaluationResult is created once per evaluation and never mutated.
type EvaluationResult struct {
	ID                 string             `json:"id" yaml:"id"`
	IdeaID             string             `json:"ideaId" yaml:"idea_id"`
	OverallScore       float64            `json:"overallScore" yaml:"overall_score"`
	Criteria           EvaluationCriteria `json:"criteria" yaml:"criteria"`
	DetailedAnalysis   DetailedAnalysis   `json:"detailedAnalysis" yaml:"detailed_analysis"`
	PerformanceMetrics PerformanceMetrics `json:"performanceMetrics" yaml:"performance_metrics"`
	GeneratedAt        time.Time          `json:"generatedAt" yaml:"generated_at"`

	// Fallback reports whether the canned evaluation was used.
	Fallback bool `json:"fallback" yaml:"fallback"`

	MarketData              MarketData      `json:"marketData" yaml:"market_data"`
	TechnicalAnalysis       TechStackData   `json:"technicalAnalysis" yaml:"technical_analysis"`
	ResearchIntelligence    ResearchData    `json:"researchIntelligence" yaml:"research_intelligence"`
	CompetitiveIntelligence CompetitiveData `json:"competitiveIntelligence" yaml:"competitive_intelligence"`
	PatentIntelligence      PatentData      `json:"patentIntelligence" yaml:"patent_intelligence"`
}

// Quality is the heuristic bucket assigned to a raw model response.
type Quality string

const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityFair      Quality = "fair"
	QualityPoor      Quality = "poor"
)

// PromptTestResult records one performance-test round trip.
type PromptTestResult struct {
	PromptLength int       `json:"promptLength" yaml:"prompt_length"`
	ResponseTime int64     `json:"responseTime" yaml:"response_time"` // milliseconds
	Accuracy     float64   `json:"accuracy" yaml:"accuracy"`          // 0-100
	Cost         float64   `json:"cost" yaml:"cost"`                  // USD
	Quality      Quality   `json:"quality" yaml:"quality"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`

	// Error is set on suite entries whose round trip failed; the numeric
	// fields are then zero and Quality is poor.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
