// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import "github.com/pdiddy/innovation-engine/pkg/types"

// Canned values of the fallback evaluation.
const (
	FallbackOverallScore = 75
	FallbackResponseTime = 1500 // milliseconds, simulated
	FallbackPromptLength = 500
	FallbackTokenUsage   = 300
	FallbackCost         = 0.02
)

// Approximations attached to a successful evaluation. They are not derived
// from the model response.
const (
	ApproxTokenUsage = 500
	ApproxCost       = 0.05
)

// FallbackCriteria returns the canned sub-scores.
func FallbackCriteria() types.EvaluationCriteria {
	return types.EvaluationCriteria{
		InnovationPotential: 80,
		Feasibility:         70,
		MarketReadiness:     75,
		Scalability:         80,
		RiskLevel:           25,
	}
}

// FallbackAnalysis returns the canned SWOT analysis and recommendations.
func FallbackAnalysis() types.DetailedAnalysis {
	return types.DetailedAnalysis{
		Strengths: []string{
			"Addresses a real market need",
			"Clear value proposition",
			"Scalable business model",
		},
		Weaknesses: []string{
			"Requires further market validation",
			"Competitive landscape analysis needed",
			"Technical implementation challenges",
		},
		Opportunities: []string{
			"Large target market",
			"Growing industry trends",
			"Partnership opportunities",
		},
		Threats: []string{
			"Market competition",
			"Regulatory changes",
			"Technology disruption",
		},
		Recommendations: []string{
			"Conduct detailed market research",
			"Develop MVP prototype",
			"Validate with target customers",
			"Create go-to-market strategy",
		},
	}
}

func fallbackMetrics() types.PerformanceMetrics {
	return types.PerformanceMetrics{
		ResponseTime: FallbackResponseTime,
		PromptLength: FallbackPromptLength,
		TokenUsage:   FallbackTokenUsage,
		Cost:         FallbackCost,
	}
}
