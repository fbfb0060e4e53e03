// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReply(t *testing.T) {
	const bare = `{"overallScore": 70.5, "criteria": {"innovationPotential": 60, "feasibility": 70, "marketReadiness": 80, "scalability": 90, "riskLevel": 0},
"detailedAnalysis": {"strengths": ["a"], "weaknesses": [], "opportunities": [], "threats": [], "recommendations": ["b", "c"]}, "notes": "extra"}`

	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"bare object", bare, nil},
		{"fenced", "```json\n" + bare + "\n```", nil},
		{"preamble and trailer", "Sure! " + bare + " Hope this helps.", nil},
		{"empty", "", ErrEmptyResponse},
		{"whitespace", " \n ", ErrEmptyResponse},
		{"no braces", "overallScore: 80", ErrInvalidResponse},
		{"reversed braces", "} oops {", ErrInvalidResponse},
		{"malformed json", `{"overallScore": 80,}`, ErrInvalidResponse},
		{"missing criteria", `{"overallScore": 80, "detailedAnalysis": {}}`, ErrInvalidResponse},
		{"string score", `{"overallScore": "80", "criteria": {}, "detailedAnalysis": {}}`, ErrInvalidResponse},
		{"negative score", `{"overallScore": -1` + bare[len(`{"overallScore": 70.5`):], ErrInvalidResponse},
		{"numeric list item", `{"overallScore": 80, "criteria": {"innovationPotential": 60, "feasibility": 70, "marketReadiness": 80, "scalability": 90, "riskLevel": 10},
"detailedAnalysis": {"strengths": [1], "weaknesses": [], "opportunities": [], "threats": [], "recommendations": []}}`, ErrInvalidResponse},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := DecodeReply(tc.text)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 70.5, r.OverallScore)
			assert.Equal(t, 90.0, r.Criteria.Scalability)
			assert.Equal(t, 0.0, r.Criteria.RiskLevel)
			assert.Equal(t, []string{"b", "c"}, r.DetailedAnalysis.Recommendations)
		})
	}
}
