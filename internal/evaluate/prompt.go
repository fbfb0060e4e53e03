// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/pdiddy/innovation-engine/pkg/types"
)

// evaluationPromptTmpl is the single prompt sent to the model for each idea.
// The intelligence bundle is embedded as indented JSON.
var evaluationPromptTmpl = template.Must(template.New("evaluation").Parse(`You are a senior engineering director and product strategist with 15+ years of experience in tech companies like Google, Meta, and startups. Analyze this innovation idea with the depth and rigor expected in a board presentation.

INNOVATION IDEA:
Title: {{.Idea.Title}}
Category: {{.Idea.Category}}
Description: {{.Idea.Description}}

COMPREHENSIVE PRODUCT INTELLIGENCE:
{{.Intelligence}}

As a senior engineering director, provide a comprehensive analysis including:

1. **Technical Feasibility Assessment** (0-100):
   - Implementation complexity
   - Required technical skills
   - Development timeline
   - Technology stack recommendations

2. **Market Intelligence** (0-100):
   - Market size and opportunity
   - Competitive landscape analysis
   - Market timing and readiness
   - Customer demand validation

3. **Innovation Potential** (0-100):
   - Novelty and differentiation
   - Technical innovation level
   - Market disruption potential
   - Intellectual property opportunities

4. **Scalability Analysis** (0-100):
   - Growth potential
   - Infrastructure requirements
   - Team scaling needs
   - Revenue model viability

5. **Risk Assessment** (0-100, lower = higher risk):
   - Technical risks
   - Market risks
   - Competitive risks
   - Regulatory risks

6. **Strategic Recommendations**:
   - Go-to-market strategy
   - Technology roadmap
   - Team building requirements
   - Funding requirements
   - Partnership opportunities

Format your response as valid JSON matching this structure:
{
  "overallScore": number,
  "criteria": {
    "innovationPotential": number,
    "feasibility": number,
    "marketReadiness": number,
    "scalability": number,
    "riskLevel": number
  },
  "detailedAnalysis": {
    "strengths": string[],
    "weaknesses": string[],
    "opportunities": string[],
    "threats": string[],
    "recommendations": string[]
  }
}`))

// BuildPrompt renders the evaluation prompt for idea with bundle embedded.
func BuildPrompt(idea types.InnovationIdea, bundle types.IntelligenceBundle) (string, error) {
	var intel bytes.Buffer
	enc := json.NewEncoder(&intel)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bundle); err != nil {
		return "", fmt.Errorf("encoding intelligence bundle: %w", err)
	}

	var buf bytes.Buffer
	err := evaluationPromptTmpl.Execute(&buf, struct {
		Idea         types.InnovationIdea
		Intelligence string
	}{idea, string(bytes.TrimSuffix(intel.Bytes(), []byte("\n")))})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}
