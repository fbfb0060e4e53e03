// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intel

import "github.com/pdiddy/innovation-engine/pkg/types"

var (
	highComplexityTech = set("TensorFlow", "PyTorch", "scikit-learn", "AWS IoT", "MQTT")
	integrationTech    = set("Stripe", "Plaid", "Twilio", "WebRTC", "HealthKit", "Google Fit", "Firebase", "React Native", "Flutter", "Redis")
)

// Complexity rates a stack: machine-learning or device technology is High,
// third-party integrations or native mobile is Medium, anything else Low.
func Complexity(stack []string) types.Complexity {
	level := types.ComplexityLow
	for _, t := range stack {
		if highComplexityTech[t] {
			return types.ComplexityHigh
		}
		if integrationTech[t] {
			level = types.ComplexityMedium
		}
	}
	return level
}

// Timeline maps a complexity rating to a rough delivery estimate.
func Timeline(c types.Complexity) string {
	switch c {
	case types.ComplexityHigh:
		return "6-12 months"
	case types.ComplexityMedium:
		return "3-6 months"
	default:
		return "1-3 months"
	}
}

type skillRule struct {
	skill string
	techs map[string]bool
}

var skillRules = []skillRule{
	{"Frontend development", set("React", "Next.js", "Vue", "vue", "Angular", "angular", "react", "Tailwind CSS", "TypeScript", "JavaScript")},
	{"Mobile development", set("React Native", "Flutter", "HealthKit", "Google Fit", "Swift", "Kotlin")},
	{"Backend development", set("Node.js", "Python", "Go", "Java", "express", "Express", "django", "Django", "flask", "spring", "laravel", "Ruby", "PHP")},
	{"Database design", set("PostgreSQL", "MongoDB", "Redis", "Firebase")},
	{"Machine learning", set("TensorFlow", "PyTorch", "scikit-learn")},
	{"IoT and device integration", set("AWS IoT", "MQTT")},
	{"Cloud infrastructure", set("AWS", "Docker", "AWS IoT")},
	{"Payments and third-party APIs", set("Stripe", "Plaid", "Twilio", "WebRTC")},
}

// RequiredSkills lists the skill areas the stack calls for, in a fixed order.
func RequiredSkills(stack []string) []string {
	out := []string{}
	for _, rule := range skillRules {
		for _, t := range stack {
			if rule.techs[t] {
				out = append(out, rule.skill)
				break
			}
		}
	}
	return out
}
