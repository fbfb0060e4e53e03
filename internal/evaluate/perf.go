// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/innovation-engine/internal/llm"
	"github.com/pdiddy/innovation-engine/internal/logging"
	"github.com/pdiddy/innovation-engine/internal/metrics"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

// ErrPerformanceTest wraps every failure of a performance round trip.
var ErrPerformanceTest = errors.New("failed to test prompt performance")

const (
	testPromptBase    = "Evaluate this innovation idea: "
	testPromptIdea    = "A revolutionary AI-powered platform for innovation screening that uses advanced language models to assess ideas comprehensively."
	testPromptPadding = "Please provide detailed analysis including strengths, weaknesses, opportunities, threats, and recommendations. "
)

// Per-1000-token prices and the characters-per-token approximation.
const (
	inputPricePer1K  = 0.0005
	outputPricePer1K = 0.0015
	charsPerToken    = 4
)

// accuracyKeywords are the sections a complete answer mentions.
var accuracyKeywords = []string{"strengths", "weaknesses", "opportunities", "threats", "recommendations"}

// GenerateTestPrompt returns a synthetic prompt of exactly length characters.
// Lengths at or below the fixed prefix truncate the prefix; zero or negative
// lengths give an empty prompt.
func GenerateTestPrompt(length int) string {
	if length <= 0 {
		return ""
	}
	if length <= len(testPromptBase) {
		return testPromptBase[:length]
	}
	target := length - len(testPromptBase)
	unit := testPromptIdea + testPromptPadding
	reps := (target + len(unit) - 1) / len(unit)
	return testPromptBase + strings.Repeat(unit, reps)[:target]
}

// Accuracy is the percentage of the five section keywords present in the
// response, case-insensitively.
func Accuracy(response string) float64 {
	lower := strings.ToLower(response)
	found := 0
	for _, k := range accuracyKeywords {
		if strings.Contains(lower, k) {
			found++
		}
	}
	return float64(found) / float64(len(accuracyKeywords)) * 100
}

// AssessQuality buckets a response by length, braces and sentence count.
func AssessQuality(response string) types.Quality {
	n := utf8.RuneCountInString(response)
	structured := strings.Contains(response, "{") && strings.Contains(response, "}")
	sentences := strings.Count(response, ".") + 1

	switch {
	case n > 1000 && structured && sentences > 10:
		return types.QualityExcellent
	case n > 500 && structured:
		return types.QualityGood
	case n > 200:
		return types.QualityFair
	default:
		return types.QualityPoor
	}
}

// Cost estimates the USD price of a round trip from character counts.
func Cost(inputChars, outputChars int) float64 {
	in := math.Ceil(float64(inputChars) / charsPerToken)
	out := math.Ceil(float64(outputChars) / charsPerToken)
	return in*inputPricePer1K/1000 + out*outputPricePer1K/1000
}

// Tester measures the model with synthetic prompts.
type Tester struct {
	Model   llm.Generator
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// NewTester builds a Tester using the wall clock.
func NewTester(model llm.Generator, logger *zap.Logger, m *metrics.Metrics) *Tester {
	return &Tester{Model: model, Logger: logging.OrNop(logger), Metrics: m, Now: time.Now}
}

// TestPromptPerformance sends one synthetic prompt of promptLength
// characters and scores the response. Model failures are returned wrapped
// in ErrPerformanceTest.
func (t *Tester) TestPromptPerformance(ctx context.Context, promptLength int) (types.PromptTestResult, error) {
	if t.Model == nil {
		return types.PromptTestResult{}, fmt.Errorf("%w: %w", ErrPerformanceTest, llm.ErrNoAPIKey)
	}
	prompt := GenerateTestPrompt(promptLength)

	start := t.now()
	text, err := t.Model.Generate(ctx, prompt)
	elapsed := t.now().Sub(start)
	if err != nil {
		logging.OrNop(t.Logger).Warn("performance test failed",
			zap.Int("prompt_length", promptLength), zap.Error(err))
		return types.PromptTestResult{}, fmt.Errorf("%w: %w", ErrPerformanceTest, err)
	}

	res := types.PromptTestResult{
		PromptLength: promptLength,
		ResponseTime: elapsed.Milliseconds(),
		Accuracy:     Accuracy(text),
		Cost:         Cost(utf8.RuneCountInString(prompt), utf8.RuneCountInString(text)),
		Quality:      AssessQuality(text),
		Timestamp:    t.now(),
	}
	t.Metrics.ObservePerformanceTest(string(res.Quality))
	return res, nil
}

func (t *Tester) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}
