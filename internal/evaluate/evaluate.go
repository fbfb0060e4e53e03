// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package evaluate turns an idea and its intelligence bundle into a scored
// evaluation through one model call, and measures the model with synthetic
// prompts. The evaluation path never fails: any error after input
// validation ends in a canned fallback result. The performance path returns
// its errors.
package evaluate

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/innovation-engine/internal/llm"
	"github.com/pdiddy/innovation-engine/internal/logging"
	"github.com/pdiddy/innovation-engine/internal/metrics"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

// State names a step of one evaluation.
type State string

const (
	StateGathering State = "gathering-intelligence"
	StatePrompting State = "prompting-model"
	StateParsing   State = "parsing-response"
	StateDone      State = "done"
	StateFallback  State = "fallback-evaluation"
)

// idSuffixLen is the number of base36 characters after the timestamp in an
// evaluation ID.
const idSuffixLen = 9

// Gatherer produces the intelligence bundle for an idea. It must always
// return a complete bundle; a non-nil error reports that the bundle is the
// hardcoded fallback.
type Gatherer interface {
	Gather(ctx context.Context, idea types.InnovationIdea) (types.IntelligenceBundle, error)
}

// Evaluator runs the gather, prompt, parse pipeline for one idea at a time.
// It holds no per-call state and is safe for concurrent use.
type Evaluator struct {
	Intel   Gatherer
	Model   llm.Generator
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	// Now and Rand are replaceable for tests.
	Now  func() time.Time
	Rand func() uint64
}

// NewEvaluator builds an Evaluator with the wall clock and a random ID source.
func NewEvaluator(intel Gatherer, model llm.Generator, logger *zap.Logger, m *metrics.Metrics) *Evaluator {
	return &Evaluator{
		Intel:   intel,
		Model:   model,
		Logger:  logging.OrNop(logger),
		Metrics: m,
		Now:     time.Now,
		Rand:    rand.Uint64,
	}
}

// Evaluate produces an evaluation for idea. It always returns a complete
// result; Fallback reports whether the canned scores were used.
func (e *Evaluator) Evaluate(ctx context.Context, idea types.InnovationIdea) types.EvaluationResult {
	if idea.ID == "" {
		idea.ID = uuid.NewString()
	}
	logger := logging.OrNop(e.Logger).With(zap.String("idea_id", idea.ID))

	bundle, err := e.Intel.Gather(ctx, idea)
	if err != nil {
		return e.fallback(ctx, idea, nil, StateGathering, err)
	}

	prompt, err := BuildPrompt(idea, bundle)
	if err != nil {
		return e.fallback(ctx, idea, &bundle, StatePrompting, err)
	}

	start := e.now()
	text, err := e.generate(ctx, prompt)
	elapsed := e.now().Sub(start)
	if err != nil {
		return e.fallback(ctx, idea, &bundle, StatePrompting, err)
	}

	reply, err := DecodeReply(text)
	if err != nil {
		return e.fallback(ctx, idea, &bundle, StateParsing, err)
	}

	result := e.assemble(idea, bundle)
	result.OverallScore = reply.OverallScore
	result.Criteria = reply.Criteria
	result.DetailedAnalysis = nonNilAnalysis(reply.DetailedAnalysis)
	result.PerformanceMetrics = types.PerformanceMetrics{
		ResponseTime: elapsed.Milliseconds(),
		PromptLength: utf8.RuneCountInString(prompt),
		TokenUsage:   ApproxTokenUsage,
		Cost:         ApproxCost,
	}

	e.Metrics.ObserveEvaluation(false)
	logger.Info("evaluation complete",
		zap.String("state", string(StateDone)),
		zap.Float64("overall_score", result.OverallScore),
		zap.Duration("model_latency", elapsed))
	return result
}

// generate calls the model, turning a panic in the client into an error.
func (e *Evaluator) generate(ctx context.Context, prompt string) (text string, err error) {
	if e.Model == nil {
		return "", llm.ErrNoAPIKey
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model call panicked: %v", r)
		}
	}()
	return e.Model.Generate(ctx, prompt)
}

// fallback builds the canned evaluation. A bundle that was already gathered
// is reused; gathering is repeated only when it was the failing state.
func (e *Evaluator) fallback(ctx context.Context, idea types.InnovationIdea, bundle *types.IntelligenceBundle, failed State, cause error) types.EvaluationResult {
	logging.OrNop(e.Logger).Warn("evaluation falling back",
		zap.String("idea_id", idea.ID),
		zap.String("state", string(failed)),
		zap.Error(cause))

	var b types.IntelligenceBundle
	if bundle != nil {
		b = *bundle
	} else {
		// The bundle is complete even when err is set.
		b, _ = e.Intel.Gather(ctx, idea)
	}

	result := e.assemble(idea, b)
	result.OverallScore = FallbackOverallScore
	result.Criteria = FallbackCriteria()
	result.DetailedAnalysis = FallbackAnalysis()
	result.PerformanceMetrics = fallbackMetrics()
	result.Fallback = true

	e.Metrics.ObserveEvaluation(true)
	return result
}

func (e *Evaluator) assemble(idea types.InnovationIdea, b types.IntelligenceBundle) types.EvaluationResult {
	now := e.now()
	return types.EvaluationResult{
		ID:                      e.newID(now),
		IdeaID:                  idea.ID,
		GeneratedAt:             now,
		MarketData:              b.MarketData,
		TechnicalAnalysis:       b.TechStackData,
		ResearchIntelligence:    b.ResearchPapers,
		CompetitiveIntelligence: b.CompetitiveData,
		PatentIntelligence:      b.PatentData,
	}
}

func (e *Evaluator) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// newID returns eval_<epoch-ms>_<9 base36 chars>.
func (e *Evaluator) newID(now time.Time) string {
	rnd := e.Rand
	if rnd == nil {
		rnd = rand.Uint64
	}
	suffix := strconv.FormatUint(rnd(), 36)
	for len(suffix) < idSuffixLen {
		suffix = "0" + suffix
	}
	return fmt.Sprintf("eval_%d_%s", now.UnixMilli(), suffix[len(suffix)-idSuffixLen:])
}

// nonNilAnalysis replaces missing lists with empty ones so the result
// always serializes every field.
func nonNilAnalysis(a types.DetailedAnalysis) types.DetailedAnalysis {
	for _, l := range []*[]string{&a.Strengths, &a.Weaknesses, &a.Opportunities, &a.Threats, &a.Recommendations} {
		if *l == nil {
			*l = []string{}
		}
	}
	return a
}
