// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm is the boundary to the generative model: a prompt string goes
// in and free-form text comes out. Prompt construction and response decoding
// live with the callers.
package llm

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/innovation-engine/internal/logging"
	"github.com/pdiddy/innovation-engine/internal/metrics"
)

// ErrNoAPIKey is returned when a model client is built without a credential.
var ErrNoAPIKey = errors.New("model API key not configured")

// Generator sends one prompt and returns the raw response text. A single call
// is made; implementations do not retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Observed wraps a Generator with call logging and metrics under purpose.
type Observed struct {
	Next    Generator
	Purpose string
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Generate forwards to Next and records the outcome.
func (o Observed) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := o.Next.Generate(ctx, prompt)
	elapsed := time.Since(start)

	o.Metrics.ObserveLLM(o.Purpose, err, elapsed)
	logger := logging.OrNop(o.Logger)
	if err != nil {
		logger.Warn("model call failed", zap.String("purpose", o.Purpose), zap.Duration("elapsed", elapsed), zap.Error(err))
	} else {
		logger.Debug("model call", zap.String("purpose", o.Purpose), zap.Duration("elapsed", elapsed),
			zap.Int("prompt_chars", len(prompt)), zap.Int("response_chars", len(out)))
	}
	return out, err
}
