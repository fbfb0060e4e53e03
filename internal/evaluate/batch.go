// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/innovation-engine/internal/logging"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

// PromptTester runs a single performance round trip.
type PromptTester interface {
	TestPromptPerformance(ctx context.Context, promptLength int) (types.PromptTestResult, error)
}

// BatchRunner runs performance tests in batches of at most Concurrency
// calls, pausing between batches. The pause is the rate limit applied to the
// model; a negative Pause disables it.
type BatchRunner struct {
	Tester      PromptTester
	Concurrency int
	Pause       time.Duration
	Logger      *zap.Logger

	// Sleep waits for d or until ctx is done. Replaceable for tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

// SuiteSummary aggregates one suite run. Failed entries count toward Failed
// and TotalCost but not toward the averages.
type SuiteSummary struct {
	Results             []types.PromptTestResult `json:"results" yaml:"results"`
	AverageResponseTime float64                  `json:"averageResponseTime" yaml:"average_response_time"`
	AverageAccuracy     float64                  `json:"averageAccuracy" yaml:"average_accuracy"`
	TotalCost           float64                  `json:"totalCost" yaml:"total_cost"`
	Failed              int                      `json:"failed" yaml:"failed"`
}

// Run tests every length in order. A failing test does not stop the suite;
// it is recorded as a poor zero-valued entry carrying the error text. Run
// returns early only when ctx is done, with the results gathered so far.
func (r *BatchRunner) Run(ctx context.Context, lengths []int) (SuiteSummary, error) {
	size := r.Concurrency
	if size <= 0 {
		size = types.DefaultMaxConcurrentTests
	}
	logger := logging.OrNop(r.Logger)

	results := make([]types.PromptTestResult, 0, len(lengths))
	for start := 0; start < len(lengths); start += size {
		if start > 0 && r.Pause > 0 {
			if err := r.sleep(ctx, r.Pause); err != nil {
				return summarize(results), err
			}
		}
		if err := ctx.Err(); err != nil {
			return summarize(results), err
		}

		batch := lengths[start:min(start+size, len(lengths))]
		logger.Debug("running performance batch", zap.Int("offset", start), zap.Int("size", len(batch)))
		results = append(results, r.runBatch(ctx, batch)...)
	}
	return summarize(results), nil
}

// runBatch runs one batch concurrently and returns results in input order.
func (r *BatchRunner) runBatch(ctx context.Context, batch []int) []types.PromptTestResult {
	out := make([]types.PromptTestResult, len(batch))
	var eg errgroup.Group
	eg.SetLimit(len(batch))
	for i, length := range batch {
		eg.Go(func() error {
			res, err := r.Tester.TestPromptPerformance(ctx, length)
			if err != nil {
				res = types.PromptTestResult{
					PromptLength: length,
					Quality:      types.QualityPoor,
					Timestamp:    time.Now(),
					Error:        err.Error(),
				}
			}
			out[i] = res
			return nil
		})
	}
	_ = eg.Wait()
	return out
}

func (r *BatchRunner) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleep != nil {
		return r.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func summarize(results []types.PromptTestResult) SuiteSummary {
	s := SuiteSummary{Results: results}
	var ok int
	var totalTime, totalAcc float64
	for _, res := range results {
		s.TotalCost += res.Cost
		if res.Error != "" {
			s.Failed++
			continue
		}
		ok++
		totalTime += float64(res.ResponseTime)
		totalAcc += res.Accuracy
	}
	if ok > 0 {
		s.AverageResponseTime = totalTime / float64(ok)
		s.AverageAccuracy = totalAcc / float64(ok)
	}
	return s
}
