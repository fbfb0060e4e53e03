// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/innovation-engine/pkg/types"
)

// recordingTester tracks in-flight calls and fails on configured lengths.
type recordingTester struct {
	fail     map[int]bool
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (r *recordingTester) TestPromptPerformance(_ context.Context, n int) (types.PromptTestResult, error) {
	cur := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		p := r.peak.Load()
		if cur <= p || r.peak.CompareAndSwap(p, cur) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	if r.fail[n] {
		return types.PromptTestResult{}, fmt.Errorf("%w: length %d", ErrPerformanceTest, n)
	}
	return types.PromptTestResult{PromptLength: n, ResponseTime: int64(n / 10), Accuracy: 80, Cost: 0.001, Quality: types.QualityGood}, nil
}

// pauseRecorder records pauses without sleeping.
type pauseRecorder struct {
	mu     sync.Mutex
	pauses []time.Duration
	err    error
}

func (p *pauseRecorder) sleep(_ context.Context, d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pauses = append(p.pauses, d)
	return p.err
}

func TestBatchRunner_BatchesAndOrder(t *testing.T) {
	tester := &recordingTester{fail: map[int]bool{300: true}}
	pr := &pauseRecorder{}
	r := &BatchRunner{Tester: tester, Concurrency: 3, Pause: time.Second, Logger: zaptest.NewLogger(t), Sleep: pr.sleep}

	lengths := []int{100, 200, 300, 400, 500, 600, 700}
	s, err := r.Run(context.Background(), lengths)
	require.NoError(t, err)

	require.Len(t, s.Results, len(lengths))
	for i, res := range s.Results {
		assert.Equal(t, lengths[i], res.PromptLength)
	}
	assert.Equal(t, []time.Duration{time.Second, time.Second}, pr.pauses)
	assert.LessOrEqual(t, tester.peak.Load(), int32(3))

	failed := s.Results[2]
	assert.Equal(t, types.QualityPoor, failed.Quality)
	assert.Zero(t, failed.ResponseTime)
	assert.Zero(t, failed.Accuracy)
	assert.Zero(t, failed.Cost)
	assert.Contains(t, failed.Error, "length 300")

	assert.Equal(t, 1, s.Failed)
	assert.InDelta(t, 0.006, s.TotalCost, 1e-12)
	assert.InDelta(t, 80.0, s.AverageAccuracy, 1e-9)
	assert.InDelta(t, float64(10+20+40+50+60+70)/6, s.AverageResponseTime, 1e-9)
}

func TestBatchRunner_NoPause(t *testing.T) {
	pr := &pauseRecorder{}
	r := &BatchRunner{Tester: &recordingTester{}, Concurrency: 1, Pause: -1, Sleep: pr.sleep}

	s, err := r.Run(context.Background(), []int{10, 20, 30})
	require.NoError(t, err)
	assert.Len(t, s.Results, 3)
	assert.Empty(t, pr.pauses)
}

func TestBatchRunner_CancelledDuringPause(t *testing.T) {
	pr := &pauseRecorder{err: context.Canceled}
	r := &BatchRunner{Tester: &recordingTester{}, Concurrency: 2, Pause: time.Second, Sleep: pr.sleep}

	s, err := r.Run(context.Background(), []int{10, 20, 30, 40})
	require.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, s.Results, 2)
}

func TestBatchRunner_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &BatchRunner{Tester: &recordingTester{}, Concurrency: 1, Pause: time.Hour}

	s, err := r.Run(ctx, []int{10, 20})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.Results)
}

func TestBatchRunner_Empty(t *testing.T) {
	r := &BatchRunner{Tester: &recordingTester{}}
	s, err := r.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, s.Results)
	assert.Zero(t, s.AverageAccuracy)
}
