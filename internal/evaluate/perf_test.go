// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/innovation-engine/internal/llm"
	"github.com/pdiddy/innovation-engine/internal/metrics"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

func TestGenerateTestPrompt(t *testing.T) {
	for _, n := range []int{1, 10, 31, 32, 100, 1000, 5000, 20000} {
		p := GenerateTestPrompt(n)
		assert.Len(t, p, n, "length %d", n)
	}

	assert.Equal(t, "", GenerateTestPrompt(0))
	assert.Equal(t, "", GenerateTestPrompt(-5))
	assert.Equal(t, "Evaluate", GenerateTestPrompt(8))
	assert.Equal(t, "Evaluate this innovation idea: A", GenerateTestPrompt(32))

	p := GenerateTestPrompt(1000)
	assert.True(t, strings.HasPrefix(p, "Evaluate this innovation idea: A revolutionary AI-powered platform"))
	assert.Contains(t, p, "recommendations. A revolutionary")
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"Strengths, WEAKNESSES, opportunities, threats and recommendations", 100},
		{"nothing relevant here", 0},
		{"strengths and weaknesses, some threats", 60},
		{"", 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Accuracy(tc.text), tc.text)
	}
}

func TestAssessQuality(t *testing.T) {
	sentences := strings.Repeat("Short sentence. ", 70) // 1120 chars, 71 parts
	tests := []struct {
		name string
		text string
		want types.Quality
	}{
		{"long structured many sentences", "{" + sentences + "}", types.QualityExcellent},
		{"long structured few sentences", "{" + strings.Repeat("x", 1200) + "}", types.QualityGood},
		{"long unstructured", sentences, types.QualityFair},
		{"medium structured", "{" + strings.Repeat("x", 600) + "}", types.QualityGood},
		{"medium unstructured", strings.Repeat("x", 300), types.QualityFair},
		{"exactly 200", strings.Repeat("x", 200), types.QualityPoor},
		{"short structured", "{}", types.QualityPoor},
		{"empty", "", types.QualityPoor},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AssessQuality(tc.text))
		})
	}
}

func TestCost(t *testing.T) {
	assert.InDelta(t, 0.002, Cost(4000, 4000), 1e-12)
	assert.InDelta(t, 0.000002, Cost(1, 1), 1e-12)
	assert.InDelta(t, 0.0000005*250, Cost(1000, 0), 1e-12)
	assert.Equal(t, 0.0, Cost(0, 0))
}

func TestTestPromptPerformance(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	var got string
	reply := "{strengths, weaknesses, opportunities}" + strings.Repeat(" filler", 40)
	model := llm.GeneratorFunc(func(_ context.Context, p string) (string, error) {
		got = p
		return reply, nil
	})
	tr := NewTester(model, zaptest.NewLogger(t), m)
	tr.Now = steppingClock(time.Second)

	res, err := tr.TestPromptPerformance(context.Background(), 500)
	require.NoError(t, err)

	assert.Len(t, got, 500)
	assert.Equal(t, 500, res.PromptLength)
	assert.Equal(t, int64(1000), res.ResponseTime)
	assert.Equal(t, 60.0, res.Accuracy)
	assert.Equal(t, types.QualityFair, res.Quality)
	assert.InDelta(t, Cost(500, len(reply)), res.Cost, 1e-12)
	assert.Equal(t, testStart.Add(2*time.Second), res.Timestamp)
	assert.Empty(t, res.Error)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PerformanceTests.WithLabelValues("fair")))
}

func TestTestPromptPerformance_Errors(t *testing.T) {
	boom := errors.New("deadline exceeded")
	tr := NewTester(modelReturning("", boom), zaptest.NewLogger(t), nil)

	_, err := tr.TestPromptPerformance(context.Background(), 100)
	require.ErrorIs(t, err, ErrPerformanceTest)
	require.ErrorIs(t, err, boom)

	_, err = NewTester(nil, nil, nil).TestPromptPerformance(context.Background(), 100)
	require.ErrorIs(t, err, ErrPerformanceTest)
	require.ErrorIs(t, err, llm.ErrNoAPIKey)
}
