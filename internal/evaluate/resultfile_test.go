// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultFileRoundTrip(t *testing.T) {
	e, _ := newTestEvaluator(t, &fakeGatherer{}, modelReturning(goodReply, nil))
	res := e.Evaluate(context.Background(), coachIdea)
	path := filepath.Join(t.TempDir(), "eval.yaml")

	require.NoError(t, WriteResultFile(path, coachIdea, res, "gemini-1.5-pro"))

	rf, err := ReadResultFile(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-pro", rf.Model)
	assert.Equal(t, coachIdea.Title, rf.Idea.Title)
	assert.Equal(t, res.ID, rf.Evaluation.ID)
	assert.Equal(t, res.Criteria, rf.Evaluation.Criteria)
	assert.Equal(t, res.DetailedAnalysis, rf.Evaluation.DetailedAnalysis)
	assert.Equal(t, res.MarketData.MarketSize, rf.Evaluation.MarketData.MarketSize)
	assert.True(t, res.GeneratedAt.Equal(rf.Evaluation.GeneratedAt))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "overall_score: 82")
}

func TestReadResultFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadResultFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "reading result file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("idea: [unclosed"), 0o644))
	_, err = ReadResultFile(bad)
	assert.ErrorContains(t, err, "parsing result file")

	noID := filepath.Join(dir, "noid.yaml")
	require.NoError(t, os.WriteFile(noID, []byte("idea:\n  title: x\n"), 0o644))
	_, err = ReadResultFile(noID)
	assert.ErrorContains(t, err, "missing evaluation id")
}

func TestWriteSuiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	s := summarize(nil)
	require.NoError(t, WriteSuiteFile(path, s, "gemini-1.5-pro", 3))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "concurrency: 3")
	assert.Contains(t, string(data), "failed: 0")
}
