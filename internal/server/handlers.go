// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/innovation-engine/internal/evaluate"
	"github.com/pdiddy/innovation-engine/internal/logging"
	"github.com/pdiddy/innovation-engine/internal/report"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

// Error messages returned to clients.
const (
	msgInvalidBody        = "Invalid JSON request body"
	msgTitleDescription   = "Title and description are required"
	msgKeyNotConfigured   = "Gemini API key not configured"
	msgEvaluateFailed     = "Failed to evaluate innovation idea"
	msgPromptLength       = "Prompt length is required and must be a number"
	msgPromptLengthRange  = "Prompt length must be a whole number between 1 and 100000"
	msgPerformanceFailed  = "Failed to test prompt performance"
	msgSuiteLengths       = "promptLengths must list between 1 and 50 prompt lengths"
	msgEvaluationNotFound = "Evaluation not found"
)

// Input limits.
const (
	MaxPromptLength     = 100000
	MaxSuiteSize        = 50
	MaxSuiteConcurrency = 10
)

func (s *Server) handleEvaluate(c *gin.Context) {
	var idea types.InnovationIdea
	if err := c.ShouldBindJSON(&idea); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}
	if strings.TrimSpace(idea.Title) == "" || strings.TrimSpace(idea.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgTitleDescription})
		return
	}
	if s.Evaluator == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgKeyNotConfigured})
		return
	}

	if idea.ID == "" {
		idea.ID = uuid.NewString()
	}
	if idea.SubmittedAt.IsZero() {
		idea.SubmittedAt = s.now()
	}

	result, ok := s.evaluateSafely(c, idea)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgEvaluateFailed})
		return
	}

	idea.Status = types.StatusCompleted
	if s.History != nil {
		s.History.Add(idea, result)
	}
	c.JSON(http.StatusOK, result)
}

// evaluateSafely converts a panic in the evaluator into a failed call.
func (s *Server) evaluateSafely(c *gin.Context, idea types.InnovationIdea) (result types.EvaluationResult, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logging.OrNop(s.Logger).Error("evaluation panicked", zap.String("idea_id", idea.ID), zap.Any("panic", r))
			ok = false
		}
	}()
	return s.Evaluator.Evaluate(c.Request.Context(), idea), true
}

// performanceRequest uses a pointer so a missing field is distinguishable
// from zero; a non-number fails to bind.
type performanceRequest struct {
	PromptLength *float64 `json:"promptLength"`
}

func (s *Server) handleTestPerformance(c *gin.Context) {
	var req performanceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PromptLength == nil || *req.PromptLength == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgPromptLength})
		return
	}
	n, ok := validLength(*req.PromptLength)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgPromptLengthRange})
		return
	}
	if s.Tester == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgKeyNotConfigured})
		return
	}

	res, err := s.Tester.TestPromptPerformance(c.Request.Context(), n)
	if err != nil {
		logging.OrNop(s.Logger).Warn("performance test failed", zap.Int("prompt_length", n), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgPerformanceFailed})
		return
	}
	c.JSON(http.StatusOK, res)
}

type suiteRequest struct {
	PromptLengths      []float64 `json:"promptLengths"`
	MaxConcurrentTests int       `json:"maxConcurrentTests"`
}

func (s *Server) handleTestSuite(c *gin.Context) {
	var req suiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}
	if len(req.PromptLengths) == 0 || len(req.PromptLengths) > MaxSuiteSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgSuiteLengths})
		return
	}
	lengths := make([]int, len(req.PromptLengths))
	for i, v := range req.PromptLengths {
		n, ok := validLength(v)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgPromptLengthRange})
			return
		}
		lengths[i] = n
	}
	if s.Tester == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgKeyNotConfigured})
		return
	}

	concurrency := req.MaxConcurrentTests
	if concurrency <= 0 {
		concurrency = s.Perf.MaxConcurrentTests
	}
	runner := &evaluate.BatchRunner{
		Tester:      s.Tester,
		Concurrency: min(concurrency, MaxSuiteConcurrency),
		Pause:       s.Perf.BatchPause,
		Logger:      s.Logger,
	}
	summary, err := runner.Run(c.Request.Context(), lengths)
	if err != nil {
		logging.OrNop(s.Logger).Warn("performance suite interrupted", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgPerformanceFailed})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleListEvaluations(c *gin.Context) {
	if s.History == nil {
		c.JSON(http.StatusOK, gin.H{"evaluations": []any{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"evaluations": s.History.List()})
}

func (s *Server) handleReport(c *gin.Context) {
	if s.History == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgEvaluationNotFound})
		return
	}
	entry, ok := s.History.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgEvaluationNotFound})
		return
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, entry.Idea, entry.Evaluation, s.now()); err != nil {
		logging.OrNop(s.Logger).Error("rendering report", zap.String("evaluation_id", entry.Evaluation.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+report.Filename(entry.Idea)+`"`)
	c.Data(http.StatusOK, report.ContentType, buf.Bytes())
}

// validLength accepts whole numbers in [1, MaxPromptLength].
func validLength(v float64) (int, bool) {
	if v != math.Trunc(v) || v < 1 || v > MaxPromptLength {
		return 0, false
	}
	return int(v), true
}
