// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/innovation-engine/pkg/types"
)

// ResultFile is the on-disk form of one evaluation. A saved file can be
// rendered to a report later without calling any API again.
type ResultFile struct {
	Idea       types.InnovationIdea   `yaml:"idea"`
	Evaluation types.EvaluationResult `yaml:"evaluation"`
	Model      string                 `yaml:"model,omitempty"`
	SavedAt    time.Time              `yaml:"saved_at"`
}

// WriteResultFile saves idea and its evaluation to a YAML file.
func WriteResultFile(path string, idea types.InnovationIdea, result types.EvaluationResult, model string) error {
	rf := ResultFile{
		Idea:       idea,
		Evaluation: result,
		Model:      model,
		SavedAt:    time.Now().UTC(),
	}
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved result file.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	if rf.Evaluation.ID == "" {
		return nil, errors.New("parsing result file: missing evaluation id")
	}
	return &rf, nil
}

// SuiteFile is the on-disk form of a performance suite run.
type SuiteFile struct {
	Model       string       `yaml:"model,omitempty"`
	Concurrency int          `yaml:"concurrency"`
	Summary     SuiteSummary `yaml:"summary"`
	SavedAt     time.Time    `yaml:"saved_at"`
}

// WriteSuiteFile saves a suite summary to a YAML file.
func WriteSuiteFile(path string, s SuiteSummary, model string, concurrency int) error {
	data, err := yaml.Marshal(&SuiteFile{
		Model:       model,
		Concurrency: concurrency,
		Summary:     s,
		SavedAt:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshaling suite file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
