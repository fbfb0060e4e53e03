// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/innovation-engine/internal/evaluate"
	"github.com/pdiddy/innovation-engine/internal/llm"
	"github.com/pdiddy/innovation-engine/internal/report"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one innovation idea",
	Long: `Evaluate gathers search intelligence for an idea, asks the model for a
scored evaluation and prints it. A failed step yields the default
evaluation, marked as fallback.

Use --out to save the result as YAML (it can be rendered later with the
report command) and --html to write the HTML report directly.`,
	RunE: runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	idea, err := ideaFromFlags(cmd)
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("out")
	htmlPath, _ := cmd.Flags().GetString("html")
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	ev := a.evaluator()
	if ev == nil {
		return llm.ErrNoAPIKey
	}
	result := ev.Evaluate(ctx, idea)

	if outPath != "" {
		if err := evaluate.WriteResultFile(outPath, idea, result, a.modelName()); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved evaluation to %s\n", outPath)
	}
	if htmlPath != "" {
		if err := writeReport(htmlPath, idea, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote report to %s\n", htmlPath)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printEvaluation(os.Stdout, idea, result)
	return nil
}

func ideaFromFlags(cmd *cobra.Command) (types.InnovationIdea, error) {
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	category, _ := cmd.Flags().GetString("category")
	id, _ := cmd.Flags().GetString("id")

	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return types.InnovationIdea{}, errors.New("title and description are required")
	}
	if id == "" {
		id = uuid.NewString()
	}
	return types.InnovationIdea{
		ID:          id,
		Title:       title,
		Description: description,
		Category:    category,
		SubmittedAt: time.Now(),
		Status:      types.StatusAnalyzing,
	}, nil
}

func writeReport(path string, idea types.InnovationIdea, result types.EvaluationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := report.Render(f, idea, result, time.Now()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printEvaluation(w io.Writer, idea types.InnovationIdea, r types.EvaluationResult) {
	fmt.Fprintf(w, "%s (%s)\n", idea.Title, idea.Category)
	fmt.Fprintf(w, "Evaluation %s", r.ID)
	if r.Fallback {
		fmt.Fprint(w, " [fallback]")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "\nOverall score: %.0f\n", r.OverallScore)
	fmt.Fprintf(w, "  innovation potential %5.0f\n", r.Criteria.InnovationPotential)
	fmt.Fprintf(w, "  feasibility          %5.0f\n", r.Criteria.Feasibility)
	fmt.Fprintf(w, "  market readiness     %5.0f\n", r.Criteria.MarketReadiness)
	fmt.Fprintf(w, "  scalability          %5.0f\n", r.Criteria.Scalability)
	fmt.Fprintf(w, "  risk level           %5.0f\n", r.Criteria.RiskLevel)

	printList(w, "Strengths", r.DetailedAnalysis.Strengths)
	printList(w, "Weaknesses", r.DetailedAnalysis.Weaknesses)
	printList(w, "Opportunities", r.DetailedAnalysis.Opportunities)
	printList(w, "Threats", r.DetailedAnalysis.Threats)
	printList(w, "Recommendations", r.DetailedAnalysis.Recommendations)

	fmt.Fprintf(w, "\nMarket size: %s\n", r.MarketData.MarketSize)
	fmt.Fprintf(w, "Recommended stack: %s\n", strings.Join(r.TechnicalAnalysis.RecommendedTechStack, ", "))
	fmt.Fprintf(w, "Complexity: %s (%s)\n", r.TechnicalAnalysis.ImplementationComplexity, r.TechnicalAnalysis.DevelopmentTimeline)
	names := make([]string, 0, len(r.CompetitiveIntelligence.DirectCompetitors))
	for _, c := range r.CompetitiveIntelligence.DirectCompetitors {
		names = append(names, c.Name)
	}
	fmt.Fprintf(w, "Direct competitors: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(w, "Model call: %d ms, %d prompt chars\n", r.PerformanceMetrics.ResponseTime, r.PerformanceMetrics.PromptLength)
}

func printList(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}

func addIdeaFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "idea title (required)")
	cmd.Flags().String("description", "", "idea description")
	cmd.Flags().String("category", "Technology", "idea category, e.g. Healthcare")
}

func init() {
	addIdeaFlags(evaluateCmd)
	evaluateCmd.Flags().String("id", "", "idea identifier (default: random UUID)")
	evaluateCmd.Flags().String("out", "", "save the evaluation to this YAML file")
	evaluateCmd.Flags().String("html", "", "write the HTML report to this file")
	evaluateCmd.Flags().Bool("json", false, "print the evaluation as JSON")

	rootCmd.AddCommand(evaluateCmd)
}
