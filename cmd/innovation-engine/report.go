// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/innovation-engine/internal/evaluate"
	"github.com/pdiddy/innovation-engine/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a saved evaluation as an HTML report",
	Long: `Report reads an evaluation saved with "evaluate --out" and writes the
HTML report. No API calls are made.`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	out, _ := cmd.Flags().GetString("out")
	if from == "" {
		return errors.New("--from is required")
	}

	rf, err := evaluate.ReadResultFile(from)
	if err != nil {
		return err
	}
	if out == "" {
		out = report.Filename(rf.Idea)
	}
	if err := writeReport(out, rf.Idea, rf.Evaluation); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote report to %s\n", out)
	return nil
}

func init() {
	reportCmd.Flags().String("from", "", "evaluation YAML file written by evaluate --out")
	reportCmd.Flags().String("out", "", "output HTML file (default: innovation-report-<title>.html)")

	rootCmd.AddCommand(reportCmd)
}
