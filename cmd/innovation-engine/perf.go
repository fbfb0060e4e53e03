// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/innovation-engine/internal/evaluate"
	"github.com/pdiddy/innovation-engine/internal/llm"
)

var perfCmd = &cobra.Command{
	Use:   "perf",
	Short: "Measure model latency, accuracy and cost across prompt lengths",
	Long: `Perf sends synthetic prompts of the given lengths to the model and
scores each response. Tests run in batches of --concurrency with a pause
between batches. A failed test is reported and does not stop the run.`,
	RunE: runPerf,
}

func runPerf(cmd *cobra.Command, args []string) error {
	lengths, _ := cmd.Flags().GetIntSlice("lengths")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	pause, _ := cmd.Flags().GetDuration("pause")
	outPath, _ := cmd.Flags().GetString("out")
	if len(lengths) == 0 {
		return errors.New("at least one prompt length is required")
	}
	for _, n := range lengths {
		if n < 1 {
			return fmt.Errorf("invalid prompt length %d", n)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	tr := a.tester()
	if tr == nil {
		return llm.ErrNoAPIKey
	}
	if concurrency <= 0 {
		concurrency = a.cfg.Perf.MaxConcurrentTests
	}
	if !cmd.Flags().Changed("pause") {
		pause = a.cfg.Perf.BatchPause
	}

	runner := &evaluate.BatchRunner{Tester: tr, Concurrency: concurrency, Pause: pause, Logger: a.logger}
	summary, runErr := runner.Run(ctx, lengths)

	fmt.Printf("%8s %10s %9s %10s %-9s %s\n", "LENGTH", "TIME(ms)", "ACCURACY", "COST($)", "QUALITY", "ERROR")
	for _, r := range summary.Results {
		fmt.Printf("%8d %10d %8.0f%% %10.6f %-9s %s\n", r.PromptLength, r.ResponseTime, r.Accuracy, r.Cost, r.Quality, r.Error)
	}
	fmt.Printf("\naverage response %.0f ms, average accuracy %.1f%%, total cost $%.6f, failed %d\n",
		summary.AverageResponseTime, summary.AverageAccuracy, summary.TotalCost, summary.Failed)

	if outPath != "" {
		if err := evaluate.WriteSuiteFile(outPath, summary, a.modelName(), concurrency); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved results to %s\n", outPath)
	}
	return runErr
}

func init() {
	perfCmd.Flags().IntSlice("lengths", []int{500, 1000, 2000, 5000}, "prompt lengths in characters")
	perfCmd.Flags().Int("concurrency", 0, "tests per batch (default from config, 3)")
	perfCmd.Flags().Duration("pause", time.Second, "pause between batches; negative disables")
	perfCmd.Flags().String("out", "", "save results to this YAML file")

	rootCmd.AddCommand(perfCmd)
}
