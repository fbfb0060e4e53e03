// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/innovation-engine/internal/history"
	"github.com/pdiddy/innovation-engine/internal/logging"
	"github.com/pdiddy/innovation-engine/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation HTTP API",
	Long: `Serve starts the HTTP API:

  POST /api/evaluate                 evaluate an idea
  POST /api/test-performance         one prompt performance test
  POST /api/test-performance/suite   batched performance tests
  GET  /api/evaluations              recent evaluations, newest first
  GET  /api/evaluations/:id/report   HTML report download
  GET  /healthz, /metrics

The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if logging.ParseLevel(a.cfg.Log.Level) != zapcore.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &server.Server{
		History:  history.New(a.cfg.Server.HistorySize),
		Perf:     a.cfg.Perf,
		Logger:   a.logger,
		Gatherer: a.registry,
	}
	// Assign only non-nil values so the interfaces stay nil without a key.
	if ev := a.evaluator(); ev != nil {
		s.Evaluator = ev
	}
	if tr := a.tester(); tr != nil {
		s.Tester = tr
	}
	return s.Run(ctx, a.cfg.Server.Addr)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Int("history-size", 0, "number of evaluations kept in memory (default 100)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.history_size", serveCmd.Flags().Lookup("history-size"))

	rootCmd.AddCommand(serveCmd)
}
