// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the innovation-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/innovation-engine/internal/secrets"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets secrets.Set

// rootCmd is the base command for the innovation-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "innovation-engine",
	Short: "Evaluate innovation ideas with search intelligence and Gemini",
	Long: `innovation-engine scores an innovation idea. It plans search queries from
the idea's title and category, gathers market, technology, research,
competitive and patent signals from Google Custom Search, GitHub and arXiv,
and asks Gemini for a structured evaluation. When any step fails a complete
default evaluation is returned instead.

Run "serve" for the HTTP API, or use evaluate, plan, perf and report
directly from the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Names())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./innovation-engine.yaml or ~/.config/innovation-engine/innovation-engine.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of secret key files")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: console or json")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// envAliases are conventional variable names accepted next to the
// INNOVATION_ENGINE_ prefixed ones.
var envAliases = map[string]string{
	"llm.api_key":             "GEMINI_API_KEY",
	"search.google_api_key":   "GOOGLE_SEARCH_API_KEY",
	"search.google_engine_id": "GOOGLE_SEARCH_ENGINE_ID",
	"search.github_token":     "GITHUB_TOKEN",
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("innovation-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "innovation-engine"))
		}
	}

	viper.SetEnvPrefix("INNOVATION_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()
	for key, alias := range envAliases {
		_ = viper.BindEnv(key, "INNOVATION_ENGINE_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), alias)
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so Unmarshal sees environment overrides
// for keys absent from the config file.
func setDefaults() {
	viper.SetDefault("search.timeout", "0s")
	viper.SetDefault("search.user_agent", types.DefaultUserAgent)
	viper.SetDefault("search.google_api_key", "")
	viper.SetDefault("search.google_engine_id", "")
	viper.SetDefault("search.github_token", "")
	viper.SetDefault("search.web_max_results", types.DefaultWebMaxResults)
	viper.SetDefault("search.repo_max_results", types.DefaultRepoMaxResults)
	viper.SetDefault("search.paper_max_results", types.DefaultPaperMaxResults)
	viper.SetDefault("llm.model", types.DefaultModel)
	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.top_k", 40)
	viper.SetDefault("llm.top_p", 0.95)
	viper.SetDefault("llm.max_output_tokens", 2048)
	viper.SetDefault("perf.max_concurrent_tests", types.DefaultMaxConcurrentTests)
	viper.SetDefault("perf.batch_pause", types.DefaultBatchPause.String())
	viper.SetDefault("server.addr", types.DefaultServerAddr)
	viper.SetDefault("server.history_size", types.DefaultHistorySize)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("planner.profiles_file", "")
}

// loadConfig decodes the merged configuration and fills credentials that
// are still empty from the secrets directory.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	loadedSecrets.Apply(&cfg)
	return cfg.WithDefaults(), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
