package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the client without a
	// timeout so a slow backend only stalls its own call.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "innovation-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds credentials and limits for the three search backends.
// An empty credential disables the corresponding backend without error.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// GoogleAPIKey and GoogleEngineID configure the web-search backend.
	GoogleAPIKey   string `json:"-" yaml:"google_api_key,omitempty" mapstructure:"google_api_key"`
	GoogleEngineID string `json:"google_engine_id" yaml:"google_engine_id" mapstructure:"google_engine_id"`

	// GitHubToken configures the repository-search backend.
	GitHubToken string `json:"-" yaml:"github_token,omitempty" mapstructure:"github_token"`

	// WebMaxResults is the number of web hits kept per query (default 5).
	WebMaxResults int `json:"web_max_results" yaml:"web_max_results" mapstructure:"web_max_results"`

	// RepoMaxResults is the number of repositories requested per query (default 10).
	RepoMaxResults int `json:"repo_max_results" yaml:"repo_max_results" mapstructure:"repo_max_results"`

	// PaperMaxResults is the number of feed entries requested per query (default 10).
	PaperMaxResults int `json:"paper_max_results" yaml:"paper_max_results" mapstructure:"paper_max_results"`
}

// LLMConfig holds settings for the generative model collaborator.
type LLMConfig struct {
	// Model is the model identifier (e.g. "gemini-1.5-pro").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the model API.
	APIKey string `json:"-" yaml:"api_key,omitempty" mapstructure:"api_key"`

	Temperature     float32 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`
	TopK            float32 `json:"top_k" yaml:"top_k" mapstructure:"top_k"`
	TopP            float32 `json:"top_p" yaml:"top_p" mapstructure:"top_p"`
	MaxOutputTokens int32   `json:"max_output_tokens" yaml:"max_output_tokens" mapstructure:"max_output_tokens"`
}

// PerfConfig holds settings for batched performance tests.
type PerfConfig struct {
	// MaxConcurrentTests bounds the number of in-flight model calls (default 3).
	MaxConcurrentTests int `json:"max_concurrent_tests" yaml:"max_concurrent_tests" mapstructure:"max_concurrent_tests"`

	// BatchPause is the delay between consecutive batches (default 1s).
	BatchPause time.Duration `json:"batch_pause" yaml:"batch_pause" mapstructure:"batch_pause"`
}

// ServerConfig holds settings for the HTTP boundary.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// HistorySize caps the in-memory evaluation history (default 100).
	HistorySize int `json:"history_size" yaml:"history_size" mapstructure:"history_size"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// PlannerConfig points at an optional override of the built-in profile table.
type PlannerConfig struct {
	ProfilesFile string `json:"profiles_file" yaml:"profiles_file" mapstructure:"profiles_file"`
}

// Config groups all settings. It is read once at startup and treated as
// immutable afterwards.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	LLM     LLMConfig     `json:"llm" yaml:"llm" mapstructure:"llm"`
	Perf    PerfConfig    `json:"perf" yaml:"perf" mapstructure:"perf"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Planner PlannerConfig `json:"planner" yaml:"planner" mapstructure:"planner"`
}

// Defaults used when a setting is zero.
const (
	DefaultModel              = "gemini-1.5-pro"
	DefaultUserAgent          = "innovation-engine/0.1"
	DefaultWebMaxResults      = 5
	DefaultRepoMaxResults     = 10
	DefaultPaperMaxResults    = 10
	DefaultMaxConcurrentTests = 3
	DefaultBatchPause         = time.Second
	DefaultServerAddr         = ":8080"
	DefaultHistorySize        = 100
)

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.Search.UserAgent == "" {
		c.Search.UserAgent = DefaultUserAgent
	}
	if c.Search.WebMaxResults <= 0 {
		c.Search.WebMaxResults = DefaultWebMaxResults
	}
	if c.Search.RepoMaxResults <= 0 {
		c.Search.RepoMaxResults = DefaultRepoMaxResults
	}
	if c.Search.PaperMaxResults <= 0 {
		c.Search.PaperMaxResults = DefaultPaperMaxResults
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.TopK == 0 {
		c.LLM.TopK = 40
	}
	if c.LLM.TopP == 0 {
		c.LLM.TopP = 0.95
	}
	if c.LLM.MaxOutputTokens == 0 {
		c.LLM.MaxOutputTokens = 2048
	}
	if c.Perf.MaxConcurrentTests <= 0 {
		c.Perf.MaxConcurrentTests = DefaultMaxConcurrentTests
	}
	// A negative pause disables pausing; zero means "not set".
	if c.Perf.BatchPause == 0 {
		c.Perf.BatchPause = DefaultBatchPause
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.HistorySize <= 0 {
		c.Server.HistorySize = DefaultHistorySize
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	return c
}
