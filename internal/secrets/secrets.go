// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API credentials from a directory of plain-text files.
// Each file holds one secret: the filename is the key name and the trimmed
// file contents are the value. Only the recognised key files are read:
// gemini-api-key, google-search-api-key, google-search-engine-id and
// github-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/innovation-engine/pkg/types"
)

// Key file names.
const (
	GeminiAPIKey         = "gemini-api-key"
	GoogleSearchAPIKey   = "google-search-api-key"
	GoogleSearchEngineID = "google-search-engine-id"
	GitHubToken          = "github-token"
)

// targets maps each key file to the credential it fills.
var targets = map[string]func(*types.Config) *string{
	GeminiAPIKey:         func(c *types.Config) *string { return &c.LLM.APIKey },
	GoogleSearchAPIKey:   func(c *types.Config) *string { return &c.Search.GoogleAPIKey },
	GoogleSearchEngineID: func(c *types.Config) *string { return &c.Search.GoogleEngineID },
	GitHubToken:          func(c *types.Config) *string { return &c.Search.GitHubToken },
}

// Set holds loaded secrets keyed by file name.
type Set map[string]string

// Load reads the recognised key files in dir. A missing directory or key file
// is not an error. An unreadable key file produces a warning on stderr and is
// skipped.
func Load(dir string) (Set, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := Set{}
	for name := range targets {
		data, err := os.ReadFile(filepath.Join(dir, name))
		switch {
		case os.IsNotExist(err):
			continue
		case err != nil:
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			s[name] = v
		}
	}
	return s, nil
}

// Names returns the loaded key names, sorted. Values are never exposed.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Apply copies the secrets into cfg. Values already set on cfg (from flags,
// environment or the config file) take precedence over secret files.
func (s Set) Apply(cfg *types.Config) {
	for name, target := range targets {
		if dst := target(cfg); *dst == "" {
			*dst = s[name]
		}
	}
}
