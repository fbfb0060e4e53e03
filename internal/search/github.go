// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/pdiddy/innovation-engine/internal/httputil"
	"github.com/pdiddy/innovation-engine/internal/metrics"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

// repoAPIBase is the GitHub repository search endpoint. Declared as a var so
// tests can substitute an httptest server.
var repoAPIBase = "https://api.github.com/search/repositories"

// RepoBackend queries GitHub repository search, ranked by stars.
type RepoBackend struct {
	Client     *http.Client
	Token      string
	MaxResults int
	UserAgent  string
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
}

// Name returns the backend identifier.
func (b *RepoBackend) Name() string { return BackendRepo }

// Search returns up to MaxResults repositories for query, or an empty page.
func (b *RepoBackend) Search(ctx context.Context, query string) types.RepoPage {
	return call(ctx, BackendRepo, query, b.Logger, b.Metrics, b.fetch, types.EmptyRepoPage)
}

func (b *RepoBackend) fetch(ctx context.Context, query string) (types.RepoPage, error) {
	if b.Token == "" {
		return types.RepoPage{}, ErrNotConfigured
	}

	n := b.MaxResults
	if n <= 0 {
		n = types.DefaultRepoMaxResults
	}
	u := fmt.Sprintf("%s?q=%s&sort=stars&order=desc&per_page=%d", repoAPIBase, url.QueryEscape(query), n)

	h := header(b.UserAgent)
	h.Set("Authorization", "token "+b.Token)
	h.Set("Accept", "application/vnd.github.v3+json")

	body, err := httputil.Get(ctx, b.Client, u, h)
	if err != nil {
		return types.RepoPage{}, fmt.Errorf("repository search request: %w", err)
	}
	return ParseRepoResults(body)
}

type repoResponse struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		Name            string   `json:"name"`
		FullName        string   `json:"full_name"`
		Description     *string  `json:"description"`
		StargazersCount int      `json:"stargazers_count"`
		Language        *string  `json:"language"`
		HTMLURL         string   `json:"html_url"`
		Topics          []string `json:"topics"`
	} `json:"items"`
}

// ParseRepoResults decodes a repository search response. Null descriptions
// and languages become "" and missing topics become an empty list.
func ParseRepoResults(data []byte) (types.RepoPage, error) {
	var resp repoResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return types.RepoPage{}, fmt.Errorf("parsing repository search response: %w", err)
	}

	page := types.EmptyRepoPage()
	page.TotalCount = resp.TotalCount
	for _, it := range resp.Items {
		r := types.RepoResult{
			Name:     it.Name,
			FullName: it.FullName,
			Stars:    it.StargazersCount,
			URL:      it.HTMLURL,
			Topics:   it.Topics,
		}
		if it.Description != nil {
			r.Description = *it.Description
		}
		if it.Language != nil {
			r.Language = *it.Language
		}
		if r.Topics == nil {
			r.Topics = []string{}
		}
		page.Repositories = append(page.Repositories, r)
	}
	return page, nil
}
