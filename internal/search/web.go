// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/pdiddy/innovation-engine/internal/httputil"
	"github.com/pdiddy/innovation-engine/internal/metrics"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

// webAPIBase is the Custom Search endpoint. Declared as a var so tests
// can substitute an httptest server.
var webAPIBase = "https://www.googleapis.com/customsearch/v1"

// WebBackend queries the Google Custom Search JSON API. Both APIKey and
// EngineID are required.
type WebBackend struct {
	Client     *http.Client
	APIKey     string
	EngineID   string
	MaxResults int
	UserAgent  string
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
}

// Name returns the backend identifier.
func (b *WebBackend) Name() string { return BackendWeb }

// Search returns up to MaxResults hits for query, or an empty page.
func (b *WebBackend) Search(ctx context.Context, query string) types.WebPage {
	return call(ctx, BackendWeb, query, b.Logger, b.Metrics, b.fetch, types.EmptyWebPage)
}

func (b *WebBackend) fetch(ctx context.Context, query string) (types.WebPage, error) {
	if b.APIKey == "" || b.EngineID == "" {
		return types.WebPage{}, ErrNotConfigured
	}

	n := b.maxResults()
	u := fmt.Sprintf("%s?key=%s&cx=%s&q=%s&num=%d",
		webAPIBase, url.QueryEscape(b.APIKey), url.QueryEscape(b.EngineID), url.QueryEscape(query), n)

	body, err := httputil.Get(ctx, b.Client, u, header(b.UserAgent))
	if err != nil {
		return types.WebPage{}, fmt.Errorf("web search request: %w", err)
	}
	return ParseWebResults(body, n)
}

func (b *WebBackend) maxResults() int {
	if b.MaxResults <= 0 {
		return types.DefaultWebMaxResults
	}
	return b.MaxResults
}

type webResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"items"`
	SearchInformation struct {
		TotalResults json.RawMessage `json:"totalResults"`
		SearchTime   json.RawMessage `json:"searchTime"`
	} `json:"searchInformation"`
}

// ParseWebResults decodes a Custom Search response, keeping at most limit items.
// Missing metadata defaults to "0".
func ParseWebResults(data []byte, limit int) (types.WebPage, error) {
	var resp webResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return types.WebPage{}, fmt.Errorf("parsing web search response: %w", err)
	}

	page := types.EmptyWebPage()
	for i, it := range resp.Items {
		if limit > 0 && i >= limit {
			break
		}
		page.Items = append(page.Items, types.WebResult{Title: it.Title, Snippet: it.Snippet, Link: it.Link})
	}
	if v := rawString(resp.SearchInformation.TotalResults); v != "" {
		page.TotalResults = v
	}
	if v := rawString(resp.SearchInformation.SearchTime); v != "" {
		page.SearchTime = v
	}
	return page, nil
}

// rawString renders a JSON string or number as text. The API returns
// totalResults as a string and searchTime as a number.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}
