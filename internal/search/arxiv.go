// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/innovation-engine/internal/httputil"
	"github.com/pdiddy/innovation-engine/internal/metrics"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// PaperBackend queries the public arXiv Atom feed. It needs no credential.
type PaperBackend struct {
	Client     *http.Client
	MaxResults int
	UserAgent  string
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
}

// Name returns the backend identifier.
func (b *PaperBackend) Name() string { return BackendPaper }

// Search returns up to MaxResults feed entries for query, or an empty feed.
func (b *PaperBackend) Search(ctx context.Context, query string) types.PaperFeed {
	return call(ctx, BackendPaper, query, b.Logger, b.Metrics, b.fetch, types.EmptyPaperFeed)
}

func (b *PaperBackend) fetch(ctx context.Context, query string) (types.PaperFeed, error) {
	n := b.MaxResults
	if n <= 0 {
		n = types.DefaultPaperMaxResults
	}
	u := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=relevance&sortOrder=descending",
		arxivAPIBase, url.QueryEscape(query), n)

	body, err := httputil.Get(ctx, b.Client, u, header(b.UserAgent))
	if err != nil {
		return types.PaperFeed{}, fmt.Errorf("arXiv request: %w", err)
	}
	return ParsePaperFeed(string(body)), nil
}

// The feed is treated as tagged text rather than XML so that truncated or
// slightly malformed payloads still yield the entries that are complete.
var (
	entryRe     = regexp.MustCompile(`(?s)<entry>.*?</entry>`)
	titleRe     = regexp.MustCompile(`<title>([^<]*)</title>`)
	summaryRe   = regexp.MustCompile(`<summary>([^<]*)</summary>`)
	authorRe    = regexp.MustCompile(`(?s)<author>.*?<name>([^<]*)</name>.*?</author>`)
	publishedRe = regexp.MustCompile(`<published>([^<]*)</published>`)
	idRe        = regexp.MustCompile(`<id>([^<]*)</id>`)
)

// ParsePaperFeed extracts every complete <entry> block from an Atom feed.
// Missing tags default to "" or an empty author list and runs of whitespace
// inside a value collapse to one space. It never fails.
func ParsePaperFeed(data string) types.PaperFeed {
	feed := types.EmptyPaperFeed()
	for _, entry := range entryRe.FindAllString(data, -1) {
		p := types.PaperResult{
			Title:     firstGroup(titleRe, entry),
			Summary:   firstGroup(summaryRe, entry),
			Authors:   []string{},
			Published: firstGroup(publishedRe, entry),
			Link:      firstGroup(idRe, entry),
		}
		for _, m := range authorRe.FindAllStringSubmatch(entry, -1) {
			p.Authors = append(p.Authors, strings.Join(strings.Fields(m[1]), " "))
		}
		feed.Papers = append(feed.Papers, p)
	}
	return feed
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return strings.Join(strings.Fields(m[1]), " ")
}
