// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/innovation-engine/internal/metrics"
)

const webFixture = `{
  "items": [
    {"title": "Wearables market", "snippet": "The wearables market hit $4.2B as Fitbit grew.", "link": "https://a.example"},
    {"title": "Two", "snippet": "s2", "link": "https://b.example"},
    {"title": "Three", "snippet": "s3", "link": "https://c.example"},
    {"title": "Four", "snippet": "s4", "link": "https://d.example"},
    {"title": "Five", "snippet": "s5", "link": "https://e.example"},
    {"title": "Six", "snippet": "s6", "link": "https://f.example"}
  ],
  "searchInformation": {"totalResults": "1234", "searchTime": 0.25}
}`

func withWebServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(h)
	old := webAPIBase
	webAPIBase = ts.URL
	t.Cleanup(func() {
		webAPIBase = old
		ts.Close()
	})
	return ts
}

func TestWebSearchRequestParams(t *testing.T) {
	var captured *http.Request
	ts := withWebServer(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, webFixture)
	})

	b := &WebBackend{Client: ts.Client(), APIKey: "k1", EngineID: "cx1", UserAgent: "test/0.1", Logger: zaptest.NewLogger(t)}
	page := b.Search(context.Background(), "smart home energy & AI")

	require.NotNil(t, captured)
	q := captured.URL.Query()
	assert.Equal(t, "k1", q.Get("key"))
	assert.Equal(t, "cx1", q.Get("cx"))
	assert.Equal(t, "smart home energy & AI", q.Get("q"))
	assert.Equal(t, "5", q.Get("num"))
	assert.Equal(t, "test/0.1", captured.Header.Get("User-Agent"))

	require.Len(t, page.Items, 5)
	assert.Equal(t, "Wearables market", page.Items[0].Title)
	assert.Equal(t, "https://a.example", page.Items[0].Link)
	assert.Equal(t, "1234", page.TotalResults)
	assert.Equal(t, "0.25", page.SearchTime)
}

func TestWebSearchCredentialGate(t *testing.T) {
	var calls int32
	ts := withWebServer(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, webFixture)
	})

	m := metrics.New(prometheus.NewRegistry())
	tests := []struct {
		name    string
		key, cx string
	}{
		{"no key", "", "cx"},
		{"no engine id", "k", ""},
		{"neither", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &WebBackend{Client: ts.Client(), APIKey: tt.key, EngineID: tt.cx, Metrics: m}
			page := b.Search(context.Background(), "q")
			assert.Empty(t, page.Items)
			assert.NotNil(t, page.Items)
			assert.Equal(t, "0", page.TotalResults)
		})
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "gate must not touch the network")
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SearchCalls.WithLabelValues(BackendWeb, metrics.OutcomeNotConfigured)))
}

func TestWebSearchFailureDegrades(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"http 500", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"http 403", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusForbidden) }},
		{"bad json", func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "{not json") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := withWebServer(t, tt.handler)
			m := metrics.New(prometheus.NewRegistry())
			b := &WebBackend{Client: ts.Client(), APIKey: "k", EngineID: "cx", Logger: zaptest.NewLogger(t), Metrics: m}

			page := b.Search(context.Background(), "q")
			assert.Equal(t, "0", page.TotalResults)
			assert.Empty(t, page.Items)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchCalls.WithLabelValues(BackendWeb, metrics.OutcomeError)))
		})
	}
}

func TestWebSearchUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()
	old := webAPIBase
	webAPIBase = ts.URL
	defer func() { webAPIBase = old }()

	core, logs := observer.New(zapcore.DebugLevel)
	b := &WebBackend{Client: http.DefaultClient, APIKey: "AIza-unreachable-key", EngineID: "cx", Logger: zap.New(core)}
	page := b.Search(context.Background(), "q")
	assert.Empty(t, page.Items)

	entries := logs.FilterMessage("search failed").All()
	require.Len(t, entries, 1)
	for k, v := range entries[0].ContextMap() {
		assert.NotContains(t, fmt.Sprint(v), "AIza-unreachable-key", "log field %s carries the API key", k)
	}
}

func TestParseWebResults(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		limit     int
		wantItems int
		wantTotal string
		wantTime  string
	}{
		{"fixture capped at 5", webFixture, 5, 5, "1234", "0.25"},
		{"no items key", `{"searchInformation": {"totalResults": "0"}}`, 5, 0, "0", "0"},
		{"no metadata", `{"items": [{"title": "a"}]}`, 5, 1, "0", "0"},
		{"empty object", `{}`, 5, 0, "0", "0"},
		{"numeric total", `{"searchInformation": {"totalResults": 17, "searchTime": "0.1"}}`, 5, 0, "17", "0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := ParseWebResults([]byte(tt.data), tt.limit)
			require.NoError(t, err)
			assert.Len(t, page.Items, tt.wantItems)
			assert.NotNil(t, page.Items)
			assert.Equal(t, tt.wantTotal, page.TotalResults)
			assert.Equal(t, tt.wantTime, page.SearchTime)
		})
	}

	_, err := ParseWebResults([]byte("nope"), 5)
	assert.Error(t, err)
}
