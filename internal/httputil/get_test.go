// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ReturnsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test/0.1", r.Header.Get("User-Agent"))
		assert.Equal(t, "token abc", r.Header.Get("Authorization"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	h := http.Header{}
	h.Set("User-Agent", "test/0.1")
	h.Set("Authorization", "token abc")

	body, err := Get(context.Background(), ts.Client(), ts.URL, h)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(body))
}

func TestGet_NoRetryOnFailure(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), ts.URL+"?key=secret", nil)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.NotContains(t, err.Error(), "secret")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), ts.URL, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "500"))
}

func TestGet_BodyIsBounded(t *testing.T) {
	old := MaxBodyBytes
	MaxBodyBytes = 4
	defer func() { MaxBodyBytes = old }()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("0123456789"))
	}))
	defer ts.Close()

	body, err := Get(context.Background(), ts.Client(), ts.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(body))
}

func TestGet_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Get(ctx, ts.Client(), ts.URL, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGet_TransportErrorRedactsQuery(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	_, err := Get(context.Background(), http.DefaultClient, ts.URL+"/search?key=secret-key&q=wearables", nil)
	require.Error(t, err)

	var uerr *url.Error
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, ts.URL+"/search", uerr.URL)
	assert.NotContains(t, err.Error(), "secret-key")
}
