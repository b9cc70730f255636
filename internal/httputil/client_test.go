// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/template-scraper/pkg/types"
)

var testCfg = types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "template-scraper-test"}

func TestGet_SetsUserAgent(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	resp, err := Get(context.Background(), ts.Client(), ts.URL, testCfg)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "template-scraper-test", gotUA)
}

func TestPostJSON_SendsBody(t *testing.T) {
	var got []map[string]any
	var contentType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	body := []map[string]any{{"operationName": "op"}}
	resp, err := PostJSON(context.Background(), ts.Client(), ts.URL, body, testCfg)
	require.NoError(t, err)
	Drain(resp)

	assert.Equal(t, "application/json", contentType)
	require.Len(t, got, 1)
	assert.Equal(t, "op", got[0]["operationName"])
}

func TestGet_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Get(ctx, ts.Client(), ts.URL, testCfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestStatusError(t *testing.T) {
	var err error = &StatusError{Method: http.MethodPost, URL: "http://example.com/api", StatusCode: 502}
	assert.Equal(t, "POST http://example.com/api: HTTP 502", err.Error())

	wrapped := errors.Join(errors.New("page 1"), err)
	var se *StatusError
	require.ErrorAs(t, wrapped, &se)
	assert.Equal(t, 502, se.StatusCode)
}

func TestIsSuccess(t *testing.T) {
	assert.True(t, IsSuccess(200))
	assert.True(t, IsSuccess(204))
	assert.False(t, IsSuccess(199))
	assert.False(t, IsSuccess(301))
	assert.False(t, IsSuccess(404))
}

func TestNewClient(t *testing.T) {
	c := NewClient(testCfg)
	assert.Equal(t, 5*time.Second, c.Timeout)
}
