package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/matzehuels/graphlayers/pkg/cache"
	"github.com/matzehuels/graphlayers/pkg/errors"
	"github.com/matzehuels/graphlayers/pkg/layers"
	"github.com/matzehuels/graphlayers/pkg/observability"
	"github.com/matzehuels/graphlayers/pkg/pipeline"
)

const sample = "1 2 3\n2 4\n3 4\n4 5\n9 10\n"

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	srv := httptest.NewServer(New(pipeline.NewRunner(c, nil), nil, opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, query, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/v1/layers"+query, "text/plain", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}

func TestLayers(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "?start=1", sample)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body LayersResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Start)
	assert.Equal(t, 7, body.VertexCount)
	assert.Equal(t, 6, body.EdgeCount)
	assert.Equal(t, 4, body.LayerCount)
	assert.Equal(t, []layers.Layer{
		{Index: 0, Count: 1, Vertices: []int{1}},
		{Index: 1, Count: 2, Vertices: []int{2, 3}},
		{Index: 2, Count: 1, Vertices: []int{4}},
		{Index: 3, Count: 1, Vertices: []int{5}},
	}, body.Layers)
	assert.False(t, body.CacheHit)
	assert.Equal(t, resp.Header.Get(RequestIDHeader), body.RequestID)

	again := post(t, srv, "?start=1", sample)
	var second LayersResponse
	require.NoError(t, json.NewDecoder(again.Body).Decode(&second))
	assert.True(t, second.CacheHit)
}

func TestLayersTextFormat(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "?start=9&format=text&locale=ru", sample)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))

	var sb bytes.Buffer
	_, err := sb.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "Общее количество слоёв: 2")
}

func TestLayersDOTFormat(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "?start=1&format=dot", sample)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sb bytes.Buffer
	_, err := sb.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), `"4" -- "5";`)
	assert.NotContains(t, sb.String(), `"9"`)
}

func TestLayersErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		body   string
		status int
		code   errors.Code
	}{
		{"missing start", "", sample, http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"non-integer start", "?start=abc", sample, http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"out of range start", "?start=99999999999", sample, http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"bad format", "?start=1&format=yaml", sample, http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"bad locale", "?start=1&format=text&locale=fr", sample, http.StatusBadRequest, errors.ErrCodeInvalidArgument},
		{"invalid graph", "?start=1", "1 2\nfoo\n", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown start", "?start=42", sample, http.StatusNotFound, errors.ErrCodeUnknownStartVertex},
		{"empty graph", "?start=1", "", http.StatusNotFound, errors.ErrCodeUnknownStartVertex},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, tt.query, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)

			body := decodeError(t, resp)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestLayersBodyTooLarge(t *testing.T) {
	srv := newTestServer(t, WithMaxBodyBytes(8))

	resp := post(t, srv, "?start=1", sample)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestRequestIDIsReused(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(errors.ErrCodeInvalidFormat))
	assert.Equal(t, http.StatusNotFound, statusFor(errors.ErrCodeUnknownStartVertex))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.ErrCodeOutputAccess))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.ErrCodeInternal))
}

func TestRequestTracing(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	hooks := observability.NewTracingHooks(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	h := New(pipeline.NewRunner(c, nil), nil).Handler()

	for range 2 {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/layers?start=1", strings.NewReader(sample)))
		require.Equal(t, http.StatusOK, w.Code)
	}

	var requests []sdktrace.ReadOnlySpan
	children := map[string][]string{}
	for _, span := range rec.Ended() {
		if span.Name() == "http.request" {
			requests = append(requests, span)
			continue
		}
		parent := span.Parent().SpanID().String()
		children[parent] = append(children[parent], span.Name())
	}
	require.Len(t, requests, 2)

	var events [][]string
	for _, span := range requests {
		var names []string
		for _, e := range span.Events() {
			names = append(names, e.Name)
		}
		events = append(events, names)
		assert.Contains(t, children[span.SpanContext().SpanID().String()], "graph.load")
	}
	assert.Equal(t, [][]string{{"cache.miss", "cache.set"}, {"cache.hit"}}, events)
}
