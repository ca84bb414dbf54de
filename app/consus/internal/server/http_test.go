package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/consus/app/consus/internal/service"
	"github.com/iWorld-y/consus/app/consus/pkg/ai"
	"github.com/iWorld-y/consus/app/consus/pkg/config"
	"github.com/iWorld-y/consus/app/consus/pkg/engine"
	"github.com/iWorld-y/consus/app/consus/pkg/metrics"
	"github.com/iWorld-y/consus/app/consus/pkg/model"
	"github.com/iWorld-y/consus/app/consus/pkg/reqid"
	"github.com/iWorld-y/consus/app/consus/pkg/search"
)

// mockSearcher 按地区代码返回预置结果
type mockSearcher struct {
	mu      sync.Mutex
	calls   []search.Request
	results map[string]*search.Response
	errs    map[string]error
}

func (m *mockSearcher) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, *req)
	m.mu.Unlock()
	if err := m.errs[req.Locale]; err != nil {
		return nil, err
	}
	return m.results[req.Locale], nil
}

func (m *mockSearcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockAnswerer 模拟 AI 问答
type mockAnswerer struct {
	calls  int
	answer string
	err    error
	panic  bool
}

func (m *mockAnswerer) Answer(ctx context.Context, query string) (string, error) {
	m.calls++
	if m.panic {
		panic("boom")
	}
	return m.answer, m.err
}

type testServer struct {
	srv      nethttp.Handler
	searcher *mockSearcher
	answerer *mockAnswerer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := config.Default()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	searcher := &mockSearcher{results: map[string]*search.Response{}, errs: map[string]error{}}
	answerer := &mockAnswerer{}
	svc := service.NewConsusService(
		engine.NewEngine(cfg, searcher, m),
		ai.NewBridge(answerer, m),
		m,
		log.DefaultLogger,
	)
	return &testServer{
		srv:      NewHTTPServer(cfg, svc, reg, log.DefaultLogger),
		searcher: searcher,
		answerer: answerer,
	}
}

func (ts *testServer) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	ts.srv.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, target, nil))
	return rec
}

func jsonDecode(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

func TestSearchRequiresQuery(t *testing.T) {
	ts := newTestServer(t)

	for _, target := range []string{"/api/search", "/api/search?q=", "/api/search?kl=de&type=news"} {
		rec := ts.get(t, target)
		assert.Equal(t, nethttp.StatusBadRequest, rec.Code, target)
		assert.JSONEq(t, `{"error":"You must enter a query."}`, rec.Body.String(), target)
	}
	assert.Equal(t, 0, ts.searcher.callCount())
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t)
	ts.searcher.results["de-de"] = &search.Response{
		Web: []model.Entry{
			{"title": "Go", "link": "https://go.dev", "snippet": "de"},
			{"title": "Tour", "link": "https://go.dev/tour"},
		},
	}
	ts.searcher.results["tr-tr"] = &search.Response{
		Web:  []model.Entry{{"title": "Go TR", "link": "https://go.dev", "snippet": "tr"}},
		News: []model.Entry{{"title": "Release", "url": "https://news.example/go"}},
	}

	rec := ts.get(t, "/api/search?q=golang&kl=DE,%20tr&type=everything")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var resp model.SearchResponse
	require.NoError(t, jsonDecode(rec.Body, &resp))
	assert.Equal(t, "golang", resp.Query)
	assert.Equal(t, "everything", resp.Type)
	assert.Regexp(t, `^\d+(\.\d+)?s$`, resp.Time)
	assert.Equal(t, []model.Entry{
		{"title": "Go TR", "link": "https://go.dev", "snippet": "tr"},
		{"title": "Tour", "link": "https://go.dev/tour"},
		{"title": "Release", "url": "https://news.example/go"},
	}, resp.Results)

	require.Equal(t, 2, ts.searcher.callCount())
	for _, call := range ts.searcher.calls {
		assert.Equal(t, "golang", call.Query)
		assert.Equal(t, "everything", call.Type)
	}
}

func TestSearchDefaults(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get(t, "/api/search?q=go")
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, jsonDecode(rec.Body, &body))
	assert.Equal(t, "web", body["type"])
	assert.Equal(t, []any{}, body["results"])

	require.Len(t, ts.searcher.calls, 1)
	assert.Equal(t, "tr-tr", ts.searcher.calls[0].Locale)
}

func TestSearchProviderFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.searcher.results["tr-tr"] = &search.Response{Web: []model.Entry{{"link": "https://a.example"}}}
	ts.searcher.errs["de-de"] = errors.New("dial tcp: connection refused")

	rec := ts.get(t, "/api/search?q=go&kl=tr,de")
	assert.Equal(t, nethttp.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Search error"}`, rec.Body.String())
}

func TestAIRequiresQuery(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get(t, "/api/ai?q=")
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Query required"}`, rec.Body.String())
	assert.Equal(t, 0, ts.answerer.calls)
}

func TestAI(t *testing.T) {
	ts := newTestServer(t)
	ts.answerer.answer = "Paris"

	rec := ts.get(t, "/api/ai?q=capital%20of%20France")
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var resp model.AIResponse
	require.NoError(t, jsonDecode(rec.Body, &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "capital of France", resp.Query)
	assert.Equal(t, "Paris", resp.Answer)
	assert.Regexp(t, `^\d+(\.\d+)?s$`, resp.Time)
}

func TestAIFailureLeaksNothing(t *testing.T) {
	ts := newTestServer(t)
	ts.answerer.err = errors.New("secret upstream detail")

	rec := ts.get(t, "/api/ai?q=hi")
	assert.Equal(t, nethttp.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"AI error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestAIPanicRecovered(t *testing.T) {
	ts := newTestServer(t)
	ts.answerer.panic = true

	rec := ts.get(t, "/api/ai?q=hi")
	assert.Equal(t, nethttp.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"AI error"}`, rec.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get(t, "/api/search?q=go")
	assert.NotEmpty(t, rec.Header().Get(reqid.Header))

	req := httptest.NewRequest(nethttp.MethodGet, "/api/ai", nil)
	req.Header.Set(reqid.Header, "fixed-id")
	rec = httptest.NewRecorder()
	ts.srv.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get(reqid.Header))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.get(t, "/api/search?q=go")
	ts.get(t, "/api/ai")

	rec := ts.get(t, "/metrics")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `consus_http_requests_total{code="200",endpoint="/api/search"} 1`)
	assert.Contains(t, string(body), `consus_http_requests_total{code="400",endpoint="/api/ai"} 1`)
	assert.Contains(t, string(body), `consus_provider_requests_total{locale="tr-tr",outcome="success",provider="duckduckgo"} 1`)
}
