package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phishguard/outlook-threat-reporter/internal/config"
	"github.com/phishguard/outlook-threat-reporter/internal/core"
	"github.com/phishguard/outlook-threat-reporter/internal/factory"
)

type stubGraph struct {
	postErr   error
	postCalls int
}

func (g *stubGraph) Get(_ context.Context, _, path, _ string) (json.RawMessage, error) {
	if path == "/me" {
		return json.RawMessage(`{"id":"u1"}`), nil
	}
	return json.RawMessage(`{}`), nil
}

func (g *stubGraph) Post(_ context.Context, _, _ string, _ any) (json.RawMessage, error) {
	g.postCalls++
	if g.postErr != nil {
		return nil, g.postErr
	}
	return json.RawMessage(`{}`), nil
}

func newTestServer(t *testing.T, graph core.GraphAPI) *Server {
	t.Helper()

	v := config.NewEmptyViper()
	v.Set("auth.flow", "static")
	v.Set("auth.static_token", "tok")
	cfg := config.NewFromViper(v)

	logger := zap.NewNop()
	tokens, err := factory.NewTokenFactory(cfg, logger)
	require.NoError(t, err)

	service := core.NewThreatReportService(graph, logger, cfg.GetGraph().BaseURL)
	handler := core.NewCommandHandler(service, logger)

	return NewServer(handler, tokens, logger, cfg)
}

func postReport(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/commands/report", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer sso-assertion")
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func TestReportAction_Success(t *testing.T) {
	graph := &stubGraph{}
	srv := newTestServer(t, graph)

	rec := postReport(t, srv, `{"options":{"1":true},"itemId":"AAA=","userEmail":"user@contoso.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp reportActionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.AllowEvent)
	assert.Equal(t, 1, graph.postCalls)
}

func TestReportAction_SubmissionFailureBlocks(t *testing.T) {
	graph := &stubGraph{postErr: &core.APIError{StatusCode: 403, Message: "Forbidden"}}
	srv := newTestServer(t, graph)

	rec := postReport(t, srv, `{"options":{"0":true},"itemId":"AAA=","userEmail":"user@contoso.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp reportActionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.AllowEvent)
}

func TestReportAction_MissingSelectionBlocks(t *testing.T) {
	graph := &stubGraph{}
	srv := newTestServer(t, graph)

	rec := postReport(t, srv, `{"options":{"0":true},"userEmail":"user@contoso.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp reportActionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.AllowEvent)
	assert.Equal(t, 0, graph.postCalls)
}

func TestReportAction_MalformedBody(t *testing.T) {
	srv := newTestServer(t, &stubGraph{})

	rec := postReport(t, srv, `{"options":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &stubGraph{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestParseOptions(t *testing.T) {
	options := parseOptions(map[string]bool{"0": true, "2": false, "x": true})
	assert.Equal(t, map[int]bool{0: true, 2: false}, options)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", bearerToken(req))

	req.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", bearerToken(req))
}
