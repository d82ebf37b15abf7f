package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phishguard/outlook-threat-reporter/internal/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, zap.NewNop()), srv
}

func TestGet_Success(t *testing.T) {
	var gotAuth, gotPath, gotQuery, gotRequestID string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotRequestID = r.Header.Get("client-request-id")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"u1"}`))
	})

	raw, err := client.Get(context.Background(), "tok", "/me", "?$select=id")
	require.NoError(t, err)

	var profile struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &profile))
	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "/me", gotPath)
	assert.Equal(t, "$select=id", gotQuery)
	assert.NotEmpty(t, gotRequestID)
}

func TestGet_RejectsBadPathAndQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the server")
	})

	_, err := client.Get(context.Background(), "tok", "me", "")
	assert.Error(t, err)

	_, err = client.Get(context.Background(), "tok", "/me", "$select=id")
	assert.Error(t, err)
}

func TestPost_SerializesBody(t *testing.T) {
	var gotBody map[string]any
	var gotContentType string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status":"accepted"}`))
	})

	body := map[string]string{"category": "spam"}
	_, err := client.Post(context.Background(), "tok", "/security/threatSubmission/emailThreats", body)
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "spam", gotBody["category"])
}

func TestNonSuccess_StructuredError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":"accessDenied","message":"Forbidden"}}`))
	})

	_, err := client.Post(context.Background(), "tok", "/security/threatSubmission/emailThreats", map[string]string{})
	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Forbidden", apiErr.Message)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "Forbidden")
}

func TestNonSuccess_RawBodyFallback(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	})

	_, err := client.Get(context.Background(), "tok", "/me", "")
	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
}

func TestNonSuccess_ErrorJSONWithoutMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"retryAfter":30}`))
	})

	_, err := client.Get(context.Background(), "tok", "/me", "")
	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, `{"retryAfter":30}`, apiErr.Message)
}
