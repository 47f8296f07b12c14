// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/digest-engine/internal/store"
	"github.com/pdiddy/digest-engine/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRunner struct {
	digest *types.Digest
	err    error
	calls  int
}

func (r *stubRunner) Run(_ context.Context) (*types.Digest, error) {
	r.calls++
	return r.digest, r.err
}

func newTestServer(t *testing.T, runner Runner) (*Server, *store.Store) {
	t.Helper()
	st, err := store.Open(types.StoreConfig{Path: filepath.Join(t.TempDir(), "digest.db")})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(st, runner, nil), st
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := doJSON(t, srv.Router(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSourceEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	r := srv.Router()

	w := doJSON(t, r, http.MethodPost, "/sources",
		`{"name":"hn","type":"rss","url":"https://news.ycombinator.com/rss","config":{"max_items":20}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created types.Source
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.True(t, created.Enabled, "enabled defaults to true")
	assert.Equal(t, 20, created.Config.MaxItems)

	// Unknown type is rejected at binding time.
	w = doJSON(t, r, http.MethodPost, "/sources",
		`{"name":"x","type":"carrier-pigeon","url":"https://x.test"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/sources/%d", created.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/sources/%d", created.ID),
		`{"enabled":false,"category":"tech"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated types.Source
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.False(t, updated.Enabled)
	assert.Equal(t, "tech", updated.Category)
	assert.Equal(t, "hn", updated.Name, "unspecified fields are untouched")

	w = doJSON(t, r, http.MethodGet, "/sources?enabled=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/sources/%d", created.ID), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/sources/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/sources/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTopicEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	r := srv.Router()

	w := doJSON(t, r, http.MethodPost, "/topics",
		`{"name":"AI","keywords":["llm","gpu"],"priority":60}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created types.Topic
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, []string{"llm", "gpu"}, created.Keywords)
	assert.Equal(t, 10, created.MaxArticles)

	// Priority outside 0-100 fails validation.
	w = doJSON(t, r, http.MethodPost, "/topics", `{"name":"bad","priority":500}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/topics/%d", created.ID),
		`{"keywords":["llm"],"enabled":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated types.Topic
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, []string{"llm"}, updated.Keywords)
	assert.False(t, updated.Enabled)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/topics/%d", created.ID), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/topics/%d", created.ID), `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBlocklistEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	r := srv.Router()

	w := doJSON(t, r, http.MethodPost, "/blocklist", `{"keyword":"gossip"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created types.BlockedKeyword
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "gossip", created.Keyword)

	// Duplicates are client errors.
	w = doJSON(t, r, http.MethodPost, "/blocklist", `{"keyword":"gossip"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/blocklist", "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed []types.BlockedKeyword
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/blocklist/%d", created.ID), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/blocklist/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingsEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	r := srv.Router()

	w := doJSON(t, r, http.MethodPut, "/settings/filter_scope", `{"value":"full_text"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/settings/filter_scope", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"full_text"`)

	w = doJSON(t, r, http.MethodPut, "/settings/filter_scope", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDigestRun(t *testing.T) {
	runner := &stubRunner{digest: &types.Digest{
		Summary:      "all quiet",
		GeneratedAt:  time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC),
		ArticleCount: 5,
	}}
	srv, _ := newTestServer(t, runner)
	r := srv.Router()

	w := doJSON(t, r, http.MethodPost, "/digest/run", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, runner.calls)
	assert.Contains(t, w.Body.String(), "all quiet")
}

func TestDigestRunUnconfigured(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := doJSON(t, srv.Router(), http.MethodPost, "/digest/run", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDigestLogsEndpoint(t *testing.T) {
	srv, st := newTestServer(t, nil)
	r := srv.Router()

	_, err := st.AppendDigestLog(types.DigestLog{Status: types.StatusSent, ArticleCount: 9})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/digest/logs", "")
	require.Equal(t, http.StatusOK, w.Code)
	var logs []types.DigestLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, 9, logs[0].ArticleCount)

	w = doJSON(t, r, http.MethodGet, "/digest/logs?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
