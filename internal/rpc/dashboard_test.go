package rpc

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/trading-admin/internal/sandbox"
	"github.com/daniilsolovey/trading-admin/internal/sandbox/memory"
)

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func call(t *testing.T, h http.Handler, method string, params any) rpcResponse {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/rpc", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp rpcResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func newTestRPC(t *testing.T) http.Handler {
	t.Helper()

	store := memory.New()
	store.Seed(time.Now().UTC())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, sandbox.NewManager(store.Sandbox(), sandbox.NewHub(), logger))
}

func TestDashboardService(t *testing.T) {
	h := newTestRPC(t)

	t.Run("Stats", func(t *testing.T) {
		resp := call(t, h, "dashboard.stats", map[string]any{})
		require.Nil(t, resp.Error)

		var stats DashboardStats
		require.NoError(t, json.Unmarshal(resp.Result, &stats))
		assert.Equal(t, 12, stats.Posts.Total)
		assert.Equal(t, 5, stats.Posts.Published)
		assert.Equal(t, 10, stats.Subscribers)
		assert.Equal(t, 6, stats.ActiveSubscribers)
		assert.Equal(t, 5, stats.Videos)
		assert.Equal(t, 2, stats.Indicators)
		require.Len(t, stats.LiveRooms, 1)
		assert.Equal(t, "day-trading-room", stats.LiveRooms[0].Slug)
	})

	t.Run("Posts", func(t *testing.T) {
		status, pageSize := "published", 2
		resp := call(t, h, "dashboard.posts", map[string]any{
			"filter": PostFilter{Status: &status, PageSize: &pageSize},
		})
		require.Nil(t, resp.Error)

		var page PostPage
		require.NoError(t, json.Unmarshal(resp.Result, &page))
		assert.Len(t, page.Posts, 2)
		assert.Equal(t, 5, page.Total)
		assert.Equal(t, 3, page.TotalPages)
		for _, p := range page.Posts {
			assert.Equal(t, "published", p.Status)
		}
	})

	t.Run("PostsPositionalParams", func(t *testing.T) {
		search := "nvda"
		resp := call(t, h, "dashboard.posts", []any{PostFilter{Search: &search}})
		require.Nil(t, resp.Error)

		var page PostPage
		require.NoError(t, json.Unmarshal(resp.Result, &page))
		require.Len(t, page.Posts, 1)
		assert.Equal(t, "nvda-weekly-setup", page.Posts[0].Slug)
	})

	t.Run("Post", func(t *testing.T) {
		resp := call(t, h, "dashboard.post", map[string]any{"id": 1})
		require.Nil(t, resp.Error)

		var post Post
		require.NoError(t, json.Unmarshal(resp.Result, &post))
		assert.Equal(t, int64(1), post.PostID)
		assert.NotEmpty(t, post.Title)
	})

	t.Run("PostNotFound", func(t *testing.T) {
		resp := call(t, h, "dashboard.post", map[string]any{"id": 999})
		require.NotNil(t, resp.Error)
		assert.Equal(t, 404, resp.Error.Code)
	})

	t.Run("PostInvalidID", func(t *testing.T) {
		resp := call(t, h, "dashboard.post", map[string]any{"id": 0})
		require.NotNil(t, resp.Error)
		assert.Equal(t, 400, resp.Error.Code)
	})

	t.Run("UnknownMethod", func(t *testing.T) {
		resp := call(t, h, "dashboard.nope", nil)
		require.NotNil(t, resp.Error)
	})
}
