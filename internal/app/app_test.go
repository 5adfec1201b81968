package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/trading-admin/config"
)

func TestNew_Memory(t *testing.T) {
	cfg := config.Default()
	cfg.App.Token = "secret"
	a := New(cfg, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NotNil(t, a.Manager)

	t.Run("Health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("AdminRequiresToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/posts/stats", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/posts/stats", nil)
		req.Header.Set("Authorization", "Bearer secret")
		rec = httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total":12`)
	})

	t.Run("RPC", func(t *testing.T) {
		body := `{"jsonrpc":"2.0","id":1,"method":"dashboard.stats","params":{}}`
		req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"result"`)
	})
}
