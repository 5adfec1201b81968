package adminapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, "secret", 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c
}

func TestPostFilterQuery(t *testing.T) {
	tests := []struct {
		name     string
		filter   PostFilter
		expected string
	}{
		{
			name:     "defaults only",
			expected: "sort=created_at&order=desc",
		},
		{
			name:     "status and search",
			filter:   PostFilter{Status: domain.StatusDraft, Search: "NVDA"},
			expected: "status=draft&search=NVDA&sort=created_at&order=desc",
		},
		{
			name:     "blank search omitted",
			filter:   PostFilter{Search: "   ", Page: 1},
			expected: "sort=created_at&order=desc",
		},
		{
			name: "everything",
			filter: PostFilter{
				Status: domain.StatusPublished, Category: "options", Search: "spy puts",
				DateFrom: "2024-02-01", DateTo: "2024-01-01", Sort: "title", Order: "asc",
				Page: 3, PerPage: 25,
			},
			expected: "status=published&category=options&search=spy+puts&date_from=2024-02-01&date_to=2024-01-01" +
				"&sort=title&order=asc&page=3&per_page=25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Query().Encode())
		})
	}
}

func TestQuerySetReplaces(t *testing.T) {
	var q Query
	q.Set("a", "1")
	q.Set("b", "2")
	q.Set("a", "3")

	assert.Equal(t, "a=3&b=2", q.Encode())
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, "2", q.Get("b"))
	assert.Empty(t, q.Get("missing"))
}

func TestListPosts(t *testing.T) {
	var gotQuery, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/posts", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")

		_ = json.NewEncoder(w).Encode(domain.ListResponse[domain.Post]{
			Data: []domain.Post{{ID: 1, Title: "NVDA"}, {ID: 2, Title: "NVDA calls"}},
			Meta: domain.NewPaginationMeta(1, 20, 2),
		})
	})

	resp, err := c.ListPosts(context.Background(), PostFilter{Status: domain.StatusDraft, Search: "NVDA"})
	require.NoError(t, err)

	assert.Equal(t, "status=draft&search=NVDA&sort=created_at&order=desc", gotQuery)
	assert.Equal(t, "Bearer secret", gotAuth)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Data[1].ID)
	assert.Equal(t, 2, resp.Meta.Total)
}

func TestAPIError(t *testing.T) {
	t.Run("error field", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"post not found"}`))
		})

		err := c.DeletePost(context.Background(), 42)
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "post not found", apiErr.Message)
		assert.True(t, IsNotFound(err))
	})

	t.Run("message field", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"title is required"}`))
		})

		_, err := c.BulkDeletePosts(context.Background(), []int64{1})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "title is required", apiErr.Message)
		assert.False(t, IsNotFound(err))
	})

	t.Run("plain body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		})

		_, err := c.PostStats(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "bad gateway", apiErr.Message)
	})
}

func TestBulkPublishVideosBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/admin/unified-videos/bulk-publish", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"video_ids":[3,5],"publish":true}`, string(body))

		_, _ = w.Write([]byte(`{"success":true,"message":"2 videos published","count":2}`))
	})

	res, err := c.BulkPublishVideos(context.Background(), []int64{3, 5}, true)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Count)
}

func TestUploadMedia(t *testing.T) {
	t.Run("multipart body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			f, hdr, err := r.FormFile("file")
			if !assert.NoError(t, err) {
				return
			}
			defer f.Close()
			data, _ := io.ReadAll(f)

			assert.Equal(t, "chart.png", hdr.Filename)
			assert.Equal(t, "png-bytes", string(data))

			_, _ = w.Write([]byte(`{"id":"m1","filename":"chart.png","url":"https://cdn.local/m1"}`))
		})

		m, err := c.UploadMedia(context.Background(), "chart.png", strings.NewReader("png-bytes"))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.local/m1", m.URL)
	})

	t.Run("failure has no url", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"storage unavailable"}`))
		})

		m, err := c.UploadMedia(context.Background(), "chart.png", strings.NewReader("png-bytes"))
		require.Error(t, err)
		assert.Empty(t, m.URL)
	})
}

func TestExportPosts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "format=csv&ids=1%2C2", r.URL.RawQuery)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="posts.csv"`)
		_, _ = w.Write([]byte("id,title\n1,a\n2,b\n"))
	})

	blob, err := c.ExportPosts(context.Background(), "", []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "posts.csv", blob.Filename)
	assert.Equal(t, "text/csv", blob.ContentType)
	assert.Contains(t, string(blob.Data), "1,a")
}

func TestAttachmentName(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		want        string
	}{
		{name: "Quoted", disposition: `attachment; filename="posts.csv"`, want: "posts.csv"},
		{name: "Bare", disposition: `attachment; filename=posts.json`, want: "posts.json"},
		{name: "SemicolonInName", disposition: `attachment; filename="q1;q2.csv"; size=10`, want: "q1;q2.csv"},
		{name: "NoFilename", disposition: "inline", want: ""},
		{name: "Empty", disposition: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, attachmentName(tt.disposition))
		})
	}
}

func TestCreatePostValidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	})

	_, err := c.CreatePost(context.Background(), domain.PostInput{})
	require.Error(t, err)
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("/api", "", time.Second, slog.Default())
	require.Error(t, err)
}
