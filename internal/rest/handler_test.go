package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/sandbox"
	"github.com/daniilsolovey/trading-admin/internal/sandbox/memory"
)

const testToken = "secret"

func newTestServer(t *testing.T, token string) (*echo.Echo, *sandbox.Manager) {
	t.Helper()

	store := memory.New()
	store.Seed(time.Now().UTC())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := sandbox.NewManager(store.Sandbox(), sandbox.NewHub(), logger)
	return NewHandler(m, logger).RegisterRoutes(token, nil), m
}

func serve(e *echo.Echo, method, target string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func uploadRequest(t *testing.T, target, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestHandler_Health(t *testing.T) {
	e, _ := newTestServer(t, testToken)

	rec := serve(e, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandler_Auth(t *testing.T) {
	e, _ := newTestServer(t, testToken)

	t.Run("MissingToken", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/admin/posts", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "unauthorized", decode[map[string]string](t, rec)["error"])
	})

	t.Run("WrongToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer nope")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("BearerToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+testToken)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("PublicViewEndpoint", func(t *testing.T) {
		rec := serve(e, http.MethodPost, "/api/posts/1/view", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, decode[map[string]int64](t, rec), "view_count")
	})
}

func TestHandler_Posts(t *testing.T) {
	e, _ := newTestServer(t, "")

	t.Run("ListQueryDecoding", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/admin/posts?status=published&search=NVDA&sort=created_at&order=desc", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[domain.ListResponse[domain.Post]](t, rec)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "nvda-weekly-setup", resp.Data[0].Slug)
		assert.Equal(t, 1, resp.Meta.Total)
	})

	t.Run("ListPagination", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/admin/posts?page=3&per_page=5", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[domain.ListResponse[domain.Post]](t, rec)
		assert.Len(t, resp.Data, 2)
		assert.Equal(t, 3, resp.Meta.CurrentPage)
		assert.False(t, resp.Meta.HasMore)
	})

	t.Run("PageOverflow", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/admin/posts?page=922337203685477580", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[domain.ListResponse[domain.Post]](t, rec)
		assert.Empty(t, resp.Data)
		assert.Equal(t, 12, resp.Meta.Total)
	})

	t.Run("InvalidDate", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/admin/posts?date_from=yesterday", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("Stats", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/admin/posts/stats", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		stats := decode[domain.PostStats](t, rec)
		assert.Equal(t, 12, stats.Total)
		assert.Equal(t, 5, stats.Published)
	})

	t.Run("CreateValidation", func(t *testing.T) {
		rec := serve(e, http.MethodPost, "/api/admin/posts", domain.PostInput{})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])
	})

	t.Run("CreateUpdateDelete", func(t *testing.T) {
		rec := serve(e, http.MethodPost, "/api/admin/posts", domain.PostInput{Title: "AMD breakout watch"})
		require.Equal(t, http.StatusCreated, rec.Code)
		created := decode[domain.Post](t, rec)
		assert.Equal(t, "amd-breakout-watch", created.Slug)
		assert.Equal(t, domain.StatusDraft, created.Status)

		path := "/api/admin/posts/" + itoa(created.ID)
		rec = serve(e, http.MethodPut, path, domain.PostInput{Title: "AMD breakout confirmed", Slug: created.Slug})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "AMD breakout confirmed", decode[domain.Post](t, rec).Title)

		rec = serve(e, http.MethodPatch, path+"/status", statusRequest{Status: domain.StatusPublished})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = serve(e, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[domain.Post](t, rec)
		assert.Equal(t, domain.StatusPublished, got.Status)
		assert.NotNil(t, got.PublishedAt)

		rec = serve(e, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = serve(e, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/admin/posts/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("BulkStatus", func(t *testing.T) {
		rec := serve(e, http.MethodPost, "/api/admin/posts/bulk-status", bulkStatusRequest{IDs: []int64{2, 4}, Status: domain.StatusArchived})
		require.Equal(t, http.StatusOK, rec.Code)

		res := decode[domain.MutationResult](t, rec)
		assert.True(t, res.Success)
		assert.Equal(t, 2, res.Count)
	})

	t.Run("BulkDelete", func(t *testing.T) {
		rec := serve(e, http.MethodPost, "/api/admin/posts/bulk-delete", bulkIDsRequest{IDs: []int64{11, 12}})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, decode[domain.MutationResult](t, rec).Count)
	})

	t.Run("ExportCSV", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/admin/posts/export?format=csv&ids=1,3", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), `filename="posts.csv"`)

		lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
		assert.Len(t, lines, 3)
	})

	t.Run("Import", func(t *testing.T) {
		csvData := "title,slug,status,category,tags\nMETA gap fill,,draft,stocks,meta\n,,draft,,\n"
		req := uploadRequest(t, "/api/admin/posts/import", "posts.csv", []byte(csvData), nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		res := decode[domain.MutationResult](t, rec)
		assert.Equal(t, 1, res.Count)
	})
}

func TestHandler_Content(t *testing.T) {
	e, _ := newTestServer(t, "")

	rec := serve(e, http.MethodPost, "/api/admin/cms-v2/content", domain.ContentInput{Title: "Options basics", ContentType: "guide", Body: "Calls and puts."})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	content := decode[domain.Content](t, rec)
	path := "/api/admin/cms-v2/content/" + content.ID

	rec = serve(e, http.MethodPut, path, domain.ContentInput{Title: "Options basics v2", ContentType: "guide", Body: "Calls, puts and spreads.", ChangeSummary: "expand"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2, decode[domain.Content](t, rec).Version)

	rec = serve(e, http.MethodGet, path+"/revisions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Revision](t, rec), 2)

	rec = serve(e, http.MethodPost, path+"/revisions/1/restore", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	restored := decode[domain.Content](t, rec)
	assert.Equal(t, "Options basics", restored.Title)
	assert.Equal(t, 3, restored.Version)

	rec = serve(e, http.MethodPost, path+"/revisions/9/restore", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, http.MethodPost, path+"/revisions/x/restore", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, http.MethodPost, path+"/status", statusRequest{Status: domain.StatusPublished})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.StatusPublished, decode[domain.Content](t, rec).Status)

	rec = serve(e, http.MethodGet, "/api/admin/cms-v2/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, decode[domain.ContentStats](t, rec).Total)

	rec = serve(e, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = serve(e, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Subscribers(t *testing.T) {
	e, _ := newTestServer(t, "")

	rec := serve(e, http.MethodGet, "/api/admin/email/subscribers?status=bounced", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[domain.ListResponse[domain.Subscriber]](t, rec).Meta.Total)

	rec = serve(e, http.MethodPost, "/api/admin/email/subscribers", domain.SubscriberInput{Email: "New.Trader@Example.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sub := decode[domain.Subscriber](t, rec)
	assert.Equal(t, "new.trader@example.com", sub.Email)

	rec = serve(e, http.MethodPost, "/api/admin/email/subscribers", domain.SubscriberInput{Email: "new.trader@example.com"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = serve(e, http.MethodGet, "/api/admin/email/subscribers/export?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 12)

	rec = serve(e, http.MethodDelete, "/api/admin/email/subscribers/"+itoa(sub.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodGet, "/api/admin/email/subscribers/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, decode[domain.SubscriberStats](t, rec).Total)
}

func TestHandler_Videos(t *testing.T) {
	e, _ := newTestServer(t, "")

	rec := serve(e, http.MethodGet, "/api/admin/unified-videos?is_published=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[domain.ListResponse[domain.Video]](t, rec)
	assert.Equal(t, 3, list.Meta.Total)

	rec = serve(e, http.MethodGet, "/api/admin/unified-videos/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	opts := decode[domain.VideoOptions](t, rec)
	assert.Len(t, opts.ContentTypes, len(domain.VideoContentTypes))
	assert.Len(t, opts.Rooms, 3)

	rec = serve(e, http.MethodGet, "/api/admin/unified-videos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[domain.ListResponse[domain.Video]](t, rec)
	require.Len(t, all.Data, 5)
	ids := []int64{all.Data[0].ID, all.Data[1].ID}

	rec = serve(e, http.MethodPost, "/api/admin/unified-videos/bulk-publish", bulkPublishRequest{VideoIDs: ids, Publish: true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[domain.MutationResult](t, rec).Success)

	rec = serve(e, http.MethodPost, "/api/admin/unified-videos/bulk-delete", bulkVideoDeleteRequest{VideoIDs: ids})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, decode[domain.MutationResult](t, rec).Count)

	rec = serve(e, http.MethodGet, "/api/admin/unified-videos/"+itoa(ids[0]), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, http.MethodGet, "/api/admin/unified-videos/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[domain.VideoStats](t, rec).Total)
}

func TestHandler_Indicators(t *testing.T) {
	e, _ := newTestServer(t, "")

	rec := serve(e, http.MethodPost, "/api/admin/indicators", domain.IndicatorInput{Name: "Order Flow Heatmap", Platforms: []string{"tradingview"}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ind := decode[domain.Indicator](t, rec)
	path := "/api/admin/indicators/" + itoa(ind.ID)

	rec = serve(e, http.MethodPatch, path+"/toggle", toggleRequest{Field: "is_featured"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, !ind.IsFeatured, decode[domain.Indicator](t, rec).IsFeatured)

	rec = serve(e, http.MethodPatch, path+"/toggle", toggleRequest{Field: "price"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	t.Run("UploadFile", func(t *testing.T) {
		req := uploadRequest(t, path+"/files", "heatmap.pine", []byte("//@version=5"), map[string]string{"platform": "tradingview"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		f := decode[domain.IndicatorFile](t, rec)
		assert.Equal(t, domain.IndicatorFilePlatform, f.Kind)
		assert.Equal(t, "tradingview", f.Platform)
	})

	t.Run("UploadFileWithoutPlatform", func(t *testing.T) {
		req := uploadRequest(t, path+"/files", "heatmap.pine", []byte("//@version=5"), nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("UploadDoc", func(t *testing.T) {
		req := uploadRequest(t, path+"/docs", "guide.pdf", []byte("%PDF-1.4"), map[string]string{"title": "Install guide"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "Install guide", decode[domain.IndicatorFile](t, rec).Title)
	})

	t.Run("MissingFile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, path+"/docs", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	rec = serve(e, http.MethodGet, "/api/admin/indicators?search=heatmap", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[domain.ListResponse[domain.Indicator]](t, rec)
	require.Len(t, list.Data, 1)
	assert.Equal(t, 1, list.Data[0].FileCount)
	assert.Equal(t, 1, list.Data[0].DocCount)
}

func TestHandler_RoomsAndMedia(t *testing.T) {
	e, _ := newTestServer(t, "")

	rec := serve(e, http.MethodGet, "/api/admin/trading-rooms", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Room](t, rec), 3)

	rec = serve(e, http.MethodGet, "/api/admin/trading-rooms/day-trading-room/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[domain.RoomStats](t, rec)
	assert.True(t, stats.IsLive)
	assert.Equal(t, 42, stats.LiveMembers)

	rec = serve(e, http.MethodGet, "/api/admin/trading-rooms/nope/stats", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := uploadRequest(t, "/api/admin/media/upload", "chart.png", []byte("\x89PNG\r\n\x1a\n"), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	media := decode[domain.Media](t, rec)
	assert.Equal(t, "chart.png", media.Filename)
	assert.Equal(t, "image/png", media.MimeType)

	req = uploadRequest(t, "/api/admin/media/upload", "empty.png", nil, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandler_LivePosts(t *testing.T) {
	e, m := newTestServer(t, testToken)
	srv := httptest.NewServer(e)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/posts"

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	header := http.Header{echo.HeaderAuthorization: []string{"Bearer " + testToken}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return m.Hub().Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	rec := serve(e, http.MethodPost, "/api/posts/3/view", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev domain.LiveEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, int64(3), ev.PostID)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
