package console

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/trading-admin/internal/adminapi"
	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/listctl"
	"github.com/daniilsolovey/trading-admin/internal/notify"
	"github.com/daniilsolovey/trading-admin/internal/rest"
	"github.com/daniilsolovey/trading-admin/internal/sandbox"
	"github.com/daniilsolovey/trading-admin/internal/sandbox/memory"
)

const testDebounce = 20 * time.Millisecond

type request struct {
	Method string
	Path   string
	Query  string
}

// recorder keeps every request that reached the sandbox.
type recorder struct {
	mu   sync.Mutex
	reqs []request
}

func (r *recorder) add(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, request{Method: req.Method, Path: req.URL.Path, Query: req.URL.RawQuery})
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = nil
}

func (r *recorder) matching(method, path string) []request {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []request
	for _, req := range r.reqs {
		if req.Method == method && req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

func (r *recorder) count(method, path string) int {
	return len(r.matching(method, path))
}

func newTestEnv(t *testing.T, perPage int) (Env, *recorder) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	store.Seed(time.Now().UTC())
	m := sandbox.NewManager(store.Sandbox(), sandbox.NewHub(), logger)
	e := rest.NewHandler(m, logger).RegisterRoutes("", nil)

	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.add(r)
		e.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := adminapi.New(srv.URL, "", 5*time.Second, logger)
	require.NoError(t, err)

	notes := notify.New(time.Minute)
	t.Cleanup(notes.Close)

	return Env{
		Client:    client,
		Notify:    notes,
		Confirmer: listctl.AlwaysConfirm,
		Logger:    logger,
		Debounce:  testDebounce,
		PerPage:   perPage,
		OutDir:    t.TempDir(),
	}, rec
}

func run(t *testing.T, p Page, line ...string) error {
	t.Helper()
	cmd, ok := p.Commands()[line[0]]
	require.True(t, ok, "command %s", line[0])
	return cmd.Run(context.Background(), line[1:])
}

func hasNotice(store *notify.Store, level notify.Level, substr string) bool {
	for _, n := range store.Active() {
		if n.Level == level && strings.Contains(n.Message, substr) {
			return true
		}
	}
	return false
}

func TestPostsPage_FilterDebounce(t *testing.T) {
	env, rec := newTestEnv(t, 0)
	p := NewPostsPage(env)
	require.NoError(t, p.Mount(context.Background()))
	t.Cleanup(p.Close)
	require.Len(t, p.Records(), 12)

	rec.reset()
	require.NoError(t, run(t, p, "status", "draft"))
	require.NoError(t, run(t, p, "search", "NVDA"))

	require.Eventually(t, func() bool { return rec.count(http.MethodGet, "/api/admin/posts") == 1 },
		time.Second, 5*time.Millisecond)
	time.Sleep(3 * testDebounce)

	reqs := rec.matching(http.MethodGet, "/api/admin/posts")
	require.Len(t, reqs, 1)
	assert.Equal(t, "status=draft&search=NVDA&sort=created_at&order=desc", reqs[0].Query)
	assert.Empty(t, p.Records())
}

func TestPostsPage_SearchOnDraftList(t *testing.T) {
	env, rec := newTestEnv(t, 0)
	p := NewPostsPage(env)
	require.NoError(t, p.Mount(context.Background()))
	t.Cleanup(p.Close)

	require.NoError(t, run(t, p, "status", "draft"))
	require.True(t, p.Flush())
	drafts := p.Records()
	require.NotEmpty(t, drafts)
	for _, post := range drafts {
		assert.Equal(t, domain.StatusDraft, post.Status)
	}

	rec.reset()
	require.NoError(t, run(t, p, "search", "TSLA"))
	assert.True(t, p.Pending())
	require.Eventually(t, func() bool { return len(p.Records()) == 1 }, time.Second, 5*time.Millisecond)

	reqs := rec.matching(http.MethodGet, "/api/admin/posts")
	require.Len(t, reqs, 1)
	assert.Equal(t, "status=draft&search=TSLA&sort=created_at&order=desc", reqs[0].Query)
	assert.Equal(t, "tsla-weekly-setup", p.Records()[0].Slug)
}

func TestPostsPage_FilterValidation(t *testing.T) {
	env, _ := newTestEnv(t, 0)
	p := NewPostsPage(env)
	require.NoError(t, p.Mount(context.Background()))
	t.Cleanup(p.Close)

	assert.ErrorIs(t, run(t, p, "status", "gone"), ErrUsage)
	assert.ErrorIs(t, run(t, p, "page", "0"), ErrUsage)
	assert.ErrorIs(t, run(t, p, "sort"), ErrUsage)
	assert.ErrorIs(t, run(t, p, "delete", "x"), ErrUsage)

	require.NoError(t, run(t, p, "page", "2"))
	require.NoError(t, run(t, p, "category", "education"))
	assert.Equal(t, 1, p.Filter().Page)
	assert.Equal(t, "education", p.Filter().Category)
}

func TestPostsPage_PageCommand(t *testing.T) {
	env, _ := newTestEnv(t, 5)
	p := NewPostsPage(env)
	require.NoError(t, p.Mount(context.Background()))
	t.Cleanup(p.Close)

	require.NoError(t, run(t, p, "page", "2"))
	require.True(t, p.Flush())
	require.NoError(t, run(t, p, "page", "2"))
	assert.Equal(t, 2, p.Filter().Page)
	require.True(t, p.Flush())
	assert.Equal(t, 2, p.Meta().CurrentPage)

	before := p.Filter()
	assert.ErrorIs(t, run(t, p, "page", "abc"), ErrUsage)
	assert.ErrorIs(t, run(t, p, "status", "gone"), ErrUsage)
	assert.ErrorIs(t, run(t, p, "dates", "2024-01-01"), ErrUsage)
	assert.Equal(t, before, p.Filter())
	assert.False(t, p.Pending())
}

func TestPostsPage_BulkDelete(t *testing.T) {
	env, rec := newTestEnv(t, 10)
	p := NewPostsPage(env)
	ctx := context.Background()
	require.NoError(t, p.Mount(ctx))
	t.Cleanup(p.Close)

	require.Len(t, p.Records(), 10)
	ids := p.Keys()[:3]
	require.NoError(t, run(t, p, "select", i64(ids[0]), i64(ids[1])+","+i64(ids[2])))
	require.Equal(t, 3, p.Selection().Count())

	rec.reset()
	require.NoError(t, run(t, p, "bulk-delete"))

	assert.Equal(t, 1, rec.count(http.MethodPost, "/api/admin/posts/bulk-delete"))
	assert.Equal(t, 1, rec.count(http.MethodGet, "/api/admin/posts"))
	assert.Equal(t, 1, rec.count(http.MethodGet, "/api/admin/posts/stats"))
	assert.Zero(t, p.Selection().Count())
	assert.Equal(t, 9, p.Meta().Total)

	st, ok := p.Stats()
	require.True(t, ok)
	assert.Equal(t, 9, st.Total)
	assert.True(t, hasNotice(env.Notify, notify.LevelSuccess, "3 posts deleted"))

	assert.ErrorIs(t, p.BulkDelete(ctx), listctl.ErrEmptySelection)
}

func TestPostsPage_DeclinedDelete(t *testing.T) {
	env, rec := newTestEnv(t, 0)
	env.Confirmer = listctl.ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })
	p := NewPostsPage(env)
	require.NoError(t, p.Mount(context.Background()))
	t.Cleanup(p.Close)

	rec.reset()
	assert.ErrorIs(t, run(t, p, "delete", "1"), listctl.ErrCancelled)
	assert.Zero(t, rec.count(http.MethodDelete, "/api/admin/posts/1"))
	assert.Len(t, p.Records(), 12)
}

func TestPostsPage_RowActions(t *testing.T) {
	env, _ := newTestEnv(t, 0)
	p := NewPostsPage(env)
	ctx := context.Background()
	require.NoError(t, p.Mount(ctx))
	t.Cleanup(p.Close)

	post, ok := p.find(1)
	require.True(t, ok)
	require.Equal(t, domain.StatusPublished, post.Status)

	require.NoError(t, run(t, p, "toggle-status", "1"))
	post, _ = p.find(1)
	assert.Equal(t, domain.StatusDraft, post.Status)

	featured := post.IsFeatured
	require.NoError(t, run(t, p, "feature", "1"))
	post, _ = p.find(1)
	assert.Equal(t, !featured, post.IsFeatured)

	require.NoError(t, run(t, p, "duplicate", "1"))
	assert.Equal(t, 13, p.Meta().Total)

	require.NoError(t, run(t, p, "select", "2", "3"))
	require.NoError(t, run(t, p, "bulk-status", "archived"))
	for _, id := range []int64{2, 3} {
		post, _ := p.find(id)
		assert.Equal(t, domain.StatusArchived, post.Status)
	}

	err := run(t, p, "delete", "999")
	require.Error(t, err)
	assert.True(t, hasNotice(env.Notify, notify.LevelError, "Failed to delete post"))
}

func TestPostsPage_ExportImport(t *testing.T) {
	env, _ := newTestEnv(t, 0)
	p := NewPostsPage(env)
	ctx := context.Background()
	require.NoError(t, p.Mount(ctx))
	t.Cleanup(p.Close)

	p.Selection().Select(1, 2)
	path, err := p.Export(ctx, "csv")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)

	src := filepath.Join(t.TempDir(), "import.csv")
	require.NoError(t, os.WriteFile(src, []byte("title,status,category\nFOMC preview,draft,news\n"), 0o644))
	require.NoError(t, run(t, p, "import", src))
	assert.Equal(t, 13, p.Meta().Total)

	assert.ErrorIs(t, run(t, p, "import"), ErrUsage)
	assert.Error(t, p.Import(ctx, filepath.Join(t.TempDir(), "missing.csv")))
}

func TestPostsPage_SEO(t *testing.T) {
	env, _ := newTestEnv(t, 0)
	p := NewPostsPage(env)
	require.NoError(t, p.Mount(context.Background()))
	t.Cleanup(p.Close)

	res, err := p.SEO(1)
	require.NoError(t, err)
	assert.Less(t, res.Score, 100)
	assert.NotEmpty(t, res.Checks)

	_, err = p.SEO(999)
	assert.Error(t, err)

	require.NoError(t, run(t, p, "seo", "1"))
	assert.True(t, hasNotice(env.Notify, notify.LevelInfo, "SEO score"))
}

func TestPostsPage_Render(t *testing.T) {
	env, _ := newTestEnv(t, 5)
	p := NewPostsPage(env)
	require.NoError(t, p.Mount(context.Background()))
	t.Cleanup(p.Close)
	p.Selection().Select(1)

	var buf bytes.Buffer
	p.Render(&buf)
	out := buf.String()
	assert.Contains(t, out, "total 12")
	assert.Contains(t, out, "NVDA weekly setup and key levels")
	assert.Contains(t, out, "page 1/3, 12 total, 1 selected")
}

func TestContentPage(t *testing.T) {
	env, _ := newTestEnv(t, 0)
	p := NewContentPage(env)
	ctx := context.Background()
	require.NoError(t, p.Mount(ctx))
	t.Cleanup(p.Close)
	require.Len(t, p.Records(), 3)

	require.NoError(t, run(t, p, "create", "page", "Terms", "of", "service"))
	require.Len(t, p.Records(), 4)

	var id string
	for _, c := range p.Records() {
		if c.Title == "Terms of service" {
			id = c.ID
		}
	}
	require.NotEmpty(t, id)

	require.NoError(t, run(t, p, "rename", id, "Terms", "of", "use"))
	revs, err := p.Revisions(ctx, id)
	require.NoError(t, err)
	require.Len(t, revs, 2)

	require.NoError(t, run(t, p, "restore", id, "1"))
	c, err := env.Client.GetContent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Terms of service", c.Title)

	require.NoError(t, run(t, p, "transition", id, "published"))
	st, ok := p.Stats()
	require.True(t, ok)
	assert.Equal(t, 1, st.ByStatus[domain.StatusPublished])

	assert.Error(t, run(t, p, "restore", id, "9"))
	assert.ErrorIs(t, run(t, p, "transition", id, "gone"), ErrUsage)

	require.NoError(t, run(t, p, "delete", id))
	assert.Len(t, p.Records(), 3)

	var buf bytes.Buffer
	p.Render(&buf)
	assert.Contains(t, buf.String(), "Options basics")
}

func TestSubscribersPage_BulkDelete(t *testing.T) {
	env, rec := newTestEnv(t, 0)
	p := NewSubscribersPage(env)
	ctx := context.Background()
	require.NoError(t, p.Mount(ctx))
	t.Cleanup(p.Close)

	keys := p.Keys()
	require.Len(t, keys, 10)
	p.Selection().Select(keys[:3]...)

	rec.reset()
	require.NoError(t, p.BulkDelete(ctx))
	for _, id := range keys[:3] {
		assert.Equal(t, 1, rec.count(http.MethodDelete, "/api/admin/email/subscribers/"+i64(id)))
	}
	assert.Equal(t, 7, p.Meta().Total)
	assert.Zero(t, p.Selection().Count())
}

func TestSubscribersPage_BulkDeletePartialFailure(t *testing.T) {
	env, _ := newTestEnv(t, 0)
	p := NewSubscribersPage(env)
	ctx := context.Background()
	require.NoError(t, p.Mount(ctx))
	t.Cleanup(p.Close)

	keys := p.Keys()
	p.Selection().Select(keys[0], keys[1], 99999)

	err := p.BulkDelete(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 deleted")

	assert.Equal(t, 8, p.Meta().Total)
	assert.Equal(t, 3, p.Selection().Count())
	assert.True(t, hasNotice(env.Notify, notify.LevelError, "Failed to delete subscribers"))
}

func TestSubscribersPage_CreateExport(t *testing.T) {
	env, _ := newTestEnv(t, 0)
	p := NewSubscribersPage(env)
	ctx := context.Background()
	require.NoError(t, p.Mount(ctx))
	t.Cleanup(p.Close)

	require.NoError(t, run(t, p, "add", "New@Example.com", "New", "Trader"))
	assert.Equal(t, 11, p.Meta().Total)
	assert.Error(t, run(t, p, "add", "new@example.com"))

	require.NoError(t, run(t, p, "status", "bounced"))
	p.Flush()
	assert.Equal(t, 2, p.Meta().Total)

	path, err := p.Export(ctx)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 3)

	assert.ErrorIs(t, run(t, p, "status", "maybe"), ErrUsage)
}

func TestVideosPage(t *testing.T) {
	env, rec := newTestEnv(t, 0)
	p := NewVideosPage(env)
	ctx := context.Background()
	require.NoError(t, p.Mount(ctx))
	t.Cleanup(p.Close)
	require.Len(t, p.Records(), 5)

	opts, err := p.Options(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, opts.ContentTypes)
	rec.reset()
	_, err = p.Options(ctx)
	require.NoError(t, err)
	assert.Zero(t, rec.count(http.MethodGet, "/api/admin/unified-videos/options"))

	p.Selection().Select(p.Keys()...)
	require.NoError(t, run(t, p, "bulk-publish", "on"))
	st, _ := p.Stats()
	assert.Equal(t, 5, st.Published)

	require.NoError(t, run(t, p, "create", "daily_video", "https://video.example.com/new.mp4", "Premarket", "plan"))
	assert.Len(t, p.Records(), 6)

	keys := p.Keys()
	require.NoError(t, run(t, p, "retitle", i64(keys[0]), "Renamed"))
	v, err := env.Client.GetVideo(ctx, keys[0])
	require.NoError(t, err)
	assert.Equal(t, "Renamed", v.Title)

	p.Selection().Select(keys[:2]...)
	require.NoError(t, run(t, p, "bulk-delete", "force"))
	assert.Len(t, p.Records(), 4)
	_, err = env.Client.GetVideo(ctx, keys[0])
	assert.Error(t, err)

	assert.ErrorIs(t, run(t, p, "bulk-delete", "now"), ErrUsage)
	assert.ErrorIs(t, run(t, p, "bulk-delete"), listctl.ErrEmptySelection)
}

func TestIndicatorsPage_CreateWithUploads(t *testing.T) {
	env, _ := newTestEnv(t, 0)
	p := NewIndicatorsPage(env)
	ctx := context.Background()
	require.NoError(t, p.Mount(ctx))
	t.Cleanup(p.Close)

	dir := t.TempDir()
	script := filepath.Join(dir, "heatmap.ts")
	require.NoError(t, os.WriteFile(script, []byte("plot(close)"), 0o644))
	guide := filepath.Join(dir, "guide.pdf")
	require.NoError(t, os.WriteFile(guide, []byte("%PDF-1.4"), 0o644))

	ind, err := p.Create(ctx, domain.IndicatorInput{Name: "Order Flow Heatmap", Price: 79, IsActive: true},
		[]Attachment{{Label: "thinkorswim", Path: script}},
		[]Attachment{{Label: "Setup guide", Path: guide}})
	require.NoError(t, err)
	require.NotZero(t, ind.ID)

	got, ok := p.find(ind.ID)
	require.True(t, ok)
	assert.Equal(t, 1, got.FileCount)
	assert.Equal(t, 1, got.DocCount)
}

func TestIndicatorsPage_PartialUploadFailure(t *testing.T) {
	env, _ := newTestEnv(t, 0)
	p := NewIndicatorsPage(env)
	ctx := context.Background()
	require.NoError(t, p.Mount(ctx))
	t.Cleanup(p.Close)

	script := filepath.Join(t.TempDir(), "scanner.ts")
	require.NoError(t, os.WriteFile(script, []byte("plot(volume)"), 0o644))

	ind, err := p.Create(ctx, domain.IndicatorInput{Name: "Gap Scanner", Price: 49},
		[]Attachment{{Label: "tradingview", Path: script}},
		[]Attachment{{Label: "Manual", Path: filepath.Join(t.TempDir(), "missing.pdf")}})
	require.Error(t, err)
	require.NotZero(t, ind.ID)
	assert.Contains(t, err.Error(), "Manual")

	got, ok := p.find(ind.ID)
	require.True(t, ok)
	assert.Equal(t, 1, got.FileCount)
	assert.Zero(t, got.DocCount)
	assert.True(t, hasNotice(env.Notify, notify.LevelWarning, "some files failed"))
	assert.Equal(t, 3, p.Meta().Total)
}

func TestIndicatorsPage_Commands(t *testing.T) {
	env, _ := newTestEnv(t, 0)
	p := NewIndicatorsPage(env)
	ctx := context.Background()
	require.NoError(t, p.Mount(ctx))
	t.Cleanup(p.Close)

	id := p.Keys()[0]
	before, _ := p.find(id)

	require.NoError(t, run(t, p, "toggle", i64(id), "featured"))
	after, _ := p.find(id)
	assert.Equal(t, !before.IsFeatured, after.IsFeatured)

	require.NoError(t, run(t, p, "price", i64(id), "149.5"))
	after, _ = p.find(id)
	assert.InDelta(t, 149.5, after.Price, 0.001)

	require.NoError(t, run(t, p, "create", "19", "Trend", "Ribbon"))
	assert.Equal(t, 3, p.Meta().Total)

	assert.ErrorIs(t, run(t, p, "toggle", i64(id), "hidden"), ErrUsage)
	assert.ErrorIs(t, run(t, p, "create", "19", "X", "file:broken"), ErrUsage)

	require.NoError(t, run(t, p, "delete", i64(id)))
	_, ok := p.find(id)
	assert.False(t, ok)
}

func TestRoomsPage(t *testing.T) {
	env, _ := newTestEnv(t, 0)
	p := NewRoomsPage(env)
	require.NoError(t, p.Mount(context.Background()))
	t.Cleanup(p.Close)

	require.Len(t, p.Rooms(), 3)
	st, ok := p.Live("day-trading-room")
	require.True(t, ok)
	assert.True(t, st.IsLive)
	assert.Equal(t, 42, st.LiveMembers)

	var buf bytes.Buffer
	p.Render(&buf)
	assert.Contains(t, buf.String(), "Swing Trading Room")
}

func TestRoomsPage_Polling(t *testing.T) {
	env, rec := newTestEnv(t, 0)
	env.PollInterval = time.Second
	p := NewRoomsPage(env)
	require.NoError(t, p.Mount(context.Background()))
	t.Cleanup(p.Close)

	path := "/api/admin/trading-rooms/day-trading-room/stats"
	require.Equal(t, 1, rec.count(http.MethodGet, path))
	require.Eventually(t, func() bool { return rec.count(http.MethodGet, path) >= 2 },
		3*time.Second, 50*time.Millisecond)
}

func TestUploadMedia(t *testing.T) {
	env, _ := newTestEnv(t, 0)
	ctx := context.Background()
	dir := t.TempDir()

	img := filepath.Join(dir, "chart.png")
	require.NoError(t, os.WriteFile(img, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o644))
	m, err := UploadMedia(ctx, env, img)
	require.NoError(t, err)
	assert.Equal(t, "image/png", m.MimeType)
	assert.NotEmpty(t, m.URL)

	empty := filepath.Join(dir, "empty.png")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	m, err = UploadMedia(ctx, env, empty)
	require.Error(t, err)
	assert.Empty(t, m.URL)
	assert.True(t, hasNotice(env.Notify, notify.LevelError, "Failed to upload empty.png"))

	_, err = UploadMedia(ctx, env, filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestShell(t *testing.T) {
	env, _ := newTestEnv(t, 0)
	var out bytes.Buffer
	sh := NewShell(env, &out, DefaultPages(env)...)
	t.Cleanup(sh.Close)
	ctx := context.Background()

	require.NoError(t, sh.Exec(ctx, "open cms"))
	assert.Equal(t, "cms", sh.Current().Name())
	require.NoError(t, sh.Exec(ctx, "list"))
	assert.Contains(t, out.String(), "Risk management")

	out.Reset()
	require.NoError(t, sh.Exec(ctx, "help"))
	assert.Contains(t, out.String(), "restore <id> <revision>")

	assert.ErrorIs(t, sh.Exec(ctx, "launch"), ErrUnknownCommand)
	assert.ErrorIs(t, sh.Exec(ctx, "open nowhere"), ErrUsage)
	assert.NoError(t, sh.Exec(ctx, "   "))

	out.Reset()
	in := bufio.NewReader(strings.NewReader("open posts\nsearch TSLA\nlist\nbogus\nquit\nlist\n"))
	require.NoError(t, sh.Run(ctx, in))
	assert.Contains(t, out.String(), "TSLA weekly setup")
	assert.NotContains(t, out.String(), "NVDA weekly setup")
	assert.Contains(t, out.String(), "error: unknown command")
}

func TestShell_Notifications(t *testing.T) {
	env, _ := newTestEnv(t, 0)
	var out bytes.Buffer
	sh := NewShell(env, &out, NewPostsPage(env))
	t.Cleanup(sh.Close)
	unsubscribe := sh.Notifications(env.Notify)
	defer unsubscribe()

	ctx := context.Background()
	require.NoError(t, sh.Exec(ctx, "delete 1"))
	assert.Contains(t, out.String(), "[success] Post deleted")
}

func TestPromptConfirmer(t *testing.T) {
	var out bytes.Buffer
	ctx := context.Background()

	ok, err := PromptConfirmer(bufio.NewReader(strings.NewReader("y\n")), &out).Confirm(ctx, "Delete 3 posts?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Delete 3 posts? [y/N] ", out.String())

	ok, err = PromptConfirmer(bufio.NewReader(strings.NewReader("\n")), &out).Confirm(ctx, "Delete?")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = PromptConfirmer(bufio.NewReader(strings.NewReader("")), &out).Confirm(ctx, "Delete?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseAttachment(t *testing.T) {
	a, err := ParseAttachment("tradingview=./scripts/heatmap.pine")
	require.NoError(t, err)
	assert.Equal(t, Attachment{Label: "tradingview", Path: "./scripts/heatmap.pine"}, a)

	for _, s := range []string{"", "tradingview", "=x", "tradingview="} {
		_, err := ParseAttachment(s)
		assert.ErrorIs(t, err, ErrUsage, s)
	}
}
