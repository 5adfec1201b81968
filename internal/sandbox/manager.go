package sandbox

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

// ValidationError marks input rejected before reaching the store.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

// Manager implements the admin API on top of a Store.
type Manager struct {
	store Store
	hub   *Hub
	log   *slog.Logger
	now   func() time.Time
}

func NewManager(store Store, hub *Hub, logger *slog.Logger) *Manager {
	return &Manager{
		store: store,
		hub:   hub,
		log:   logger,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (m *Manager) Hub() *Hub { return m.hub }

func makeSlug(explicit, title string) (string, error) {
	src := explicit
	if strings.TrimSpace(src) == "" {
		src = title
	}
	s, err := slug.Normalize(src)
	if err != nil {
		return "", fmt.Errorf("normalize slug %q: %w", src, err)
	}
	return s, nil
}

func bulkResult(n int, noun, verb string) domain.MutationResult {
	return domain.MutationResult{
		Success: true,
		Message: fmt.Sprintf("%d %s %s", n, noun, verb),
		Count:   n,
	}
}

func (m *Manager) ListPosts(ctx context.Context, q PostQuery) (domain.ListResponse[domain.Post], error) {
	pager := NewPager(q.Page, q.PerPage)
	q.Page, q.PerPage = pager.Page, pager.PerPage

	posts, total, err := m.store.Posts.ListPosts(ctx, q)
	if err != nil {
		return domain.ListResponse[domain.Post]{}, fmt.Errorf("store list posts: %w", err)
	}

	return domain.ListResponse[domain.Post]{
		Data: nonNil(posts),
		Meta: domain.NewPaginationMeta(pager.Page, pager.PerPage, total),
	}, nil
}

func (m *Manager) PostStats(ctx context.Context) (domain.PostStats, error) {
	stats, err := m.store.Posts.PostStats(ctx)
	if err != nil {
		return stats, fmt.Errorf("store post stats: %w", err)
	}
	return stats, nil
}

func (m *Manager) PostByID(ctx context.Context, id int64) (domain.Post, error) {
	return m.store.Posts.PostByID(ctx, id)
}

func (m *Manager) CreatePost(ctx context.Context, in domain.PostInput) (domain.Post, error) {
	if err := in.Validate(); err != nil {
		return domain.Post{}, invalid(err)
	}

	s, err := makeSlug(in.Slug, in.Title)
	if err != nil {
		return domain.Post{}, invalid(err)
	}

	now := m.now()
	p := domain.Post{CreatedAt: now}
	applyPostInput(&p, in, s, now)
	if p.Status == "" {
		p.Status = domain.StatusDraft
	}
	if p.Status == domain.StatusPublished {
		p.PublishedAt = &now
	}

	if err := m.store.Posts.CreatePost(ctx, &p); err != nil {
		return domain.Post{}, fmt.Errorf("store create post: %w", err)
	}

	m.hub.Publish(domain.LiveEvent{Type: domain.LiveNewPost, PostID: p.ID})
	return p, nil
}

func (m *Manager) UpdatePost(ctx context.Context, id int64, in domain.PostInput) (domain.Post, error) {
	if err := in.Validate(); err != nil {
		return domain.Post{}, invalid(err)
	}

	p, err := m.store.Posts.PostByID(ctx, id)
	if err != nil {
		return p, err
	}

	s, err := makeSlug(in.Slug, in.Title)
	if err != nil {
		return domain.Post{}, invalid(err)
	}

	prev := p.Status
	now := m.now()
	applyPostInput(&p, in, s, now)
	if p.Status == "" {
		p.Status = prev
	}
	if p.Status == domain.StatusPublished && p.PublishedAt == nil {
		p.PublishedAt = &now
	}

	if err := m.store.Posts.UpdatePost(ctx, &p); err != nil {
		return domain.Post{}, fmt.Errorf("store update post: %w", err)
	}

	if p.Status != prev {
		m.hub.Publish(domain.LiveEvent{Type: domain.LiveStatusChange, PostID: p.ID, Status: p.Status})
	}
	return p, nil
}

func applyPostInput(p *domain.Post, in domain.PostInput, s string, now time.Time) {
	p.Title = in.Title
	p.Slug = s
	p.Excerpt = in.Excerpt
	p.Content = in.Content
	p.FeaturedImage = in.FeaturedImage
	p.Status = in.Status
	p.Category = in.Category
	p.Tags = nonNil(in.Tags)
	p.MetaTitle = in.MetaTitle
	p.MetaDescription = in.MetaDescription
	p.ScheduledAt = in.ScheduledAt
	p.UpdatedAt = now
}

func (m *Manager) DeletePost(ctx context.Context, id int64) error {
	n, err := m.store.Posts.DeletePosts(ctx, []int64{id})
	if err != nil {
		return fmt.Errorf("store delete post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DuplicatePost copies a post as a new draft.
func (m *Manager) DuplicatePost(ctx context.Context, id int64) (domain.Post, error) {
	src, err := m.store.Posts.PostByID(ctx, id)
	if err != nil {
		return src, err
	}

	now := m.now()
	cp := src
	cp.ID = 0
	cp.Title = src.Title + " (Copy)"
	cp.Slug = src.Slug + "-copy-" + fmt.Sprint(now.Unix())
	cp.Status = domain.StatusDraft
	cp.IsFeatured = false
	cp.ViewCount = 0
	cp.EngagementRate = 0
	cp.PublishedAt = nil
	cp.Tags = append([]string{}, src.Tags...)
	cp.CreatedAt = now
	cp.UpdatedAt = now

	if err := m.store.Posts.CreatePost(ctx, &cp); err != nil {
		return domain.Post{}, fmt.Errorf("store duplicate post: %w", err)
	}

	m.hub.Publish(domain.LiveEvent{Type: domain.LiveNewPost, PostID: cp.ID})
	return cp, nil
}

func (m *Manager) SetPostStatus(ctx context.Context, id int64, status domain.Status) error {
	if !status.Valid() {
		return invalid(fmt.Errorf("unknown status %q", status))
	}

	n, err := m.store.Posts.SetPostStatus(ctx, []int64{id}, status)
	if err != nil {
		return fmt.Errorf("store set post status: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	m.hub.Publish(domain.LiveEvent{Type: domain.LiveStatusChange, PostID: id, Status: status})
	return nil
}

func (m *Manager) SetPostFeatured(ctx context.Context, id int64, featured bool) error {
	if err := m.store.Posts.SetPostFeatured(ctx, id, featured); err != nil {
		return fmt.Errorf("store set post featured: %w", err)
	}
	return nil
}

func (m *Manager) BulkDeletePosts(ctx context.Context, ids []int64) (domain.MutationResult, error) {
	if len(ids) == 0 {
		return domain.MutationResult{}, invalid(fmt.Errorf("ids: cannot be blank"))
	}

	n, err := m.store.Posts.DeletePosts(ctx, ids)
	if err != nil {
		return domain.MutationResult{}, fmt.Errorf("store bulk delete posts: %w", err)
	}
	return bulkResult(n, "posts", "deleted"), nil
}

func (m *Manager) BulkPostStatus(ctx context.Context, ids []int64, status domain.Status) (domain.MutationResult, error) {
	if len(ids) == 0 {
		return domain.MutationResult{}, invalid(fmt.Errorf("ids: cannot be blank"))
	}
	if !status.Valid() {
		return domain.MutationResult{}, invalid(fmt.Errorf("unknown status %q", status))
	}

	n, err := m.store.Posts.SetPostStatus(ctx, ids, status)
	if err != nil {
		return domain.MutationResult{}, fmt.Errorf("store bulk post status: %w", err)
	}

	for _, id := range ids {
		m.hub.Publish(domain.LiveEvent{Type: domain.LiveStatusChange, PostID: id, Status: status})
	}
	return bulkResult(n, "posts", "updated"), nil
}

// RecordView bumps the view counter and broadcasts the new total.
func (m *Manager) RecordView(ctx context.Context, id int64) (int64, error) {
	count, err := m.store.Posts.AddPostViews(ctx, id, 1)
	if err != nil {
		return 0, fmt.Errorf("store add post views: %w", err)
	}

	m.hub.Publish(domain.LiveEvent{Type: domain.LiveViewCount, PostID: id, Count: count})
	return count, nil
}

// ReportEngagement broadcasts an engagement rate sample for a post.
func (m *Manager) ReportEngagement(ctx context.Context, id int64, rate float64) error {
	if _, err := m.store.Posts.PostByID(ctx, id); err != nil {
		return err
	}
	m.hub.Publish(domain.LiveEvent{Type: domain.LiveEngagement, PostID: id, Rate: rate})
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
