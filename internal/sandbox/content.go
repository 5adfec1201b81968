package sandbox

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

func (m *Manager) ListContent(ctx context.Context, q ContentQuery) (domain.ListResponse[domain.Content], error) {
	pager := NewPager(q.Page, q.PerPage)
	q.Page, q.PerPage = pager.Page, pager.PerPage

	items, total, err := m.store.Content.ListContent(ctx, q)
	if err != nil {
		return domain.ListResponse[domain.Content]{}, fmt.Errorf("store list content: %w", err)
	}

	return domain.ListResponse[domain.Content]{
		Data: nonNil(items),
		Meta: domain.NewPaginationMeta(pager.Page, pager.PerPage, total),
	}, nil
}

func (m *Manager) ContentStats(ctx context.Context) (domain.ContentStats, error) {
	return m.store.Content.ContentStats(ctx)
}

func (m *Manager) GetContent(ctx context.Context, id string) (domain.Content, error) {
	return m.store.Content.ContentByID(ctx, id)
}

// CreateContent stores a new draft at version 1 along with its first revision.
func (m *Manager) CreateContent(ctx context.Context, in domain.ContentInput) (domain.Content, error) {
	if err := in.Validate(); err != nil {
		return domain.Content{}, invalid(err)
	}

	s, err := makeSlug(in.Slug, in.Title)
	if err != nil {
		return domain.Content{}, invalid(err)
	}

	now := m.now()
	c := domain.Content{
		ID:        uuid.NewString(),
		Status:    domain.StatusDraft,
		Version:   1,
		CreatedAt: now,
	}
	applyContentInput(&c, in, s)
	c.UpdatedAt = now

	if err := m.store.Content.CreateContent(ctx, &c); err != nil {
		return domain.Content{}, fmt.Errorf("store create content: %w", err)
	}
	if err := m.addRevision(ctx, c, orDefault(in.ChangeSummary, "Created")); err != nil {
		return domain.Content{}, err
	}

	return c, nil
}

// UpdateContent bumps the version and records a revision.
func (m *Manager) UpdateContent(ctx context.Context, id string, in domain.ContentInput) (domain.Content, error) {
	if err := in.Validate(); err != nil {
		return domain.Content{}, invalid(err)
	}

	c, err := m.store.Content.ContentByID(ctx, id)
	if err != nil {
		return c, err
	}

	s, err := makeSlug(in.Slug, in.Title)
	if err != nil {
		return domain.Content{}, invalid(err)
	}

	applyContentInput(&c, in, s)
	c.Version++
	c.UpdatedAt = m.now()

	if err := m.store.Content.UpdateContent(ctx, &c); err != nil {
		return domain.Content{}, fmt.Errorf("store update content: %w", err)
	}
	if err := m.addRevision(ctx, c, orDefault(in.ChangeSummary, "Updated")); err != nil {
		return domain.Content{}, err
	}

	return c, nil
}

func applyContentInput(c *domain.Content, in domain.ContentInput, s string) {
	c.ContentType = in.ContentType
	c.Title = in.Title
	c.Slug = s
	c.Excerpt = in.Excerpt
	c.Body = in.Body
	c.MetaDescription = in.MetaDescription
	c.FeaturedImageID = in.FeaturedImageID
	c.Tags = nonNil(in.Tags)
}

func (m *Manager) DeleteContent(ctx context.Context, id string) error {
	return m.store.Content.DeleteContent(ctx, id)
}

// TransitionContent moves content to any status. There is no enforced
// workflow between statuses.
func (m *Manager) TransitionContent(ctx context.Context, id string, status domain.Status) (domain.Content, error) {
	if !status.Valid() {
		return domain.Content{}, invalid(fmt.Errorf("unknown status %q", status))
	}

	c, err := m.store.Content.ContentByID(ctx, id)
	if err != nil {
		return c, err
	}

	now := m.now()
	c.Status = status
	c.UpdatedAt = now
	if status == domain.StatusPublished && c.PublishedAt == nil {
		c.PublishedAt = &now
	}

	if err := m.store.Content.UpdateContent(ctx, &c); err != nil {
		return domain.Content{}, fmt.Errorf("store transition content: %w", err)
	}
	return c, nil
}

func (m *Manager) Revisions(ctx context.Context, id string) ([]domain.Revision, error) {
	if _, err := m.store.Content.ContentByID(ctx, id); err != nil {
		return nil, err
	}

	revs, err := m.store.Content.Revisions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store revisions: %w", err)
	}
	return nonNil(revs), nil
}

// RestoreRevision copies a revision back onto the content as a new version.
func (m *Manager) RestoreRevision(ctx context.Context, id string, number int) (domain.Content, error) {
	revs, err := m.Revisions(ctx, id)
	if err != nil {
		return domain.Content{}, err
	}

	var rev *domain.Revision
	for i := range revs {
		if revs[i].RevisionNumber == number {
			rev = &revs[i]
			break
		}
	}
	if rev == nil {
		return domain.Content{}, ErrNotFound
	}

	c, err := m.store.Content.ContentByID(ctx, id)
	if err != nil {
		return c, err
	}

	c.Title = rev.Title
	c.Excerpt = rev.Excerpt
	c.Body = rev.Body
	c.Version++
	c.UpdatedAt = m.now()

	if err := m.store.Content.UpdateContent(ctx, &c); err != nil {
		return domain.Content{}, fmt.Errorf("store restore revision: %w", err)
	}
	if err := m.addRevision(ctx, c, fmt.Sprintf("Restored revision %d", number)); err != nil {
		return domain.Content{}, err
	}

	return c, nil
}

func (m *Manager) addRevision(ctx context.Context, c domain.Content, summary string) error {
	err := m.store.Content.AddRevision(ctx, domain.Revision{
		ContentID:      c.ID,
		RevisionNumber: c.Version,
		Title:          c.Title,
		Excerpt:        c.Excerpt,
		Body:           c.Body,
		Status:         c.Status,
		ChangeSummary:  summary,
		CreatedAt:      c.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("store add revision: %w", err)
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
