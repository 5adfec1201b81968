package sandbox

import (
	"context"
	"fmt"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

var videoTypeLabels = map[domain.VideoContentType]string{
	domain.VideoDaily:           "Daily Video",
	domain.VideoWeeklyWatchlist: "Weekly Watchlist",
	domain.VideoLearningCenter:  "Learning Center",
	domain.VideoRoomArchive:     "Room Archive",
}

func (m *Manager) ListVideos(ctx context.Context, q VideoQuery) (domain.ListResponse[domain.Video], error) {
	pager := NewPager(q.Page, q.PerPage)
	q.Page, q.PerPage = pager.Page, pager.PerPage

	videos, total, err := m.store.Videos.ListVideos(ctx, q)
	if err != nil {
		return domain.ListResponse[domain.Video]{}, fmt.Errorf("store list videos: %w", err)
	}

	return domain.ListResponse[domain.Video]{
		Data: nonNil(videos),
		Meta: domain.NewPaginationMeta(pager.Page, pager.PerPage, total),
	}, nil
}

func (m *Manager) VideoStats(ctx context.Context) (domain.VideoStats, error) {
	return m.store.Videos.VideoStats(ctx)
}

// VideoOptions lists content types and rooms for the video editor.
func (m *Manager) VideoOptions(ctx context.Context) (domain.VideoOptions, error) {
	opts := domain.VideoOptions{Traders: []domain.Option{}}
	for _, t := range domain.VideoContentTypes {
		opts.ContentTypes = append(opts.ContentTypes, domain.Option{Value: string(t), Label: videoTypeLabels[t]})
	}

	rooms, err := m.store.Rooms.Rooms(ctx)
	if err != nil {
		return opts, fmt.Errorf("store rooms: %w", err)
	}
	opts.Rooms = make([]domain.Option, 0, len(rooms))
	for _, r := range rooms {
		opts.Rooms = append(opts.Rooms, domain.Option{Value: fmt.Sprint(r.ID), Label: r.Name})
	}

	return opts, nil
}

func (m *Manager) GetVideo(ctx context.Context, id int64) (domain.Video, error) {
	return m.store.Videos.VideoByID(ctx, id)
}

func (m *Manager) CreateVideo(ctx context.Context, in domain.VideoInput) (domain.Video, error) {
	if err := in.Validate(); err != nil {
		return domain.Video{}, invalid(err)
	}

	s, err := makeSlug(in.Slug, in.Title)
	if err != nil {
		return domain.Video{}, invalid(err)
	}

	now := m.now()
	v := domain.Video{CreatedAt: now}
	applyVideoInput(&v, in, s)
	if v.IsPublished {
		v.PublishedAt = &now
	}

	if err := m.store.Videos.CreateVideo(ctx, &v); err != nil {
		return domain.Video{}, fmt.Errorf("store create video: %w", err)
	}
	return v, nil
}

func (m *Manager) UpdateVideo(ctx context.Context, id int64, in domain.VideoInput) (domain.Video, error) {
	if err := in.Validate(); err != nil {
		return domain.Video{}, invalid(err)
	}

	v, err := m.store.Videos.VideoByID(ctx, id)
	if err != nil {
		return v, err
	}

	s, err := makeSlug(in.Slug, in.Title)
	if err != nil {
		return domain.Video{}, invalid(err)
	}

	applyVideoInput(&v, in, s)
	if v.IsPublished && v.PublishedAt == nil {
		now := m.now()
		v.PublishedAt = &now
	}

	if err := m.store.Videos.UpdateVideo(ctx, &v); err != nil {
		return domain.Video{}, fmt.Errorf("store update video: %w", err)
	}
	return v, nil
}

func applyVideoInput(v *domain.Video, in domain.VideoInput, s string) {
	v.Title = in.Title
	v.Slug = s
	v.ContentType = in.ContentType
	v.VideoURL = in.VideoURL
	v.ThumbnailURL = in.ThumbnailURL
	v.TraderID = in.TraderID
	v.RoomIDs = nonNil(in.RoomIDs)
	v.IsPublished = in.IsPublished
	v.IsFeatured = in.IsFeatured
}

func (m *Manager) DeleteVideo(ctx context.Context, id int64) error {
	n, err := m.store.Videos.DeleteVideos(ctx, []int64{id}, false)
	if err != nil {
		return fmt.Errorf("store delete video: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Manager) BulkPublishVideos(ctx context.Context, ids []int64, publish bool) (domain.MutationResult, error) {
	if len(ids) == 0 {
		return domain.MutationResult{}, invalid(fmt.Errorf("video_ids: cannot be blank"))
	}

	n, err := m.store.Videos.PublishVideos(ctx, ids, publish)
	if err != nil {
		return domain.MutationResult{}, fmt.Errorf("store publish videos: %w", err)
	}

	verb := "published"
	if !publish {
		verb = "unpublished"
	}
	return bulkResult(n, "videos", verb), nil
}

// BulkDeleteVideos soft deletes videos, or removes them for good with force.
func (m *Manager) BulkDeleteVideos(ctx context.Context, ids []int64, force bool) (domain.MutationResult, error) {
	if len(ids) == 0 {
		return domain.MutationResult{}, invalid(fmt.Errorf("video_ids: cannot be blank"))
	}

	n, err := m.store.Videos.DeleteVideos(ctx, ids, force)
	if err != nil {
		return domain.MutationResult{}, fmt.Errorf("store delete videos: %w", err)
	}
	return bulkResult(n, "videos", "deleted"), nil
}
