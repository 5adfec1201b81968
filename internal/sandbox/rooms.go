package sandbox

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

func (m *Manager) Rooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := m.store.Rooms.Rooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("store rooms: %w", err)
	}
	return nonNil(rooms), nil
}

func (m *Manager) RoomStats(ctx context.Context, slug string) (domain.RoomStats, error) {
	r, err := m.store.Rooms.RoomBySlug(ctx, slug)
	if err != nil {
		return domain.RoomStats{}, err
	}

	return domain.RoomStats{
		Slug:        r.Slug,
		IsLive:      r.IsLive,
		LiveMembers: r.LiveMembers,
		UpdatedAt:   m.now(),
	}, nil
}

func (m *Manager) UploadMedia(ctx context.Context, filename string, data []byte) (domain.Media, error) {
	if len(data) == 0 {
		return domain.Media{}, invalid(fmt.Errorf("file: cannot be empty"))
	}

	media := domain.Media{
		Filename: path.Base(filename),
		MimeType: http.DetectContentType(data),
	}
	if err := m.store.Media.SaveMedia(ctx, &media, data); err != nil {
		return domain.Media{}, fmt.Errorf("store save media: %w", err)
	}
	return media, nil
}
