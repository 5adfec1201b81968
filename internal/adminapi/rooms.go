package adminapi

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

func (c *Client) ListRooms(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	err := c.do(ctx, http.MethodGet, adminPrefix+"/trading-rooms", Query{}, nil, &rooms)
	return rooms, err
}

func (c *Client) RoomStats(ctx context.Context, slug string) (domain.RoomStats, error) {
	var stats domain.RoomStats
	path := adminPrefix + "/trading-rooms/" + url.PathEscape(slug) + "/stats"
	err := c.do(ctx, http.MethodGet, path, Query{}, nil, &stats)
	return stats, err
}

// UploadMedia stores a file in the media library. A failed upload is always
// returned as an error; callers must not keep a local reference instead.
func (c *Client) UploadMedia(ctx context.Context, filename string, r io.Reader) (domain.Media, error) {
	var m domain.Media
	err := c.upload(ctx, adminPrefix+"/media/upload", "file", filename, r, nil, &m)
	return m, err
}
