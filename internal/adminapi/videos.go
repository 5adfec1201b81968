package adminapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

const videosPath = adminPrefix + "/unified-videos"

type bulkPublish struct {
	VideoIDs []int64 `json:"video_ids"`
	Publish  bool    `json:"publish"`
}

type bulkVideoDelete struct {
	VideoIDs []int64 `json:"video_ids"`
	Force    bool    `json:"force"`
}

func videoPath(id int64) string {
	return fmt.Sprintf("%s/%d", videosPath, id)
}

func (c *Client) ListVideos(ctx context.Context, f VideoFilter) (domain.ListResponse[domain.Video], error) {
	var resp domain.ListResponse[domain.Video]
	err := c.do(ctx, http.MethodGet, videosPath, f.Query(), nil, &resp)
	return resp, err
}

func (c *Client) VideoStats(ctx context.Context) (domain.VideoStats, error) {
	var stats domain.VideoStats
	err := c.do(ctx, http.MethodGet, videosPath+"/stats", Query{}, nil, &stats)
	return stats, err
}

func (c *Client) VideoOptions(ctx context.Context) (domain.VideoOptions, error) {
	var opts domain.VideoOptions
	err := c.do(ctx, http.MethodGet, videosPath+"/options", Query{}, nil, &opts)
	return opts, err
}

func (c *Client) GetVideo(ctx context.Context, id int64) (domain.Video, error) {
	var v domain.Video
	err := c.do(ctx, http.MethodGet, videoPath(id), Query{}, nil, &v)
	return v, err
}

func (c *Client) CreateVideo(ctx context.Context, in domain.VideoInput) (domain.Video, error) {
	var v domain.Video
	if err := in.Validate(); err != nil {
		return v, fmt.Errorf("invalid video: %w", err)
	}
	err := c.do(ctx, http.MethodPost, videosPath, Query{}, in, &v)
	return v, err
}

func (c *Client) UpdateVideo(ctx context.Context, id int64, in domain.VideoInput) (domain.Video, error) {
	var v domain.Video
	if err := in.Validate(); err != nil {
		return v, fmt.Errorf("invalid video: %w", err)
	}
	err := c.do(ctx, http.MethodPut, videoPath(id), Query{}, in, &v)
	return v, err
}

func (c *Client) DeleteVideo(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, videoPath(id), Query{}, nil, nil)
}

func (c *Client) BulkPublishVideos(ctx context.Context, ids []int64, publish bool) (domain.MutationResult, error) {
	var res domain.MutationResult
	err := c.do(ctx, http.MethodPost, videosPath+"/bulk-publish", Query{}, bulkPublish{VideoIDs: ids, Publish: publish}, &res)
	return res, err
}

func (c *Client) BulkDeleteVideos(ctx context.Context, ids []int64, force bool) (domain.MutationResult, error) {
	var res domain.MutationResult
	err := c.do(ctx, http.MethodPost, videosPath+"/bulk-delete", Query{}, bulkVideoDelete{VideoIDs: ids, Force: force}, &res)
	return res, err
}
