package adminapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

const postsPath = adminPrefix + "/posts"

type bulkIDs struct {
	IDs []int64 `json:"ids"`
}

type bulkStatus struct {
	IDs    []int64       `json:"ids"`
	Status domain.Status `json:"status"`
}

type statusPatch struct {
	Status domain.Status `json:"status"`
}

type featuredPatch struct {
	IsFeatured bool `json:"is_featured"`
}

func postPath(id int64) string {
	return fmt.Sprintf("%s/%d", postsPath, id)
}

func (c *Client) ListPosts(ctx context.Context, f PostFilter) (domain.ListResponse[domain.Post], error) {
	var resp domain.ListResponse[domain.Post]
	err := c.do(ctx, http.MethodGet, postsPath, f.Query(), nil, &resp)
	return resp, err
}

func (c *Client) PostStats(ctx context.Context) (domain.PostStats, error) {
	var stats domain.PostStats
	err := c.do(ctx, http.MethodGet, postsPath+"/stats", Query{}, nil, &stats)
	return stats, err
}

func (c *Client) CreatePost(ctx context.Context, in domain.PostInput) (domain.Post, error) {
	var post domain.Post
	if err := in.Validate(); err != nil {
		return post, fmt.Errorf("invalid post: %w", err)
	}
	err := c.do(ctx, http.MethodPost, postsPath, Query{}, in, &post)
	return post, err
}

func (c *Client) UpdatePost(ctx context.Context, id int64, in domain.PostInput) (domain.Post, error) {
	var post domain.Post
	if err := in.Validate(); err != nil {
		return post, fmt.Errorf("invalid post: %w", err)
	}
	err := c.do(ctx, http.MethodPut, postPath(id), Query{}, in, &post)
	return post, err
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, postPath(id), Query{}, nil, nil)
}

func (c *Client) DuplicatePost(ctx context.Context, id int64) (domain.Post, error) {
	var post domain.Post
	err := c.do(ctx, http.MethodPost, postPath(id)+"/duplicate", Query{}, nil, &post)
	return post, err
}

func (c *Client) SetPostStatus(ctx context.Context, id int64, status domain.Status) error {
	return c.do(ctx, http.MethodPatch, postPath(id)+"/status", Query{}, statusPatch{Status: status}, nil)
}

func (c *Client) SetPostFeatured(ctx context.Context, id int64, featured bool) error {
	return c.do(ctx, http.MethodPatch, postPath(id)+"/featured", Query{}, featuredPatch{IsFeatured: featured}, nil)
}

func (c *Client) BulkDeletePosts(ctx context.Context, ids []int64) (domain.MutationResult, error) {
	var res domain.MutationResult
	err := c.do(ctx, http.MethodPost, postsPath+"/bulk-delete", Query{}, bulkIDs{IDs: ids}, &res)
	return res, err
}

func (c *Client) BulkPostStatus(ctx context.Context, ids []int64, status domain.Status) (domain.MutationResult, error) {
	var res domain.MutationResult
	err := c.do(ctx, http.MethodPost, postsPath+"/bulk-status", Query{}, bulkStatus{IDs: ids, Status: status}, &res)
	return res, err
}

// ExportPosts downloads posts in the given format (csv or json). Empty ids
// exports everything.
func (c *Client) ExportPosts(ctx context.Context, format string, ids []int64) (Blob, error) {
	var q Query
	q.Set("format", orDefault(format, "csv"))
	q.SetNonEmpty("ids", joinIDs(ids))
	return c.download(ctx, postsPath+"/export", q)
}

func (c *Client) ImportPosts(ctx context.Context, filename string, r io.Reader) (domain.MutationResult, error) {
	var res domain.MutationResult
	err := c.upload(ctx, postsPath+"/import", "file", filename, r, nil, &res)
	return res, err
}
