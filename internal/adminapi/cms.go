package adminapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

const cmsPath = adminPrefix + "/cms-v2"

func contentPath(id string) string {
	return cmsPath + "/content/" + url.PathEscape(id)
}

func (c *Client) ListContent(ctx context.Context, f ContentFilter) (domain.ListResponse[domain.Content], error) {
	var resp domain.ListResponse[domain.Content]
	err := c.do(ctx, http.MethodGet, cmsPath+"/content", f.Query(), nil, &resp)
	return resp, err
}

func (c *Client) ContentStats(ctx context.Context) (domain.ContentStats, error) {
	var stats domain.ContentStats
	err := c.do(ctx, http.MethodGet, cmsPath+"/stats", Query{}, nil, &stats)
	return stats, err
}

func (c *Client) GetContent(ctx context.Context, id string) (domain.Content, error) {
	var content domain.Content
	err := c.do(ctx, http.MethodGet, contentPath(id), Query{}, nil, &content)
	return content, err
}

func (c *Client) CreateContent(ctx context.Context, in domain.ContentInput) (domain.Content, error) {
	var content domain.Content
	if err := in.Validate(); err != nil {
		return content, fmt.Errorf("invalid content: %w", err)
	}
	err := c.do(ctx, http.MethodPost, cmsPath+"/content", Query{}, in, &content)
	return content, err
}

func (c *Client) UpdateContent(ctx context.Context, id string, in domain.ContentInput) (domain.Content, error) {
	var content domain.Content
	if err := in.Validate(); err != nil {
		return content, fmt.Errorf("invalid content: %w", err)
	}
	err := c.do(ctx, http.MethodPut, contentPath(id), Query{}, in, &content)
	return content, err
}

func (c *Client) DeleteContent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, contentPath(id), Query{}, nil, nil)
}

func (c *Client) TransitionContent(ctx context.Context, id string, status domain.Status) (domain.Content, error) {
	var content domain.Content
	err := c.do(ctx, http.MethodPost, contentPath(id)+"/status", Query{}, statusPatch{Status: status}, &content)
	return content, err
}

func (c *Client) ContentRevisions(ctx context.Context, id string) ([]domain.Revision, error) {
	var revisions []domain.Revision
	err := c.do(ctx, http.MethodGet, contentPath(id)+"/revisions", Query{}, nil, &revisions)
	return revisions, err
}

func (c *Client) RestoreRevision(ctx context.Context, id string, revision int) (domain.Content, error) {
	var content domain.Content
	path := fmt.Sprintf("%s/revisions/%d/restore", contentPath(id), revision)
	err := c.do(ctx, http.MethodPost, path, Query{}, nil, &content)
	return content, err
}
