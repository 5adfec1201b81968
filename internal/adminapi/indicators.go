package adminapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

const indicatorsPath = adminPrefix + "/indicators"

// Toggleable indicator flags.
const (
	ToggleActive   = "is_active"
	ToggleFeatured = "is_featured"
)

type toggleField struct {
	Field string `json:"field"`
}

func indicatorPath(id int64) string {
	return fmt.Sprintf("%s/%d", indicatorsPath, id)
}

func (c *Client) ListIndicators(ctx context.Context, f IndicatorFilter) (domain.ListResponse[domain.Indicator], error) {
	var resp domain.ListResponse[domain.Indicator]
	err := c.do(ctx, http.MethodGet, indicatorsPath, f.Query(), nil, &resp)
	return resp, err
}

func (c *Client) IndicatorStats(ctx context.Context) (domain.IndicatorStats, error) {
	var stats domain.IndicatorStats
	err := c.do(ctx, http.MethodGet, indicatorsPath+"/stats", Query{}, nil, &stats)
	return stats, err
}

func (c *Client) CreateIndicator(ctx context.Context, in domain.IndicatorInput) (domain.Indicator, error) {
	var ind domain.Indicator
	if err := in.Validate(); err != nil {
		return ind, fmt.Errorf("invalid indicator: %w", err)
	}
	err := c.do(ctx, http.MethodPost, indicatorsPath, Query{}, in, &ind)
	return ind, err
}

func (c *Client) UpdateIndicator(ctx context.Context, id int64, in domain.IndicatorInput) (domain.Indicator, error) {
	var ind domain.Indicator
	if err := in.Validate(); err != nil {
		return ind, fmt.Errorf("invalid indicator: %w", err)
	}
	err := c.do(ctx, http.MethodPut, indicatorPath(id), Query{}, in, &ind)
	return ind, err
}

func (c *Client) DeleteIndicator(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, indicatorPath(id), Query{}, nil, nil)
}

// ToggleIndicator flips ToggleActive or ToggleFeatured.
func (c *Client) ToggleIndicator(ctx context.Context, id int64, field string) (domain.Indicator, error) {
	var ind domain.Indicator
	err := c.do(ctx, http.MethodPatch, indicatorPath(id)+"/toggle", Query{}, toggleField{Field: field}, &ind)
	return ind, err
}

func (c *Client) UploadIndicatorFile(ctx context.Context, id int64, platform, filename string, r io.Reader) (domain.IndicatorFile, error) {
	var f domain.IndicatorFile
	fields := map[string]string{"platform": platform}
	err := c.upload(ctx, indicatorPath(id)+"/files", "file", filename, r, fields, &f)
	return f, err
}

func (c *Client) UploadIndicatorDoc(ctx context.Context, id int64, title, filename string, r io.Reader) (domain.IndicatorFile, error) {
	var f domain.IndicatorFile
	fields := map[string]string{"title": title}
	err := c.upload(ctx, indicatorPath(id)+"/docs", "file", filename, r, fields, &f)
	return f, err
}
