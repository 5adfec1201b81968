package adminapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

const subscribersPath = adminPrefix + "/email/subscribers"

func (c *Client) ListSubscribers(ctx context.Context, f SubscriberFilter) (domain.ListResponse[domain.Subscriber], error) {
	var resp domain.ListResponse[domain.Subscriber]
	err := c.do(ctx, http.MethodGet, subscribersPath, f.Query(), nil, &resp)
	return resp, err
}

func (c *Client) SubscriberStats(ctx context.Context) (domain.SubscriberStats, error) {
	var stats domain.SubscriberStats
	err := c.do(ctx, http.MethodGet, subscribersPath+"/stats", Query{}, nil, &stats)
	return stats, err
}

func (c *Client) CreateSubscriber(ctx context.Context, in domain.SubscriberInput) (domain.Subscriber, error) {
	var sub domain.Subscriber
	if err := in.Validate(); err != nil {
		return sub, fmt.Errorf("invalid subscriber: %w", err)
	}
	err := c.do(ctx, http.MethodPost, subscribersPath, Query{}, in, &sub)
	return sub, err
}

func (c *Client) DeleteSubscriber(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", subscribersPath, id), Query{}, nil, nil)
}

// ExportSubscribers downloads the subscriber list as CSV.
func (c *Client) ExportSubscribers(ctx context.Context, f SubscriberFilter) (Blob, error) {
	q := f.Query()
	q.Set("format", "csv")
	return c.download(ctx, subscribersPath+"/export", q)
}
