package sandbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

func (m *Manager) ListSubscribers(ctx context.Context, q SubscriberQuery) (domain.ListResponse[domain.Subscriber], error) {
	pager := NewPager(q.Page, q.PerPage)
	q.Page, q.PerPage = pager.Page, pager.PerPage

	subs, total, err := m.store.Subscribers.ListSubscribers(ctx, q)
	if err != nil {
		return domain.ListResponse[domain.Subscriber]{}, fmt.Errorf("store list subscribers: %w", err)
	}

	return domain.ListResponse[domain.Subscriber]{
		Data: nonNil(subs),
		Meta: domain.NewPaginationMeta(pager.Page, pager.PerPage, total),
	}, nil
}

func (m *Manager) SubscriberStats(ctx context.Context) (domain.SubscriberStats, error) {
	return m.store.Subscribers.SubscriberStats(ctx)
}

func (m *Manager) CreateSubscriber(ctx context.Context, in domain.SubscriberInput) (domain.Subscriber, error) {
	if err := in.Validate(); err != nil {
		return domain.Subscriber{}, invalid(err)
	}

	s := domain.Subscriber{
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Name:      in.Name,
		Status:    in.Status,
		Tags:      nonNil(in.Tags),
		CreatedAt: m.now(),
	}
	if s.Status == "" {
		s.Status = domain.SubscriberSubscribed
	}

	if err := m.store.Subscribers.CreateSubscriber(ctx, &s); err != nil {
		return domain.Subscriber{}, fmt.Errorf("store create subscriber: %w", err)
	}
	return s, nil
}

func (m *Manager) DeleteSubscriber(ctx context.Context, id int64) error {
	return m.store.Subscribers.DeleteSubscriber(ctx, id)
}
