package rpc

import (
	"context"
	"errors"

	"github.com/vmkteam/zenrpc/v2"
	"golang.org/x/sync/errgroup"

	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/sandbox"
)

//go:generate zenrpc

// DashboardService exposes read-only admin views over JSON-RPC.
type DashboardService struct {
	zenrpc.Service
	manager *sandbox.Manager
}

func NewDashboardService(manager *sandbox.Manager) *DashboardService {
	return &DashboardService{manager: manager}
}

// Posts returns one page of posts matching the filter, newest first by default.
//
//zenrpc:filter post filter
//zenrpc:return page of post summaries
//zenrpc:422 invalid filter
//zenrpc:500 internal server error
func (s *DashboardService) Posts(ctx context.Context, filter PostFilter) (*PostPage, error) {
	resp, err := s.manager.ListPosts(ctx, filter.ToQuery())
	if err != nil {
		return nil, rpcError(err)
	}

	page := NewPostPage(resp)
	return &page, nil
}

// Post returns a single post with its content.
//
//zenrpc:id post numeric ID
//zenrpc:return post with content
//zenrpc:400 id must be positive
//zenrpc:404 post not found
//zenrpc:500 internal server error
func (s *DashboardService) Post(ctx context.Context, id int64) (*Post, error) {
	if id <= 0 {
		return nil, zenrpc.NewStringError(400, "id must be positive")
	}

	p, err := s.manager.PostByID(ctx, id)
	if err != nil {
		return nil, rpcError(err)
	}

	post := NewPost(p)
	return &post, nil
}

// Stats collects the counters of every admin section.
//
//zenrpc:return dashboard counters
//zenrpc:500 internal server error
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var (
		posts      domain.PostStats
		content    domain.ContentStats
		subs       domain.SubscriberStats
		videos     domain.VideoStats
		indicators domain.IndicatorStats
		rooms      []domain.Room
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { posts, err = s.manager.PostStats(gctx); return })
	g.Go(func() (err error) { content, err = s.manager.ContentStats(gctx); return })
	g.Go(func() (err error) { subs, err = s.manager.SubscriberStats(gctx); return })
	g.Go(func() (err error) { videos, err = s.manager.VideoStats(gctx); return })
	g.Go(func() (err error) { indicators, err = s.manager.IndicatorStats(gctx); return })
	g.Go(func() (err error) { rooms, err = s.manager.Rooms(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, rpcError(err)
	}

	stats := DashboardStats{
		Posts:             NewPostStats(posts),
		Content:           content.Total,
		Revisions:         content.Revisions,
		Subscribers:       subs.Total,
		ActiveSubscribers: subs.Subscribed,
		Videos:            videos.Total,
		VideosByType:      make(map[string]int, len(videos.ByContentType)),
		Indicators:        indicators.Total,
		LiveRooms:         Rooms{},
	}
	for ct, n := range videos.ByContentType {
		stats.VideosByType[string(ct)] = n
	}
	for _, r := range rooms {
		if r.IsLive {
			stats.LiveRooms = append(stats.LiveRooms, NewRoom(r))
		}
	}

	return &stats, nil
}

func rpcError(err error) error {
	var verr *sandbox.ValidationError
	switch {
	case errors.As(err, &verr):
		return zenrpc.NewStringError(422, verr.Error())
	case errors.Is(err, sandbox.ErrNotFound):
		return zenrpc.NewStringError(404, "not found")
	default:
		return err
	}
}
