package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/live"
	"github.com/daniilsolovey/trading-admin/internal/notify"
)

// RoomsPage lists trading rooms and keeps their live member counts fresh.
type RoomsPage struct {
	env    Env
	poller *live.Poller

	mu    sync.Mutex
	rooms []domain.Room
	stats map[string]domain.RoomStats
}

func NewRoomsPage(env Env) *RoomsPage {
	return &RoomsPage{env: env, stats: make(map[string]domain.RoomStats)}
}

func (p *RoomsPage) Name() string { return "rooms" }

// Mount loads the rooms and their stats, then polls the stats every
// PollInterval when one is configured.
func (p *RoomsPage) Mount(ctx context.Context) error {
	if err := p.Reload(ctx); err != nil {
		return err
	}
	if p.env.PollInterval <= 0 {
		return nil
	}

	p.poller = live.NewPoller(p.env.log())
	if err := p.poller.Every(p.env.PollInterval, "room stats", p.RefreshStats); err != nil {
		return err
	}
	p.poller.Start()
	return nil
}

func (p *RoomsPage) Close() {
	if p.poller != nil {
		p.poller.Stop()
	}
}

func (p *RoomsPage) Reload(ctx context.Context) error {
	rooms, err := p.env.Client.ListRooms(ctx)
	if err != nil {
		p.env.log().Error("load rooms failed", "error", err)
		p.env.notice(notify.LevelError, "Failed to load trading rooms")
		return fmt.Errorf("load rooms: %w", err)
	}

	p.mu.Lock()
	p.rooms = rooms
	p.mu.Unlock()

	return p.RefreshStats(ctx)
}

// RefreshStats fetches live stats of every room concurrently. Rooms whose
// stats fail keep their previous values.
func (p *RoomsPage) RefreshStats(ctx context.Context) error {
	rooms := p.Rooms()
	results := make([]domain.RoomStats, len(rooms))
	errs := make([]error, len(rooms))

	var g errgroup.Group
	g.SetLimit(4)
	for i, r := range rooms {
		g.Go(func() error {
			results[i], errs[i] = p.env.Client.RoomStats(ctx, r.Slug)
			return nil
		})
	}
	_ = g.Wait()

	p.mu.Lock()
	for i, r := range rooms {
		if errs[i] == nil {
			p.stats[r.Slug] = results[i]
		}
	}
	p.mu.Unlock()

	if err := errors.Join(errs...); err != nil {
		p.env.log().Warn("refresh room stats failed", "error", err)
		return err
	}
	return nil
}

func (p *RoomsPage) Rooms() []domain.Room {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Room(nil), p.rooms...)
}

// Live returns the latest polled stats of a room.
func (p *RoomsPage) Live(slug string) (domain.RoomStats, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.stats[slug]
	return st, ok
}

func (p *RoomsPage) Render(w io.Writer) {
	t := newTable(w, "ID", "Room", "Slug", "Live", "Members", "Updated")
	for _, r := range p.Rooms() {
		isLive, members, updated := r.IsLive, r.LiveMembers, "-"
		if st, ok := p.Live(r.Slug); ok {
			isLive, members = st.IsLive, st.LiveMembers
			updated = st.UpdatedAt.Format("15:04:05")
		}
		t.Append([]string{i64(r.ID), r.Name, r.Slug, yesNo(isLive), strconv.Itoa(members), updated})
	}
	t.Render()
}

func (p *RoomsPage) Commands() map[string]Command {
	return map[string]Command{
		"reload": {Usage: "reload", Run: func(ctx context.Context, _ []string) error {
			return p.Reload(ctx)
		}},
		"refresh": {Usage: "refresh", Run: func(ctx context.Context, _ []string) error {
			return p.RefreshStats(ctx)
		}},
	}
}
