package live

import (
	"context"
	"errors"
	"log/slog"

	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/listctl"
)

// PostTarget is the loaded posts page the reducer patches.
type PostTarget interface {
	Patch(id int64, fn func(*domain.Post)) bool
	Reload(ctx context.Context) error
}

// PostReducer applies live events to the posts page: field updates are
// patched in place by id, anything structural or unknown reloads the list.
type PostReducer struct {
	target PostTarget
	log    *slog.Logger
}

func NewPostReducer(target PostTarget, logger *slog.Logger) *PostReducer {
	return &PostReducer{target: target, log: logger}
}

// Handle satisfies Handler.
func (r *PostReducer) Handle(ctx context.Context, ev domain.LiveEvent) {
	switch ev.Type {
	case domain.LiveViewCount:
		r.patch(ev, func(p *domain.Post) { p.ViewCount = ev.Count })
	case domain.LiveEngagement:
		r.patch(ev, func(p *domain.Post) { p.EngagementRate = ev.Rate })
	case domain.LiveStatusChange:
		r.patch(ev, func(p *domain.Post) { p.Status = ev.Status })
	default:
		r.log.Debug("live event triggers reload", "type", ev.Type, "post_id", ev.PostID)
		if err := r.target.Reload(ctx); err != nil && !errors.Is(err, listctl.ErrStaleResponse) {
			r.log.Error("live reload failed", "error", err)
		}
	}
}

func (r *PostReducer) patch(ev domain.LiveEvent, fn func(*domain.Post)) {
	if !r.target.Patch(ev.PostID, fn) {
		r.log.Debug("live event for post not on page", "type", ev.Type, "post_id", ev.PostID)
	}
}
