package memory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

var seedTickers = []string{"NVDA", "TSLA", "AAPL", "SPY", "QQQ", "AMD", "MSFT", "META", "AMZN", "GOOGL", "NFLX", "COIN"}

var seedStatuses = []domain.Status{
	domain.StatusPublished, domain.StatusDraft, domain.StatusPublished, domain.StatusInReview,
	domain.StatusScheduled, domain.StatusPublished, domain.StatusArchived,
}

// Seed fills an empty store with demo records dated relative to now.
func (s *Store) Seed(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := []string{"market-analysis", "education", "news"}
	for i, ticker := range seedTickers {
		created := now.AddDate(0, 0, -i*3)
		p := domain.Post{
			ID:              s.nextID(),
			Title:           fmt.Sprintf("%s weekly setup and key levels", ticker),
			Slug:            fmt.Sprintf("%s-weekly-setup", lower(ticker)),
			Excerpt:         fmt.Sprintf("What we are watching on %s this week.", ticker),
			Content:         fmt.Sprintf("## %s\n\nSupport and resistance for the coming sessions.", ticker),
			Status:          seedStatuses[i%len(seedStatuses)],
			IsFeatured:      i%5 == 0,
			Category:        categories[i%len(categories)],
			Tags:            []string{lower(ticker), "swing"},
			AuthorID:        1,
			AuthorName:      "Desk",
			MetaDescription: fmt.Sprintf("%s levels for the week.", ticker),
			ViewCount:       int64(1000 - i*70),
			EngagementRate:  float64(12-i) / 2,
			CreatedAt:       created,
			UpdatedAt:       created,
		}
		if p.Status == domain.StatusPublished {
			published := created
			p.PublishedAt = &published
		}
		s.posts[p.ID] = p
	}

	for i, title := range []string{"Options basics", "Risk management", "About us"} {
		created := now.AddDate(0, 0, -i)
		c := domain.Content{
			ID:          uuid.NewString(),
			ContentType: []string{"course", "course", "page"}[i],
			Title:       title,
			Slug:        lower(title),
			Status:      domain.StatusDraft,
			Body:        title + " body",
			Tags:        []string{},
			Version:     1,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
		s.content[c.ID] = c
		s.revisions[c.ID] = []domain.Revision{{
			ContentID:      c.ID,
			RevisionNumber: 1,
			Title:          c.Title,
			Body:           c.Body,
			Status:         c.Status,
			ChangeSummary:  "Created",
			CreatedAt:      created,
		}}
	}

	subStatuses := []domain.SubscriberStatus{
		domain.SubscriberSubscribed, domain.SubscriberSubscribed, domain.SubscriberUnsubscribed,
		domain.SubscriberSubscribed, domain.SubscriberBounced,
	}
	for i := range 10 {
		sub := domain.Subscriber{
			ID:        s.nextID(),
			Email:     fmt.Sprintf("trader%02d@example.com", i+1),
			Name:      fmt.Sprintf("Trader %d", i+1),
			Status:    subStatuses[i%len(subStatuses)],
			Tags:      []string{},
			Score:     50 + i,
			CreatedAt: now.Add(-time.Duration(i) * time.Hour),
		}
		s.subscribers[sub.ID] = sub
	}

	s.rooms = []domain.Room{
		{ID: s.nextID(), Name: "Day Trading Room", Slug: "day-trading-room", IsLive: true, LiveMembers: 42},
		{ID: s.nextID(), Name: "Swing Trading Room", Slug: "swing-trading-room"},
		{ID: s.nextID(), Name: "Small Account Mentorship", Slug: "small-account-mentorship"},
	}

	for i, ct := range []domain.VideoContentType{
		domain.VideoDaily, domain.VideoWeeklyWatchlist, domain.VideoLearningCenter, domain.VideoRoomArchive, domain.VideoDaily,
	} {
		created := now.AddDate(0, 0, -i)
		v := domain.Video{
			ID:          s.nextID(),
			Title:       fmt.Sprintf("Session recap %d", i+1),
			Slug:        fmt.Sprintf("session-recap-%d", i+1),
			ContentType: ct,
			VideoURL:    fmt.Sprintf("https://video.example.com/%d.mp4", i+1),
			RoomIDs:     []int64{s.rooms[i%len(s.rooms)].ID},
			IsPublished: i%2 == 0,
			Views:       int64(300 - i*40),
			CreatedAt:   created,
		}
		if v.IsPublished {
			published := created
			v.PublishedAt = &published
		}
		s.videos[v.ID] = v
	}

	for i, name := range []string{"Volume Profile Pro", "Momentum Scanner"} {
		ind := domain.Indicator{
			ID:          s.nextID(),
			Name:        name,
			Slug:        lower(name),
			Description: name + " for ThinkOrSwim and TradingView.",
			Platforms:   []string{"thinkorswim", "tradingview"},
			Price:       float64(99 + i*50),
			IsActive:    true,
			IsFeatured:  i == 0,
			CreatedAt:   now.AddDate(0, -1, -i),
		}
		s.indicators[ind.ID] = ind
	}
}

func lower(v string) string {
	return strings.ReplaceAll(strings.ToLower(v), " ", "-")
}
