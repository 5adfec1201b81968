package sandbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

var ErrNotFound = errors.New("not found")

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// PostQuery is decoded from the posts list query string.
type PostQuery struct {
	Status   string
	Category string
	Search   string
	DateFrom string
	DateTo   string
	Sort     string
	Order    string
	Page     int
	PerPage  int
}

const dateLayout = "2006-01-02"

// Dates parses the inclusive yyyy-mm-dd bounds into a half open [from, to)
// range. Zero times mean no bound.
func (q PostQuery) Dates() (from, to time.Time, err error) {
	if q.DateFrom != "" {
		if from, err = time.Parse(dateLayout, q.DateFrom); err != nil {
			return from, to, &ValidationError{Err: fmt.Errorf("date_from: %w", err)}
		}
	}
	if q.DateTo != "" {
		if to, err = time.Parse(dateLayout, q.DateTo); err != nil {
			return from, to, &ValidationError{Err: fmt.Errorf("date_to: %w", err)}
		}
		to = to.AddDate(0, 0, 1)
	}
	return from, to, nil
}

type ContentQuery struct {
	ContentType string
	Status      string
	Search      string
	SortBy      string
	SortOrder   string
	Page        int
	PerPage     int
}

type SubscriberQuery struct {
	Status  string
	Search  string
	Page    int
	PerPage int
}

type VideoQuery struct {
	ContentType string
	Search      string
	IsPublished sql.NullBool
	SortBy      string
	SortDir     string
	Page        int
	PerPage     int
}

type IndicatorQuery struct {
	Search   string
	IsActive sql.NullBool
	Page     int
	PerPage  int
}

// Pager is the normalized page window of a list query.
type Pager struct {
	Page    int
	PerPage int
}

func NewPager(page, perPage int) Pager {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	// keeps Offset from overflowing
	page = min(page, math.MaxInt/MaxPerPage)
	return Pager{Page: page, PerPage: perPage}
}

func (p Pager) Offset() int { return (p.Page - 1) * p.PerPage }

type PostStore interface {
	ListPosts(ctx context.Context, q PostQuery) ([]domain.Post, int, error)
	PostByID(ctx context.Context, id int64) (domain.Post, error)
	CreatePost(ctx context.Context, p *domain.Post) error
	UpdatePost(ctx context.Context, p *domain.Post) error
	DeletePosts(ctx context.Context, ids []int64) (int, error)
	SetPostStatus(ctx context.Context, ids []int64, status domain.Status) (int, error)
	SetPostFeatured(ctx context.Context, id int64, featured bool) error
	AddPostViews(ctx context.Context, id int64, n int64) (int64, error)
	PostStats(ctx context.Context) (domain.PostStats, error)
}

type ContentStore interface {
	ListContent(ctx context.Context, q ContentQuery) ([]domain.Content, int, error)
	ContentByID(ctx context.Context, id string) (domain.Content, error)
	CreateContent(ctx context.Context, c *domain.Content) error
	UpdateContent(ctx context.Context, c *domain.Content) error
	DeleteContent(ctx context.Context, id string) error
	AddRevision(ctx context.Context, r domain.Revision) error
	Revisions(ctx context.Context, contentID string) ([]domain.Revision, error)
	ContentStats(ctx context.Context) (domain.ContentStats, error)
}

type SubscriberStore interface {
	ListSubscribers(ctx context.Context, q SubscriberQuery) ([]domain.Subscriber, int, error)
	CreateSubscriber(ctx context.Context, s *domain.Subscriber) error
	DeleteSubscriber(ctx context.Context, id int64) error
	SubscriberStats(ctx context.Context) (domain.SubscriberStats, error)
}

type VideoStore interface {
	ListVideos(ctx context.Context, q VideoQuery) ([]domain.Video, int, error)
	VideoByID(ctx context.Context, id int64) (domain.Video, error)
	CreateVideo(ctx context.Context, v *domain.Video) error
	UpdateVideo(ctx context.Context, v *domain.Video) error
	// DeleteVideos soft deletes unless force is set.
	DeleteVideos(ctx context.Context, ids []int64, force bool) (int, error)
	PublishVideos(ctx context.Context, ids []int64, publish bool) (int, error)
	VideoStats(ctx context.Context) (domain.VideoStats, error)
}

type IndicatorStore interface {
	ListIndicators(ctx context.Context, q IndicatorQuery) ([]domain.Indicator, int, error)
	IndicatorByID(ctx context.Context, id int64) (domain.Indicator, error)
	CreateIndicator(ctx context.Context, ind *domain.Indicator) error
	UpdateIndicator(ctx context.Context, ind *domain.Indicator) error
	DeleteIndicator(ctx context.Context, id int64) error
	AddIndicatorFile(ctx context.Context, f *domain.IndicatorFile) error
	IndicatorStats(ctx context.Context) (domain.IndicatorStats, error)
}

type RoomStore interface {
	Rooms(ctx context.Context) ([]domain.Room, error)
	RoomBySlug(ctx context.Context, slug string) (domain.Room, error)
}

type MediaStore interface {
	SaveMedia(ctx context.Context, m *domain.Media, data []byte) error
}

// Store groups the per-resource stores. Resources may be served by
// different backends.
type Store struct {
	Posts       PostStore
	Content     ContentStore
	Subscribers SubscriberStore
	Videos      VideoStore
	Indicators  IndicatorStore
	Rooms       RoomStore
	Media       MediaStore
}
