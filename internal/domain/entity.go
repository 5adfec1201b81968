package domain

import (
	"math"
	"time"
)

// Status is the publishing state shared by posts and CMS content.
// Any status may be set from any other status.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusInReview  Status = "in_review"
	StatusApproved  Status = "approved"
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

var Statuses = []Status{
	StatusDraft, StatusInReview, StatusApproved, StatusScheduled, StatusPublished, StatusArchived,
}

func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

type SubscriberStatus string

const (
	SubscriberSubscribed   SubscriberStatus = "subscribed"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
	SubscriberBounced      SubscriberStatus = "bounced"
	SubscriberComplained   SubscriberStatus = "complained"
)

func (s SubscriberStatus) Valid() bool {
	switch s {
	case SubscriberSubscribed, SubscriberUnsubscribed, SubscriberBounced, SubscriberComplained:
		return true
	}
	return false
}

type VideoContentType string

const (
	VideoDaily           VideoContentType = "daily_video"
	VideoWeeklyWatchlist VideoContentType = "weekly_watchlist"
	VideoLearningCenter  VideoContentType = "learning_center"
	VideoRoomArchive     VideoContentType = "room_archive"
)

var VideoContentTypes = []VideoContentType{
	VideoDaily, VideoWeeklyWatchlist, VideoLearningCenter, VideoRoomArchive,
}

// PaginationMeta mirrors the meta block of every paginated admin response.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page"`
	PerPage     int  `json:"per_page"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasMore     bool `json:"has_more"`
}

func NewPaginationMeta(page, perPage, total int) PaginationMeta {
	totalPages := 0
	if perPage > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(perPage)))
	}

	return PaginationMeta{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasMore:     page < totalPages,
	}
}

type ListResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// MutationResult is the body returned by bulk and row mutations.
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type Post struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt,omitempty"`
	Content         string     `json:"content,omitempty"`
	FeaturedImage   string     `json:"featured_image,omitempty"`
	Status          Status     `json:"status"`
	IsFeatured      bool       `json:"is_featured"`
	Category        string     `json:"category,omitempty"`
	Tags            []string   `json:"tags"`
	AuthorID        int64      `json:"author_id"`
	AuthorName      string     `json:"author_name,omitempty"`
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	ViewCount       int64      `json:"view_count"`
	EngagementRate  float64    `json:"engagement_rate"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (p Post) Key() int64 { return p.ID }

type PostStats struct {
	Total      int   `json:"total"`
	Published  int   `json:"published"`
	Draft      int   `json:"draft"`
	InReview   int   `json:"in_review"`
	Scheduled  int   `json:"scheduled"`
	Archived   int   `json:"archived"`
	Featured   int   `json:"featured"`
	TotalViews int64 `json:"total_views"`
}

// Content is a CMS v2 record.
type Content struct {
	ID              string     `json:"id"`
	ContentType     string     `json:"content_type"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Status          Status     `json:"status"`
	Excerpt         string     `json:"excerpt,omitempty"`
	Body            string     `json:"body,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	FeaturedImageID string     `json:"featured_image_id,omitempty"`
	Tags            []string   `json:"tags"`
	Version         int        `json:"version"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (c Content) Key() string { return c.ID }

type Revision struct {
	ContentID      string    `json:"content_id"`
	RevisionNumber int       `json:"revision_number"`
	Title          string    `json:"title"`
	Excerpt        string    `json:"excerpt,omitempty"`
	Body           string    `json:"body,omitempty"`
	Status         Status    `json:"status"`
	ChangeSummary  string    `json:"change_summary,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type ContentStats struct {
	Total     int            `json:"total"`
	ByStatus  map[Status]int `json:"by_status"`
	Revisions int            `json:"revisions"`
}

type Subscriber struct {
	ID        int64            `json:"id"`
	Email     string           `json:"email"`
	Name      string           `json:"name,omitempty"`
	Status    SubscriberStatus `json:"status"`
	Tags      []string         `json:"tags"`
	Score     int              `json:"score"`
	CreatedAt time.Time        `json:"created_at"`
}

func (s Subscriber) Key() int64 { return s.ID }

type SubscriberStats struct {
	Total        int `json:"total"`
	Subscribed   int `json:"subscribed"`
	Unsubscribed int `json:"unsubscribed"`
	Bounced      int `json:"bounced"`
	Complained   int `json:"complained"`
}

type Video struct {
	ID           int64            `json:"id"`
	Title        string           `json:"title"`
	Slug         string           `json:"slug"`
	ContentType  VideoContentType `json:"content_type"`
	VideoURL     string           `json:"video_url"`
	ThumbnailURL string           `json:"thumbnail_url,omitempty"`
	TraderID     *int64           `json:"trader_id,omitempty"`
	RoomIDs      []int64          `json:"room_ids"`
	IsPublished  bool             `json:"is_published"`
	IsFeatured   bool             `json:"is_featured"`
	Views        int64            `json:"views"`
	PublishedAt  *time.Time       `json:"published_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (v Video) Key() int64 { return v.ID }

type VideoStats struct {
	Total         int                      `json:"total"`
	Published     int                      `json:"published"`
	ByContentType map[VideoContentType]int `json:"by_content_type"`
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// VideoOptions feeds the select boxes of the video editor.
type VideoOptions struct {
	ContentTypes []Option `json:"content_types"`
	Rooms        []Option `json:"rooms"`
	Traders      []Option `json:"traders"`
}

type Indicator struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Platforms   []string  `json:"platforms"`
	Price       float64   `json:"price"`
	IsActive    bool      `json:"is_active"`
	IsFeatured  bool      `json:"is_featured"`
	FileCount   int       `json:"file_count"`
	DocCount    int       `json:"doc_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i Indicator) Key() int64 { return i.ID }

const (
	IndicatorFilePlatform = "platform"
	IndicatorFileDoc      = "doc"
)

type IndicatorFile struct {
	ID          int64     `json:"id"`
	IndicatorID int64     `json:"indicator_id"`
	Kind        string    `json:"kind"`
	Platform    string    `json:"platform,omitempty"`
	Title       string    `json:"title,omitempty"`
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

type IndicatorStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Featured int `json:"featured"`
}

type Room struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	IsLive      bool   `json:"is_live"`
	LiveMembers int    `json:"live_members"`
}

func (r Room) Key() int64 { return r.ID }

type RoomStats struct {
	Slug        string    `json:"slug"`
	IsLive      bool      `json:"is_live"`
	LiveMembers int       `json:"live_members"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Media struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// LiveEventType names the messages carried by the posts live channel.
type LiveEventType string

const (
	LiveViewCount    LiveEventType = "view_count"
	LiveEngagement   LiveEventType = "engagement"
	LiveStatusChange LiveEventType = "status_change"
	LiveNewPost      LiveEventType = "new_post"
)

type LiveEvent struct {
	Type   LiveEventType `json:"type"`
	PostID int64         `json:"postId"`
	Count  int64         `json:"count,omitempty"`
	Rate   float64       `json:"rate,omitempty"`
	Status Status        `json:"status,omitempty"`
}
