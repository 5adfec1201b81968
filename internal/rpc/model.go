package rpc

import (
	"time"

	"github.com/daniilsolovey/trading-admin/internal/sandbox"
)

type PostFilter struct {
	//status optional status filter
	Status *string `json:"status,omitempty"`
	//category optional category filter
	Category *string `json:"category,omitempty"`
	//search optional title and excerpt search
	Search *string `json:"search,omitempty"`
	//sort=created_at sort column
	Sort *string `json:"sort,omitempty"`
	//order=desc sort direction
	Order *string `json:"order,omitempty"`
	//page=1 page number (1-based)
	Page *int `json:"page,omitempty"`
	//pageSize=20 items per page
	PageSize *int `json:"pageSize,omitempty"`
}

func (f PostFilter) ToQuery() sandbox.PostQuery {
	return sandbox.PostQuery{
		Status:   deref(f.Status),
		Category: deref(f.Category),
		Search:   deref(f.Search),
		Sort:     deref(f.Sort),
		Order:    deref(f.Order),
		Page:     deref(f.Page),
		PerPage:  deref(f.PageSize),
	}
}

type PostSummary struct {
	PostID      int64      `json:"postId"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Status      string     `json:"status"`
	Category    string     `json:"category"`
	IsFeatured  bool       `json:"isFeatured"`
	ViewCount   int64      `json:"viewCount"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type Post struct {
	PostSummary
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content"`
	Tags            []string `json:"tags"`
	AuthorName      string   `json:"authorName"`
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
}

type PostPage struct {
	Posts      PostSummaries `json:"posts"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

type PostStats struct {
	Total      int   `json:"total"`
	Published  int   `json:"published"`
	Draft      int   `json:"draft"`
	InReview   int   `json:"inReview"`
	Scheduled  int   `json:"scheduled"`
	Archived   int   `json:"archived"`
	Featured   int   `json:"featured"`
	TotalViews int64 `json:"totalViews"`
}

type DashboardStats struct {
	Posts             PostStats      `json:"posts"`
	Content           int            `json:"content"`
	Revisions         int            `json:"revisions"`
	Subscribers       int            `json:"subscribers"`
	ActiveSubscribers int            `json:"activeSubscribers"`
	Videos            int            `json:"videos"`
	VideosByType      map[string]int `json:"videosByType"`
	Indicators        int            `json:"indicators"`
	LiveRooms         Rooms          `json:"liveRooms"`
}

type Room struct {
	RoomID      int64  `json:"roomId"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	LiveMembers int    `json:"liveMembers"`
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
