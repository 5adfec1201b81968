package adminapi

import (
	"strconv"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

const (
	DefaultSort  = "created_at"
	DefaultOrder = "desc"
)

// PostFilter is the list state of the posts page. Zero values are omitted
// from the query, except sort and order which fall back to defaults.
type PostFilter struct {
	Status   domain.Status
	Category string
	Search   string
	DateFrom string
	DateTo   string
	Sort     string
	Order    string
	Page     int
	PerPage  int
}

func (f PostFilter) Query() Query {
	var q Query
	q.SetNonEmpty("status", string(f.Status))
	q.SetNonEmpty("category", f.Category)
	q.SetNonEmpty("search", f.Search)
	q.SetNonEmpty("date_from", f.DateFrom)
	q.SetNonEmpty("date_to", f.DateTo)
	q.Set("sort", orDefault(f.Sort, DefaultSort))
	q.Set("order", orDefault(f.Order, DefaultOrder))
	setPage(&q, f.Page, f.PerPage)
	return q
}

type ContentFilter struct {
	ContentType string
	Status      domain.Status
	Search      string
	SortBy      string
	SortOrder   string
	Page        int
	PerPage     int
}

func (f ContentFilter) Query() Query {
	var q Query
	q.SetNonEmpty("content_type", f.ContentType)
	q.SetNonEmpty("status", string(f.Status))
	q.SetNonEmpty("search", f.Search)
	q.SetNonEmpty("sort_by", f.SortBy)
	q.SetNonEmpty("sort_order", f.SortOrder)
	setPage(&q, f.Page, f.PerPage)
	return q
}

type SubscriberFilter struct {
	Status  domain.SubscriberStatus
	Search  string
	Page    int
	PerPage int
}

func (f SubscriberFilter) Query() Query {
	var q Query
	q.SetNonEmpty("status", string(f.Status))
	q.SetNonEmpty("search", f.Search)
	setPage(&q, f.Page, f.PerPage)
	return q
}

type VideoFilter struct {
	ContentType domain.VideoContentType
	Search      string
	IsPublished *bool
	SortBy      string
	SortDir     string
	Page        int
	PerPage     int
}

func (f VideoFilter) Query() Query {
	var q Query
	q.SetNonEmpty("content_type", string(f.ContentType))
	q.SetNonEmpty("search", f.Search)
	if f.IsPublished != nil {
		q.Set("is_published", strconv.FormatBool(*f.IsPublished))
	}
	q.SetNonEmpty("sort_by", f.SortBy)
	q.SetNonEmpty("sort_dir", f.SortDir)
	setPage(&q, f.Page, f.PerPage)
	return q
}

type IndicatorFilter struct {
	Search   string
	IsActive *bool
	Page     int
	PerPage  int
}

func (f IndicatorFilter) Query() Query {
	var q Query
	q.SetNonEmpty("search", f.Search)
	if f.IsActive != nil {
		q.Set("is_active", strconv.FormatBool(*f.IsActive))
	}
	setPage(&q, f.Page, f.PerPage)
	return q
}

// setPage omits page 1, the server default.
func setPage(q *Query, page, perPage int) {
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	q.SetPositive("per_page", perPage)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
