package db

import (
	"github.com/daniilsolovey/trading-admin/internal/domain"
)

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func newPost(p domain.Post) *Post {
	return &Post{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Excerpt:         strPtr(p.Excerpt),
		Content:         strPtr(p.Content),
		FeaturedImage:   strPtr(p.FeaturedImage),
		Status:          string(p.Status),
		IsFeatured:      p.IsFeatured,
		Category:        strPtr(p.Category),
		Tags:            orEmpty(p.Tags),
		AuthorID:        p.AuthorID,
		AuthorName:      strPtr(p.AuthorName),
		MetaTitle:       strPtr(p.MetaTitle),
		MetaDescription: strPtr(p.MetaDescription),
		ViewCount:       p.ViewCount,
		EngagementRate:  p.EngagementRate,
		PublishedAt:     p.PublishedAt,
		ScheduledAt:     p.ScheduledAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (p Post) ToDomain() domain.Post {
	return domain.Post{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Excerpt:         strVal(p.Excerpt),
		Content:         strVal(p.Content),
		FeaturedImage:   strVal(p.FeaturedImage),
		Status:          domain.Status(p.Status),
		IsFeatured:      p.IsFeatured,
		Category:        strVal(p.Category),
		Tags:            orEmpty(p.Tags),
		AuthorID:        p.AuthorID,
		AuthorName:      strVal(p.AuthorName),
		MetaTitle:       strVal(p.MetaTitle),
		MetaDescription: strVal(p.MetaDescription),
		ViewCount:       p.ViewCount,
		EngagementRate:  p.EngagementRate,
		PublishedAt:     p.PublishedAt,
		ScheduledAt:     p.ScheduledAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func newSubscriber(s domain.Subscriber) *Subscriber {
	return &Subscriber{
		ID:        s.ID,
		Email:     s.Email,
		Name:      strPtr(s.Name),
		Status:    string(s.Status),
		Tags:      orEmpty(s.Tags),
		Score:     s.Score,
		CreatedAt: s.CreatedAt,
	}
}

func (s Subscriber) ToDomain() domain.Subscriber {
	return domain.Subscriber{
		ID:        s.ID,
		Email:     s.Email,
		Name:      strVal(s.Name),
		Status:    domain.SubscriberStatus(s.Status),
		Tags:      orEmpty(s.Tags),
		Score:     s.Score,
		CreatedAt: s.CreatedAt,
	}
}

func newVideo(v domain.Video) *Video {
	return &Video{
		ID:           v.ID,
		Title:        v.Title,
		Slug:         v.Slug,
		ContentType:  string(v.ContentType),
		VideoURL:     v.VideoURL,
		ThumbnailURL: strPtr(v.ThumbnailURL),
		TraderID:     v.TraderID,
		RoomIDs:      orEmpty(v.RoomIDs),
		IsPublished:  v.IsPublished,
		IsFeatured:   v.IsFeatured,
		Views:        v.Views,
		PublishedAt:  v.PublishedAt,
		CreatedAt:    v.CreatedAt,
	}
}

func (v Video) ToDomain() domain.Video {
	return domain.Video{
		ID:           v.ID,
		Title:        v.Title,
		Slug:         v.Slug,
		ContentType:  domain.VideoContentType(v.ContentType),
		VideoURL:     v.VideoURL,
		ThumbnailURL: strVal(v.ThumbnailURL),
		TraderID:     v.TraderID,
		RoomIDs:      orEmpty(v.RoomIDs),
		IsPublished:  v.IsPublished,
		IsFeatured:   v.IsFeatured,
		Views:        v.Views,
		PublishedAt:  v.PublishedAt,
		CreatedAt:    v.CreatedAt,
	}
}
