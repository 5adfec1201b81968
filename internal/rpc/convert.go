package rpc

import "github.com/daniilsolovey/trading-admin/internal/domain"

func NewPostSummary(p domain.Post) PostSummary {
	return PostSummary{
		PostID:      p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Status:      string(p.Status),
		Category:    p.Category,
		IsFeatured:  p.IsFeatured,
		ViewCount:   p.ViewCount,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
	}
}

func NewPost(p domain.Post) Post {
	return Post{
		PostSummary:     NewPostSummary(p),
		Excerpt:         p.Excerpt,
		Content:         p.Content,
		Tags:            p.Tags,
		AuthorName:      p.AuthorName,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
	}
}

func NewPostPage(resp domain.ListResponse[domain.Post]) PostPage {
	return PostPage{
		Posts:      NewPostSummaries(resp.Data),
		Total:      resp.Meta.Total,
		Page:       resp.Meta.CurrentPage,
		TotalPages: resp.Meta.TotalPages,
	}
}

func NewPostStats(s domain.PostStats) PostStats {
	return PostStats{
		Total:      s.Total,
		Published:  s.Published,
		Draft:      s.Draft,
		InReview:   s.InReview,
		Scheduled:  s.Scheduled,
		Archived:   s.Archived,
		Featured:   s.Featured,
		TotalViews: s.TotalViews,
	}
}

func NewRoom(r domain.Room) Room {
	return Room{
		RoomID:      r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		LiveMembers: r.LiveMembers,
	}
}
