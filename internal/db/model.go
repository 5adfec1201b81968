// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	GooseDbVersion struct {
		ID, VersionID, IsApplied, Tstamp string
	}
	Post struct {
		ID, Title, Slug, Excerpt, Content, FeaturedImage, Status, IsFeatured, Category, Tags, AuthorID, AuthorName, MetaTitle, MetaDescription, ViewCount, EngagementRate, PublishedAt, ScheduledAt, CreatedAt, UpdatedAt string
	}
	Subscriber struct {
		ID, Email, Name, Status, Tags, Score, CreatedAt string
	}
	Video struct {
		ID, Title, Slug, ContentType, VideoURL, ThumbnailURL, TraderID, RoomIDs, IsPublished, IsFeatured, Views, PublishedAt, CreatedAt, DeletedAt string
	}
}{
	GooseDbVersion: struct {
		ID, VersionID, IsApplied, Tstamp string
	}{
		ID:        "id",
		VersionID: "version_id",
		IsApplied: "is_applied",
		Tstamp:    "tstamp",
	},
	Post: struct {
		ID, Title, Slug, Excerpt, Content, FeaturedImage, Status, IsFeatured, Category, Tags, AuthorID, AuthorName, MetaTitle, MetaDescription, ViewCount, EngagementRate, PublishedAt, ScheduledAt, CreatedAt, UpdatedAt string
	}{
		ID:              "postId",
		Title:           "title",
		Slug:            "slug",
		Excerpt:         "excerpt",
		Content:         "content",
		FeaturedImage:   "featuredImage",
		Status:          "status",
		IsFeatured:      "isFeatured",
		Category:        "category",
		Tags:            "tags",
		AuthorID:        "authorId",
		AuthorName:      "authorName",
		MetaTitle:       "metaTitle",
		MetaDescription: "metaDescription",
		ViewCount:       "viewCount",
		EngagementRate:  "engagementRate",
		PublishedAt:     "publishedAt",
		ScheduledAt:     "scheduledAt",
		CreatedAt:       "createdAt",
		UpdatedAt:       "updatedAt",
	},
	Subscriber: struct {
		ID, Email, Name, Status, Tags, Score, CreatedAt string
	}{
		ID:        "subscriberId",
		Email:     "email",
		Name:      "name",
		Status:    "status",
		Tags:      "tags",
		Score:     "score",
		CreatedAt: "createdAt",
	},
	Video: struct {
		ID, Title, Slug, ContentType, VideoURL, ThumbnailURL, TraderID, RoomIDs, IsPublished, IsFeatured, Views, PublishedAt, CreatedAt, DeletedAt string
	}{
		ID:           "videoId",
		Title:        "title",
		Slug:         "slug",
		ContentType:  "contentType",
		VideoURL:     "videoUrl",
		ThumbnailURL: "thumbnailUrl",
		TraderID:     "traderId",
		RoomIDs:      "roomIds",
		IsPublished:  "isPublished",
		IsFeatured:   "isFeatured",
		Views:        "views",
		PublishedAt:  "publishedAt",
		CreatedAt:    "createdAt",
		DeletedAt:    "deletedAt",
	},
}

var Tables = struct {
	GooseDbVersion struct {
		Name, Alias string
	}
	Post struct {
		Name, Alias string
	}
	Subscriber struct {
		Name, Alias string
	}
	Video struct {
		Name, Alias string
	}
}{
	GooseDbVersion: struct {
		Name, Alias string
	}{
		Name:  "goose_db_version",
		Alias: "t",
	},
	Post: struct {
		Name, Alias string
	}{
		Name:  "posts",
		Alias: "t",
	},
	Subscriber: struct {
		Name, Alias string
	}{
		Name:  "subscribers",
		Alias: "t",
	},
	Video: struct {
		Name, Alias string
	}{
		Name:  "videos",
		Alias: "t",
	},
}

type GooseDbVersion struct {
	tableName struct{} `pg:"goose_db_version,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	VersionID int64     `pg:"version_id,use_zero"`
	IsApplied bool      `pg:"is_applied,use_zero"`
	Tstamp    time.Time `pg:"tstamp,use_zero"`
}

type Post struct {
	tableName struct{} `pg:"posts,alias:t,discard_unknown_columns"`

	ID              int64      `pg:"postId,pk"`
	Title           string     `pg:"title,use_zero"`
	Slug            string     `pg:"slug,use_zero"`
	Excerpt         *string    `pg:"excerpt"`
	Content         *string    `pg:"content"`
	FeaturedImage   *string    `pg:"featuredImage"`
	Status          string     `pg:"status,use_zero"`
	IsFeatured      bool       `pg:"isFeatured,use_zero"`
	Category        *string    `pg:"category"`
	Tags            []string   `pg:"tags,array,use_zero"`
	AuthorID        int64      `pg:"authorId,use_zero"`
	AuthorName      *string    `pg:"authorName"`
	MetaTitle       *string    `pg:"metaTitle"`
	MetaDescription *string    `pg:"metaDescription"`
	ViewCount       int64      `pg:"viewCount,use_zero"`
	EngagementRate  float64    `pg:"engagementRate,use_zero"`
	PublishedAt     *time.Time `pg:"publishedAt"`
	ScheduledAt     *time.Time `pg:"scheduledAt"`
	CreatedAt       time.Time  `pg:"createdAt,use_zero"`
	UpdatedAt       time.Time  `pg:"updatedAt,use_zero"`
}

type Subscriber struct {
	tableName struct{} `pg:"subscribers,alias:t,discard_unknown_columns"`

	ID        int64     `pg:"subscriberId,pk"`
	Email     string    `pg:"email,use_zero"`
	Name      *string   `pg:"name"`
	Status    string    `pg:"status,use_zero"`
	Tags      []string  `pg:"tags,array,use_zero"`
	Score     int       `pg:"score,use_zero"`
	CreatedAt time.Time `pg:"createdAt,use_zero"`
}

type Video struct {
	tableName struct{} `pg:"videos,alias:t,discard_unknown_columns"`

	ID           int64      `pg:"videoId,pk"`
	Title        string     `pg:"title,use_zero"`
	Slug         string     `pg:"slug,use_zero"`
	ContentType  string     `pg:"contentType,use_zero"`
	VideoURL     string     `pg:"videoUrl,use_zero"`
	ThumbnailURL *string    `pg:"thumbnailUrl"`
	TraderID     *int64     `pg:"traderId"`
	RoomIDs      []int64    `pg:"roomIds,array,use_zero"`
	IsPublished  bool       `pg:"isPublished,use_zero"`
	IsFeatured   bool       `pg:"isFeatured,use_zero"`
	Views        int64      `pg:"views,use_zero"`
	PublishedAt  *time.Time `pg:"publishedAt"`
	CreatedAt    time.Time  `pg:"createdAt,use_zero"`
	DeletedAt    time.Time  `pg:"deletedAt,soft_delete"`
}
