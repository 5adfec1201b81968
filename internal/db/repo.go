package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"

	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/sandbox"
)

// Repository serves posts, subscribers and videos from PostgreSQL.
type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

var (
	postSort = map[string]string{
		"id":           `"t"."postId"`,
		"title":        `"t"."title"`,
		"view_count":   `"t"."viewCount"`,
		"published_at": `"t"."publishedAt"`,
		"updated_at":   `"t"."updatedAt"`,
		"created_at":   `"t"."createdAt"`,
	}
	videoSort = map[string]string{
		"title":        `"t"."title"`,
		"views":        `"t"."views"`,
		"published_at": `"t"."publishedAt"`,
		"created_at":   `"t"."createdAt"`,
	}
)

// orderBy appends a whitelisted sort column plus the primary key as tie breaker.
func orderBy(q *orm.Query, columns map[string]string, sort, order, pk string) *orm.Query {
	col, ok := columns[sort]
	if !ok {
		col = columns["created_at"]
	}
	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	return q.OrderExpr(col + " " + dir + " NULLS LAST").OrderExpr(pk + " " + dir)
}

func like(search string) string {
	return "%" + search + "%"
}

func notFound(err error) error {
	if errors.Is(err, pg.ErrNoRows) {
		return sandbox.ErrNotFound
	}
	return err
}

// Posts.

func (r *Repository) ListPosts(ctx context.Context, q sandbox.PostQuery) ([]domain.Post, int, error) {
	from, to, err := q.Dates()
	if err != nil {
		return nil, 0, err
	}

	var rows []Post
	query := r.db.ModelContext(ctx, &rows)

	if q.Status != "" {
		query = query.Where(`"t"."status" = ?`, q.Status)
	}
	if q.Category != "" {
		query = query.Where(`"t"."category" = ?`, q.Category)
	}
	if q.Search != "" {
		query = query.WhereGroup(func(q2 *orm.Query) (*orm.Query, error) {
			return q2.
				WhereOr(`"t"."title" ILIKE ?`, like(q.Search)).
				WhereOr(`"t"."excerpt" ILIKE ?`, like(q.Search)).
				WhereOr(`"t"."content" ILIKE ?`, like(q.Search)), nil
		})
	}
	if !from.IsZero() {
		query = query.Where(`"t"."createdAt" >= ?`, from)
	}
	if !to.IsZero() {
		query = query.Where(`"t"."createdAt" < ?`, to)
	}

	pager := sandbox.NewPager(q.Page, q.PerPage)
	total, err := orderBy(query, postSort, q.Sort, q.Order, `"t"."postId"`).
		Limit(pager.PerPage).
		Offset(pager.Offset()).
		SelectAndCount()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query posts: %w", err)
	}

	posts := make([]domain.Post, len(rows))
	for i := range rows {
		posts[i] = rows[i].ToDomain()
	}
	return posts, total, nil
}

func (r *Repository) PostByID(ctx context.Context, id int64) (domain.Post, error) {
	row := &Post{ID: id}
	err := r.db.ModelContext(ctx, row).WherePK().Select()
	if err != nil {
		return domain.Post{}, notFound(err)
	}
	return row.ToDomain(), nil
}

func (r *Repository) CreatePost(ctx context.Context, p *domain.Post) error {
	row := newPost(*p)
	row.ID = 0
	if _, err := r.db.ModelContext(ctx, row).Returning(`"postId"`).Insert(); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	p.ID = row.ID
	return nil
}

func (r *Repository) UpdatePost(ctx context.Context, p *domain.Post) error {
	res, err := r.db.ModelContext(ctx, newPost(*p)).WherePK().Update()
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if res.RowsAffected() == 0 {
		return sandbox.ErrNotFound
	}
	return nil
}

func (r *Repository) DeletePosts(ctx context.Context, ids []int64) (int, error) {
	res, err := r.db.ModelContext(ctx, (*Post)(nil)).
		Where(`"t"."postId" IN (?)`, pg.In(ids)).
		Delete()
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts: %w", err)
	}
	return res.RowsAffected(), nil
}

func (r *Repository) SetPostStatus(ctx context.Context, ids []int64, status domain.Status) (int, error) {
	res, err := r.db.ModelContext(ctx, (*Post)(nil)).
		Set(`"status" = ?`, string(status)).
		Set(`"updatedAt" = now()`).
		Set(`"publishedAt" = CASE WHEN ? = 'published' THEN COALESCE("publishedAt", now()) ELSE "publishedAt" END`, string(status)).
		Where(`"t"."postId" IN (?)`, pg.In(ids)).
		Update()
	if err != nil {
		return 0, fmt.Errorf("failed to set post status: %w", err)
	}
	return res.RowsAffected(), nil
}

func (r *Repository) SetPostFeatured(ctx context.Context, id int64, featured bool) error {
	res, err := r.db.ModelContext(ctx, (*Post)(nil)).
		Set(`"isFeatured" = ?`, featured).
		Where(`"t"."postId" = ?`, id).
		Update()
	if err != nil {
		return fmt.Errorf("failed to set post featured: %w", err)
	}
	if res.RowsAffected() == 0 {
		return sandbox.ErrNotFound
	}
	return nil
}

func (r *Repository) AddPostViews(ctx context.Context, id int64, n int64) (int64, error) {
	var count int64
	_, err := r.db.QueryOneContext(ctx, pg.Scan(&count),
		`UPDATE "posts" SET "viewCount" = "viewCount" + ? WHERE "postId" = ? RETURNING "viewCount"`, n, id)
	if err != nil {
		return 0, notFound(err)
	}
	return count, nil
}

func (r *Repository) PostStats(ctx context.Context) (domain.PostStats, error) {
	var st domain.PostStats
	_, err := r.db.QueryOneContext(ctx,
		pg.Scan(&st.Total, &st.Published, &st.Draft, &st.InReview, &st.Scheduled, &st.Archived, &st.Featured, &st.TotalViews), `
		SELECT
			count(*),
			count(*) FILTER (WHERE "status" = 'published'),
			count(*) FILTER (WHERE "status" = 'draft'),
			count(*) FILTER (WHERE "status" = 'in_review'),
			count(*) FILTER (WHERE "status" = 'scheduled'),
			count(*) FILTER (WHERE "status" = 'archived'),
			count(*) FILTER (WHERE "isFeatured"),
			COALESCE(sum("viewCount"), 0)
		FROM "posts"`)
	if err != nil {
		return st, fmt.Errorf("failed to query post stats: %w", err)
	}
	return st, nil
}

// Subscribers.

func (r *Repository) ListSubscribers(ctx context.Context, q sandbox.SubscriberQuery) ([]domain.Subscriber, int, error) {
	var rows []Subscriber
	query := r.db.ModelContext(ctx, &rows)

	if q.Status != "" {
		query = query.Where(`"t"."status" = ?`, q.Status)
	}
	if q.Search != "" {
		query = query.WhereGroup(func(q2 *orm.Query) (*orm.Query, error) {
			return q2.
				WhereOr(`"t"."email" ILIKE ?`, like(q.Search)).
				WhereOr(`"t"."name" ILIKE ?`, like(q.Search)), nil
		})
	}

	pager := sandbox.NewPager(q.Page, q.PerPage)
	total, err := query.
		OrderExpr(`"t"."createdAt" DESC`).
		OrderExpr(`"t"."subscriberId" DESC`).
		Limit(pager.PerPage).
		Offset(pager.Offset()).
		SelectAndCount()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query subscribers: %w", err)
	}

	subs := make([]domain.Subscriber, len(rows))
	for i := range rows {
		subs[i] = rows[i].ToDomain()
	}
	return subs, total, nil
}

func (r *Repository) CreateSubscriber(ctx context.Context, s *domain.Subscriber) error {
	row := newSubscriber(*s)
	row.ID = 0
	if _, err := r.db.ModelContext(ctx, row).Returning(`"subscriberId"`).Insert(); err != nil {
		var pgErr pg.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			return &sandbox.ValidationError{Err: fmt.Errorf("email: %s is already subscribed", s.Email)}
		}
		return fmt.Errorf("failed to insert subscriber: %w", err)
	}
	s.ID = row.ID
	return nil
}

func (r *Repository) DeleteSubscriber(ctx context.Context, id int64) error {
	res, err := r.db.ModelContext(ctx, (*Subscriber)(nil)).
		Where(`"t"."subscriberId" = ?`, id).
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete subscriber: %w", err)
	}
	if res.RowsAffected() == 0 {
		return sandbox.ErrNotFound
	}
	return nil
}

func (r *Repository) SubscriberStats(ctx context.Context) (domain.SubscriberStats, error) {
	var st domain.SubscriberStats
	_, err := r.db.QueryOneContext(ctx,
		pg.Scan(&st.Total, &st.Subscribed, &st.Unsubscribed, &st.Bounced, &st.Complained), `
		SELECT
			count(*),
			count(*) FILTER (WHERE "status" = 'subscribed'),
			count(*) FILTER (WHERE "status" = 'unsubscribed'),
			count(*) FILTER (WHERE "status" = 'bounced'),
			count(*) FILTER (WHERE "status" = 'complained')
		FROM "subscribers"`)
	if err != nil {
		return st, fmt.Errorf("failed to query subscriber stats: %w", err)
	}
	return st, nil
}

// Videos. Reads through the model skip soft deleted rows.

func (r *Repository) ListVideos(ctx context.Context, q sandbox.VideoQuery) ([]domain.Video, int, error) {
	var rows []Video
	query := r.db.ModelContext(ctx, &rows)

	if q.ContentType != "" {
		query = query.Where(`"t"."contentType" = ?`, q.ContentType)
	}
	if q.IsPublished.Valid {
		query = query.Where(`"t"."isPublished" = ?`, q.IsPublished.Bool)
	}
	if q.Search != "" {
		query = query.Where(`"t"."title" ILIKE ?`, like(q.Search))
	}

	pager := sandbox.NewPager(q.Page, q.PerPage)
	total, err := orderBy(query, videoSort, q.SortBy, q.SortDir, `"t"."videoId"`).
		Limit(pager.PerPage).
		Offset(pager.Offset()).
		SelectAndCount()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query videos: %w", err)
	}

	videos := make([]domain.Video, len(rows))
	for i := range rows {
		videos[i] = rows[i].ToDomain()
	}
	return videos, total, nil
}

func (r *Repository) VideoByID(ctx context.Context, id int64) (domain.Video, error) {
	row := &Video{ID: id}
	if err := r.db.ModelContext(ctx, row).WherePK().Select(); err != nil {
		return domain.Video{}, notFound(err)
	}
	return row.ToDomain(), nil
}

func (r *Repository) CreateVideo(ctx context.Context, v *domain.Video) error {
	row := newVideo(*v)
	row.ID = 0
	if _, err := r.db.ModelContext(ctx, row).Returning(`"videoId"`).Insert(); err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}
	v.ID = row.ID
	return nil
}

func (r *Repository) UpdateVideo(ctx context.Context, v *domain.Video) error {
	res, err := r.db.ModelContext(ctx, newVideo(*v)).
		ExcludeColumn(Columns.Video.DeletedAt).
		WherePK().
		Update()
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}
	if res.RowsAffected() == 0 {
		return sandbox.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteVideos(ctx context.Context, ids []int64, force bool) (int, error) {
	query := r.db.ModelContext(ctx, (*Video)(nil)).Where(`"t"."videoId" IN (?)`, pg.In(ids))

	var (
		res pg.Result
		err error
	)
	if force {
		res, err = query.ForceDelete()
	} else {
		res, err = query.
			Set(`"deletedAt" = now()`).
			Where(`"t"."deletedAt" IS NULL`).
			Update()
	}
	if err != nil {
		return 0, fmt.Errorf("failed to delete videos: %w", err)
	}
	return res.RowsAffected(), nil
}

func (r *Repository) PublishVideos(ctx context.Context, ids []int64, publish bool) (int, error) {
	res, err := r.db.ModelContext(ctx, (*Video)(nil)).
		Set(`"isPublished" = ?`, publish).
		Set(`"publishedAt" = CASE WHEN ? THEN COALESCE("publishedAt", now()) ELSE "publishedAt" END`, publish).
		Where(`"t"."videoId" IN (?)`, pg.In(ids)).
		Where(`"t"."deletedAt" IS NULL`).
		Update()
	if err != nil {
		return 0, fmt.Errorf("failed to publish videos: %w", err)
	}
	return res.RowsAffected(), nil
}

func (r *Repository) VideoStats(ctx context.Context) (domain.VideoStats, error) {
	var rows []struct {
		ContentType string `pg:"contentType"`
		Published   int    `pg:"published"`
		Count       int    `pg:"count"`
	}
	err := r.db.ModelContext(ctx, (*Video)(nil)).
		Column("contentType").
		ColumnExpr(`count(*) FILTER (WHERE "isPublished") AS "published"`).
		ColumnExpr(`count(*) AS "count"`).
		Group("contentType").
		Select(&rows)
	if err != nil {
		return domain.VideoStats{}, fmt.Errorf("failed to query video stats: %w", err)
	}

	st := domain.VideoStats{ByContentType: make(map[domain.VideoContentType]int, len(rows))}
	for _, row := range rows {
		st.Total += row.Count
		st.Published += row.Published
		st.ByContentType[domain.VideoContentType(row.ContentType)] = row.Count
	}
	return st, nil
}
