// Package memory is an in-process sandbox store. It serves every resource and
// is the default backend of the sandbox server.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/sandbox"
)

type Store struct {
	mu sync.RWMutex

	posts       map[int64]domain.Post
	content     map[string]domain.Content
	revisions   map[string][]domain.Revision
	subscribers map[int64]domain.Subscriber
	videos      map[int64]domain.Video
	deleted     map[int64]time.Time
	indicators  map[int64]domain.Indicator
	files       map[int64][]domain.IndicatorFile
	rooms       []domain.Room
	media       map[string][]byte

	seq int64
}

func New() *Store {
	return &Store{
		posts:       make(map[int64]domain.Post),
		content:     make(map[string]domain.Content),
		revisions:   make(map[string][]domain.Revision),
		subscribers: make(map[int64]domain.Subscriber),
		videos:      make(map[int64]domain.Video),
		deleted:     make(map[int64]time.Time),
		indicators:  make(map[int64]domain.Indicator),
		files:       make(map[int64][]domain.IndicatorFile),
		media:       make(map[string][]byte),
	}
}

// Sandbox wires s into every resource slot.
func (s *Store) Sandbox() sandbox.Store {
	return sandbox.Store{
		Posts:       s,
		Content:     s,
		Subscribers: s,
		Videos:      s,
		Indicators:  s,
		Rooms:       s,
		Media:       s,
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func matches(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func page[T any](items []T, p sandbox.Pager) []T {
	off := p.Offset()
	if off < 0 || off >= len(items) {
		return []T{}
	}
	end := min(off+p.PerPage, len(items))
	return slices.Clone(items[off:end])
}

func sortDesc(order string) bool {
	return !strings.EqualFold(order, "asc")
}

func sortItems[T any](items []T, desc bool, compare func(a, b T) int) {
	slices.SortStableFunc(items, func(a, b T) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
}

func timeCmp(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}

func clonePost(p domain.Post) domain.Post {
	p.Tags = slices.Clone(p.Tags)
	return p
}

// Posts.

func (s *Store) ListPosts(_ context.Context, q sandbox.PostQuery) ([]domain.Post, int, error) {
	from, to, err := q.Dates()
	if err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	var items []domain.Post
	for _, p := range s.posts {
		if q.Status != "" && string(p.Status) != q.Status {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if !matches(q.Search, p.Title, p.Excerpt, p.Content) {
			continue
		}
		if !from.IsZero() && p.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !p.CreatedAt.Before(to) {
			continue
		}
		items = append(items, clonePost(p))
	}
	s.mu.RUnlock()

	compare := func(a, b domain.Post) int { return a.CreatedAt.Compare(b.CreatedAt) }
	switch q.Sort {
	case "id":
		compare = func(a, b domain.Post) int { return cmp.Compare(a.ID, b.ID) }
	case "title":
		compare = func(a, b domain.Post) int { return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	case "view_count":
		compare = func(a, b domain.Post) int { return cmp.Compare(a.ViewCount, b.ViewCount) }
	case "published_at":
		compare = func(a, b domain.Post) int { return timeCmp(a.PublishedAt, b.PublishedAt) }
	case "updated_at":
		compare = func(a, b domain.Post) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	}
	slices.SortFunc(items, func(a, b domain.Post) int { return cmp.Compare(a.ID, b.ID) })
	sortItems(items, sortDesc(q.Order), compare)

	return page(items, sandbox.NewPager(q.Page, q.PerPage)), len(items), nil
}

func (s *Store) PostByID(_ context.Context, id int64) (domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return domain.Post{}, sandbox.ErrNotFound
	}
	return clonePost(p), nil
}

func (s *Store) CreatePost(_ context.Context, p *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID()
	s.posts[p.ID] = clonePost(*p)
	return nil
}

func (s *Store) UpdatePost(_ context.Context, p *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[p.ID]; !ok {
		return sandbox.ErrNotFound
	}
	s.posts[p.ID] = clonePost(*p)
	return nil
}

func (s *Store) DeletePosts(_ context.Context, ids []int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, id := range ids {
		if _, ok := s.posts[id]; ok {
			delete(s.posts, id)
			n++
		}
	}
	return n, nil
}

func (s *Store) SetPostStatus(_ context.Context, ids []int64, status domain.Status) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	n := 0
	for _, id := range ids {
		p, ok := s.posts[id]
		if !ok {
			continue
		}
		p.Status = status
		p.UpdatedAt = now
		if status == domain.StatusPublished && p.PublishedAt == nil {
			p.PublishedAt = &now
		}
		s.posts[id] = p
		n++
	}
	return n, nil
}

func (s *Store) SetPostFeatured(_ context.Context, id int64, featured bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return sandbox.ErrNotFound
	}
	p.IsFeatured = featured
	s.posts[id] = p
	return nil
}

func (s *Store) AddPostViews(_ context.Context, id int64, n int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return 0, sandbox.ErrNotFound
	}
	p.ViewCount += n
	s.posts[id] = p
	return p.ViewCount, nil
}

func (s *Store) PostStats(context.Context) (domain.PostStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st domain.PostStats
	for _, p := range s.posts {
		st.Total++
		st.TotalViews += p.ViewCount
		if p.IsFeatured {
			st.Featured++
		}
		switch p.Status {
		case domain.StatusPublished:
			st.Published++
		case domain.StatusDraft:
			st.Draft++
		case domain.StatusInReview:
			st.InReview++
		case domain.StatusScheduled:
			st.Scheduled++
		case domain.StatusArchived:
			st.Archived++
		}
	}
	return st, nil
}

// Content.

func cloneContent(c domain.Content) domain.Content {
	c.Tags = slices.Clone(c.Tags)
	return c
}

func (s *Store) ListContent(_ context.Context, q sandbox.ContentQuery) ([]domain.Content, int, error) {
	s.mu.RLock()
	var items []domain.Content
	for _, c := range s.content {
		if q.ContentType != "" && c.ContentType != q.ContentType {
			continue
		}
		if q.Status != "" && string(c.Status) != q.Status {
			continue
		}
		if !matches(q.Search, c.Title, c.Excerpt) {
			continue
		}
		items = append(items, cloneContent(c))
	}
	s.mu.RUnlock()

	compare := func(a, b domain.Content) int { return a.CreatedAt.Compare(b.CreatedAt) }
	switch q.SortBy {
	case "title":
		compare = func(a, b domain.Content) int { return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	case "updated_at":
		compare = func(a, b domain.Content) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	}
	slices.SortFunc(items, func(a, b domain.Content) int { return cmp.Compare(a.ID, b.ID) })
	sortItems(items, sortDesc(q.SortOrder), compare)

	return page(items, sandbox.NewPager(q.Page, q.PerPage)), len(items), nil
}

func (s *Store) ContentByID(_ context.Context, id string) (domain.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.content[id]
	if !ok {
		return domain.Content{}, sandbox.ErrNotFound
	}
	return cloneContent(c), nil
}

func (s *Store) CreateContent(_ context.Context, c *domain.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.content[c.ID] = cloneContent(*c)
	return nil
}

func (s *Store) UpdateContent(_ context.Context, c *domain.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.content[c.ID]; !ok {
		return sandbox.ErrNotFound
	}
	s.content[c.ID] = cloneContent(*c)
	return nil
}

func (s *Store) DeleteContent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.content[id]; !ok {
		return sandbox.ErrNotFound
	}
	delete(s.content, id)
	delete(s.revisions, id)
	return nil
}

func (s *Store) AddRevision(_ context.Context, r domain.Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.revisions[r.ContentID] = append(s.revisions[r.ContentID], r)
	return nil
}

// Revisions returns the newest revision first.
func (s *Store) Revisions(_ context.Context, contentID string) ([]domain.Revision, error) {
	s.mu.RLock()
	revs := slices.Clone(s.revisions[contentID])
	s.mu.RUnlock()

	slices.SortFunc(revs, func(a, b domain.Revision) int { return cmp.Compare(b.RevisionNumber, a.RevisionNumber) })
	return revs, nil
}

func (s *Store) ContentStats(context.Context) (domain.ContentStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := domain.ContentStats{ByStatus: make(map[domain.Status]int)}
	for _, c := range s.content {
		st.Total++
		st.ByStatus[c.Status]++
	}
	for _, revs := range s.revisions {
		st.Revisions += len(revs)
	}
	return st, nil
}

// Subscribers.

func (s *Store) ListSubscribers(_ context.Context, q sandbox.SubscriberQuery) ([]domain.Subscriber, int, error) {
	s.mu.RLock()
	var items []domain.Subscriber
	for _, sub := range s.subscribers {
		if q.Status != "" && string(sub.Status) != q.Status {
			continue
		}
		if !matches(q.Search, sub.Email, sub.Name) {
			continue
		}
		sub.Tags = slices.Clone(sub.Tags)
		items = append(items, sub)
	}
	s.mu.RUnlock()

	slices.SortFunc(items, func(a, b domain.Subscriber) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return page(items, sandbox.NewPager(q.Page, q.PerPage)), len(items), nil
}

func (s *Store) CreateSubscriber(_ context.Context, sub *domain.Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.subscribers {
		if strings.EqualFold(existing.Email, sub.Email) {
			return &sandbox.ValidationError{Err: fmt.Errorf("email: %s is already subscribed", sub.Email)}
		}
	}
	sub.ID = s.nextID()
	s.subscribers[sub.ID] = *sub
	return nil
}

func (s *Store) DeleteSubscriber(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscribers[id]; !ok {
		return sandbox.ErrNotFound
	}
	delete(s.subscribers, id)
	return nil
}

func (s *Store) SubscriberStats(context.Context) (domain.SubscriberStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st domain.SubscriberStats
	for _, sub := range s.subscribers {
		st.Total++
		switch sub.Status {
		case domain.SubscriberSubscribed:
			st.Subscribed++
		case domain.SubscriberUnsubscribed:
			st.Unsubscribed++
		case domain.SubscriberBounced:
			st.Bounced++
		case domain.SubscriberComplained:
			st.Complained++
		}
	}
	return st, nil
}

// Videos. Soft deleted videos stay in the map but are hidden from every read.

func cloneVideo(v domain.Video) domain.Video {
	v.RoomIDs = slices.Clone(v.RoomIDs)
	return v
}

func (s *Store) liveVideo(id int64) (domain.Video, bool) {
	v, ok := s.videos[id]
	if !ok {
		return v, false
	}
	if _, gone := s.deleted[id]; gone {
		return v, false
	}
	return v, true
}

func (s *Store) ListVideos(_ context.Context, q sandbox.VideoQuery) ([]domain.Video, int, error) {
	s.mu.RLock()
	var items []domain.Video
	for id := range s.videos {
		v, ok := s.liveVideo(id)
		if !ok {
			continue
		}
		if q.ContentType != "" && string(v.ContentType) != q.ContentType {
			continue
		}
		if q.IsPublished.Valid && v.IsPublished != q.IsPublished.Bool {
			continue
		}
		if !matches(q.Search, v.Title) {
			continue
		}
		items = append(items, cloneVideo(v))
	}
	s.mu.RUnlock()

	compare := func(a, b domain.Video) int { return a.CreatedAt.Compare(b.CreatedAt) }
	switch q.SortBy {
	case "title":
		compare = func(a, b domain.Video) int { return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	case "views":
		compare = func(a, b domain.Video) int { return cmp.Compare(a.Views, b.Views) }
	case "published_at":
		compare = func(a, b domain.Video) int { return timeCmp(a.PublishedAt, b.PublishedAt) }
	}
	slices.SortFunc(items, func(a, b domain.Video) int { return cmp.Compare(a.ID, b.ID) })
	sortItems(items, sortDesc(q.SortDir), compare)

	return page(items, sandbox.NewPager(q.Page, q.PerPage)), len(items), nil
}

func (s *Store) VideoByID(_ context.Context, id int64) (domain.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.liveVideo(id)
	if !ok {
		return domain.Video{}, sandbox.ErrNotFound
	}
	return cloneVideo(v), nil
}

func (s *Store) CreateVideo(_ context.Context, v *domain.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v.ID = s.nextID()
	s.videos[v.ID] = cloneVideo(*v)
	return nil
}

func (s *Store) UpdateVideo(_ context.Context, v *domain.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.liveVideo(v.ID); !ok {
		return sandbox.ErrNotFound
	}
	s.videos[v.ID] = cloneVideo(*v)
	return nil
}

func (s *Store) DeleteVideos(_ context.Context, ids []int64, force bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	n := 0
	for _, id := range ids {
		if _, ok := s.videos[id]; !ok {
			continue
		}
		if force {
			delete(s.videos, id)
			delete(s.deleted, id)
			n++
			continue
		}
		if _, gone := s.deleted[id]; !gone {
			s.deleted[id] = now
			n++
		}
	}
	return n, nil
}

func (s *Store) PublishVideos(_ context.Context, ids []int64, publish bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	n := 0
	for _, id := range ids {
		v, ok := s.liveVideo(id)
		if !ok {
			continue
		}
		v.IsPublished = publish
		if publish && v.PublishedAt == nil {
			v.PublishedAt = &now
		}
		s.videos[id] = v
		n++
	}
	return n, nil
}

func (s *Store) VideoStats(context.Context) (domain.VideoStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := domain.VideoStats{ByContentType: make(map[domain.VideoContentType]int)}
	for id := range s.videos {
		v, ok := s.liveVideo(id)
		if !ok {
			continue
		}
		st.Total++
		if v.IsPublished {
			st.Published++
		}
		st.ByContentType[v.ContentType]++
	}
	return st, nil
}

// Indicators.

func (s *Store) indicator(ind domain.Indicator) domain.Indicator {
	ind.Platforms = slices.Clone(ind.Platforms)
	ind.FileCount, ind.DocCount = 0, 0
	for _, f := range s.files[ind.ID] {
		if f.Kind == domain.IndicatorFileDoc {
			ind.DocCount++
		} else {
			ind.FileCount++
		}
	}
	return ind
}

func (s *Store) ListIndicators(_ context.Context, q sandbox.IndicatorQuery) ([]domain.Indicator, int, error) {
	s.mu.RLock()
	var items []domain.Indicator
	for _, ind := range s.indicators {
		if q.IsActive.Valid && ind.IsActive != q.IsActive.Bool {
			continue
		}
		if !matches(q.Search, ind.Name, ind.Description) {
			continue
		}
		items = append(items, s.indicator(ind))
	}
	s.mu.RUnlock()

	slices.SortFunc(items, func(a, b domain.Indicator) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})

	return page(items, sandbox.NewPager(q.Page, q.PerPage)), len(items), nil
}

func (s *Store) IndicatorByID(_ context.Context, id int64) (domain.Indicator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ind, ok := s.indicators[id]
	if !ok {
		return domain.Indicator{}, sandbox.ErrNotFound
	}
	return s.indicator(ind), nil
}

func (s *Store) CreateIndicator(_ context.Context, ind *domain.Indicator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ind.ID = s.nextID()
	s.indicators[ind.ID] = *ind
	return nil
}

func (s *Store) UpdateIndicator(_ context.Context, ind *domain.Indicator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indicators[ind.ID]; !ok {
		return sandbox.ErrNotFound
	}
	s.indicators[ind.ID] = *ind
	return nil
}

func (s *Store) DeleteIndicator(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indicators[id]; !ok {
		return sandbox.ErrNotFound
	}
	delete(s.indicators, id)
	delete(s.files, id)
	return nil
}

func (s *Store) AddIndicatorFile(_ context.Context, f *domain.IndicatorFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indicators[f.IndicatorID]; !ok {
		return sandbox.ErrNotFound
	}
	f.ID = s.nextID()
	s.files[f.IndicatorID] = append(s.files[f.IndicatorID], *f)
	return nil
}

func (s *Store) IndicatorStats(context.Context) (domain.IndicatorStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st domain.IndicatorStats
	for _, ind := range s.indicators {
		st.Total++
		if ind.IsActive {
			st.Active++
		}
		if ind.IsFeatured {
			st.Featured++
		}
	}
	return st, nil
}

// Rooms and media.

func (s *Store) Rooms(context.Context) ([]domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rooms), nil
}

func (s *Store) RoomBySlug(_ context.Context, slug string) (domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rooms {
		if r.Slug == slug {
			return r, nil
		}
	}
	return domain.Room{}, sandbox.ErrNotFound
}

// SetRoomLive updates the live state of a room.
func (s *Store) SetRoomLive(slug string, live bool, members int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rooms {
		if s.rooms[i].Slug == slug {
			s.rooms[i].IsLive = live
			s.rooms[i].LiveMembers = members
			return nil
		}
	}
	return sandbox.ErrNotFound
}

func (s *Store) SaveMedia(_ context.Context, m *domain.Media, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = uuid.NewString()
	m.Size = int64(len(data))
	m.URL = "/media/" + m.ID + "/" + m.Filename
	m.CreatedAt = time.Now().UTC()
	s.media[m.ID] = slices.Clone(data)
	return nil
}

// MediaData returns the bytes of a saved upload.
func (s *Store) MediaData(id string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.media[id]
	return data, ok
}
