package sandbox

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

var postColumns = []string{"id", "title", "slug", "status", "category", "tags", "view_count", "created_at"}

// Export is a rendered download.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportPosts renders posts as csv or json. Empty ids exports every post.
func (m *Manager) ExportPosts(ctx context.Context, format string, ids []int64) (Export, error) {
	posts, err := m.allPosts(ctx)
	if err != nil {
		return Export{}, err
	}
	if len(ids) > 0 {
		posts = slices.DeleteFunc(posts, func(p domain.Post) bool { return !slices.Contains(ids, p.ID) })
	}

	switch format {
	case "", FormatCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write(postColumns)
		for _, p := range posts {
			_ = w.Write([]string{
				strconv.FormatInt(p.ID, 10), p.Title, p.Slug, string(p.Status), p.Category,
				strings.Join(p.Tags, ";"), strconv.FormatInt(p.ViewCount, 10),
				p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return Export{}, fmt.Errorf("write posts csv: %w", err)
		}
		return Export{Filename: "posts.csv", ContentType: "text/csv", Data: buf.Bytes()}, nil
	case FormatJSON:
		data, err := json.MarshalIndent(posts, "", "  ")
		if err != nil {
			return Export{}, fmt.Errorf("encode posts json: %w", err)
		}
		return Export{Filename: "posts.json", ContentType: "application/json", Data: data}, nil
	default:
		return Export{}, invalid(fmt.Errorf("unknown export format %q", format))
	}
}

func (m *Manager) allPosts(ctx context.Context) ([]domain.Post, error) {
	var out []domain.Post
	for page := 1; ; page++ {
		posts, total, err := m.store.Posts.ListPosts(ctx, PostQuery{Page: page, PerPage: MaxPerPage, Sort: "id", Order: "asc"})
		if err != nil {
			return nil, fmt.Errorf("store list posts: %w", err)
		}
		out = append(out, posts...)
		if len(posts) == 0 || len(out) >= total {
			return out, nil
		}
	}
}

// ImportPosts creates posts from a json array of inputs or a csv file with
// a header row naming at least the title column.
func (m *Manager) ImportPosts(ctx context.Context, filename string, r io.Reader) (domain.MutationResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.MutationResult{}, fmt.Errorf("read import: %w", err)
	}

	var inputs []domain.PostInput
	if strings.HasSuffix(strings.ToLower(filename), ".json") || bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		if err := json.Unmarshal(data, &inputs); err != nil {
			return domain.MutationResult{}, invalid(fmt.Errorf("decode json import: %w", err))
		}
	} else {
		inputs, err = readPostCSV(data)
		if err != nil {
			return domain.MutationResult{}, invalid(err)
		}
	}

	var errs []error
	created := 0
	for i, in := range inputs {
		if _, err := m.CreatePost(ctx, in); err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		created++
	}

	res := bulkResult(created, "posts", "imported")
	if len(errs) > 0 {
		m.log.Warn("post import skipped rows", "skipped", len(errs), "error", errors.Join(errs...))
		res.Message = fmt.Sprintf("%d posts imported, %d skipped", created, len(errs))
	}
	return res, nil
}

func readPostCSV(data []byte) ([]domain.PostInput, error) {
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv import: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := col["title"]; !ok {
		return nil, errors.New("csv import: missing title column")
	}

	get := func(row []string, name string) string {
		if i, ok := col[name]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	inputs := make([]domain.PostInput, 0, len(rows)-1)
	for _, row := range rows[1:] {
		in := domain.PostInput{
			Title:    get(row, "title"),
			Slug:     get(row, "slug"),
			Status:   domain.Status(get(row, "status")),
			Category: get(row, "category"),
			Excerpt:  get(row, "excerpt"),
			Content:  get(row, "content"),
		}
		if tags := get(row, "tags"); tags != "" {
			in.Tags = strings.Split(tags, ";")
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// ExportSubscribers renders the filtered subscriber list as csv.
func (m *Manager) ExportSubscribers(ctx context.Context, q SubscriberQuery) (Export, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "email", "name", "status", "tags", "score", "created_at"})

	q.PerPage = MaxPerPage
	for page := 1; ; page++ {
		q.Page = page
		subs, total, err := m.store.Subscribers.ListSubscribers(ctx, q)
		if err != nil {
			return Export{}, fmt.Errorf("store list subscribers: %w", err)
		}
		for _, s := range subs {
			_ = w.Write([]string{
				strconv.FormatInt(s.ID, 10), s.Email, s.Name, string(s.Status),
				strings.Join(s.Tags, ";"), strconv.Itoa(s.Score),
				s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
		if len(subs) == 0 || page*MaxPerPage >= total {
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return Export{}, fmt.Errorf("write subscribers csv: %w", err)
	}
	return Export{Filename: "subscribers.csv", ContentType: "text/csv", Data: buf.Bytes()}, nil
}
