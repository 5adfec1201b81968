package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/daniilsolovey/trading-admin/internal/adminapi"
	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/listctl"
	"github.com/daniilsolovey/trading-admin/internal/live"
	"github.com/daniilsolovey/trading-admin/internal/notify"
	"github.com/daniilsolovey/trading-admin/internal/seo"
)

// PostsPage is the blog posts list with live view counts.
type PostsPage struct {
	list[int64, domain.Post, adminapi.PostFilter, domain.PostStats]
	env     Env
	channel *live.Channel
	poller  *live.Poller
	wg      sync.WaitGroup
}

func NewPostsPage(env Env) *PostsPage {
	client := env.Client
	p := &PostsPage{
		env: env,
		list: newList[int64](env, "posts",
			client.ListPosts,
			adminapi.PostFilter{PerPage: env.PerPage},
			client.PostStats,
		),
	}
	if env.LiveURL != "" {
		p.channel = live.NewChannel(env.LiveURL, env.Token, env.log())
	}
	return p
}

func (p *PostsPage) Name() string { return "posts" }

// Mount loads list and stats, then starts the live channel and stats poll
// when configured. Both stop on Close.
func (p *PostsPage) Mount(ctx context.Context) error {
	err := p.Controller.Mount(ctx)

	if p.channel != nil {
		reducer := live.NewPostReducer(p.Controller, p.env.log())
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			if err := p.channel.Run(p.Context(), reducer.Handle); err != nil {
				p.env.log().Warn("posts live channel stopped", "error", err)
			}
		}()
	}

	if p.env.PollInterval > 0 {
		p.poller = live.NewPoller(p.env.log())
		if perr := p.poller.Every(p.env.PollInterval, "posts stats", func(ctx context.Context) error {
			if err := p.stats.Refresh(ctx); !errors.Is(err, listctl.ErrStaleResponse) {
				return err
			}
			return nil
		}); perr != nil {
			return errors.Join(err, perr)
		}
		p.poller.Start()
	}

	return err
}

func (p *PostsPage) Close() {
	if p.poller != nil {
		p.poller.Stop()
	}
	p.Controller.Close()
	p.wg.Wait()
}

func (p *PostsPage) find(id int64) (domain.Post, bool) {
	for _, post := range p.Records() {
		if post.ID == id {
			return post, true
		}
	}
	return domain.Post{}, false
}

func (p *PostsPage) Search(text string) {
	p.Update(func(f *adminapi.PostFilter) {
		f.Search = text
		f.Page = 1
	})
}

func (p *PostsPage) Delete(ctx context.Context, id int64) error {
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:        "delete post",
		IDs:         []int64{id},
		Destructive: true,
		Prompt:      fmt.Sprintf("Delete post %d?", id),
		Success:     "Post deleted",
		Call:        func(ctx context.Context) error { return p.env.Client.DeletePost(ctx, id) },
	})
}

func (p *PostsPage) Duplicate(ctx context.Context, id int64) error {
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:    "duplicate post",
		IDs:     []int64{id},
		Success: "Post duplicated",
		Call: func(ctx context.Context) error {
			_, err := p.env.Client.DuplicatePost(ctx, id)
			return err
		},
	})
}

// ToggleStatus publishes a draft-like post and moves a published one back
// to draft.
func (p *PostsPage) ToggleStatus(ctx context.Context, id int64) error {
	next := domain.StatusPublished
	if post, ok := p.find(id); ok && post.Status == domain.StatusPublished {
		next = domain.StatusDraft
	}
	return p.SetStatus(ctx, id, next)
}

func (p *PostsPage) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:    "update post status",
		IDs:     []int64{id},
		Success: "Status changed to " + string(status),
		Call:    func(ctx context.Context) error { return p.env.Client.SetPostStatus(ctx, id, status) },
	})
}

func (p *PostsPage) ToggleFeatured(ctx context.Context, id int64) error {
	featured := true
	if post, ok := p.find(id); ok {
		featured = !post.IsFeatured
	}
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:    "update featured flag",
		IDs:     []int64{id},
		Success: "Featured flag updated",
		Call:    func(ctx context.Context) error { return p.env.Client.SetPostFeatured(ctx, id, featured) },
	})
}

func (p *PostsPage) BulkStatus(ctx context.Context, status domain.Status) error {
	ids := p.Selection().IDs()
	if len(ids) == 0 {
		return listctl.ErrEmptySelection
	}
	return p.Mutate(ctx, listctl.Action[int64]{
		Name: "update posts",
		IDs:  ids,
		Call: func(ctx context.Context) error {
			_, err := p.env.Client.BulkPostStatus(ctx, ids, status)
			return err
		},
		Success: fmt.Sprintf("%d posts set to %s", len(ids), status),
	})
}

func (p *PostsPage) BulkDelete(ctx context.Context) error {
	ids := p.Selection().IDs()
	if len(ids) == 0 {
		return listctl.ErrEmptySelection
	}
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:        "delete posts",
		IDs:         ids,
		Destructive: true,
		Prompt:      fmt.Sprintf("Delete %d posts?", len(ids)),
		Call: func(ctx context.Context) error {
			_, err := p.env.Client.BulkDeletePosts(ctx, ids)
			return err
		},
		Success: fmt.Sprintf("%d posts deleted", len(ids)),
	})
}

// Export downloads the selected posts, or all posts when nothing is
// selected, into the configured output directory.
func (p *PostsPage) Export(ctx context.Context, format string) (string, error) {
	blob, err := p.env.Client.ExportPosts(ctx, format, p.Selection().IDs())
	if err != nil {
		p.env.log().Error("export posts failed", "error", err)
		p.env.notice(notify.LevelError, "Failed to export posts")
		return "", fmt.Errorf("export posts: %w", err)
	}

	path, err := saveBlob(p.env.OutDir, blob)
	if err != nil {
		p.env.notice(notify.LevelError, "Failed to export posts")
		return "", err
	}
	p.env.notice(notify.LevelSuccess, "Exported to "+path)
	return path, nil
}

func (p *PostsPage) Import(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import: %w", err)
	}
	defer f.Close()

	var res domain.MutationResult
	err = p.Mutate(ctx, listctl.Action[int64]{
		Name: "import posts",
		Call: func(ctx context.Context) error {
			var ierr error
			res, ierr = p.env.Client.ImportPosts(ctx, filepath.Base(path), f)
			return ierr
		},
		Success: "Posts imported",
	})
	if err == nil && res.Message != "" {
		p.env.notice(notify.LevelInfo, res.Message)
	}
	return err
}

// SEO scores a post on the loaded page.
func (p *PostsPage) SEO(id int64) (seo.Result, error) {
	post, ok := p.find(id)
	if !ok {
		return seo.Result{}, fmt.Errorf("post %d is not on the current page", id)
	}
	title := post.MetaTitle
	if title == "" {
		title = post.Title
	}
	return seo.Score(seo.Input{
		Title:           title,
		MetaDescription: post.MetaDescription,
		Image:           post.FeaturedImage,
		Content:         post.Content,
	}), nil
}

func (p *PostsPage) Render(w io.Writer) {
	if st, ok := p.Stats(); ok {
		fmt.Fprintf(w, "total %d  published %d  draft %d  review %d  scheduled %d  archived %d  views %d\n",
			st.Total, st.Published, st.Draft, st.InReview, st.Scheduled, st.Archived, st.TotalViews)
	}

	sel := p.Selection()
	t := newTable(w, "", "ID", "Title", "Status", "Category", "Featured", "Views", "Published")
	for _, post := range p.Records() {
		t.Append([]string{
			mark(sel.Has(post.ID)), i64(post.ID), truncate(post.Title, 48), string(post.Status),
			post.Category, yesNo(post.IsFeatured), i64(post.ViewCount), date(post.PublishedAt),
		})
	}
	t.Render()
	renderMeta(w, p.Meta(), sel.Count())
}

func (p *PostsPage) Commands() map[string]Command {
	cmds := p.selectionCommands(parseInt64)
	// filter applies fn to a copy of the current filter and commits it only
	// when fn accepts the arguments.
	filter := func(usage string, firstPage bool, fn func(f *adminapi.PostFilter, args []string) error) Command {
		return Command{Usage: usage, Run: func(_ context.Context, args []string) error {
			next := p.Filter()
			if err := fn(&next, args); err != nil {
				return err
			}
			if firstPage {
				next.Page = 1
			}
			p.Update(func(f *adminapi.PostFilter) { *f = next })
			return nil
		}}
	}

	cmds["search"] = filter("search <text>", true, func(f *adminapi.PostFilter, args []string) error {
		f.Search = strings.Join(args, " ")
		return nil
	})
	cmds["status"] = filter("status <status|all>", true, func(f *adminapi.PostFilter, args []string) error {
		if len(args) == 1 && args[0] == "all" {
			f.Status = ""
			return nil
		}
		st, err := statusArg(args)
		if err != nil {
			return err
		}
		f.Status = st
		return nil
	})
	cmds["category"] = filter("category <name|all>", true, func(f *adminapi.PostFilter, args []string) error {
		f.Category = strings.Join(args, " ")
		if f.Category == "all" {
			f.Category = ""
		}
		return nil
	})
	cmds["sort"] = filter("sort <column> [asc|desc]", true, func(f *adminapi.PostFilter, args []string) error {
		if len(args) == 0 || len(args) > 2 {
			return fmt.Errorf("%w: sort <column> [asc|desc]", ErrUsage)
		}
		f.Sort = args[0]
		if len(args) == 2 {
			f.Order = args[1]
		}
		return nil
	})
	cmds["dates"] = filter("dates <from|-> <to|->", true, func(f *adminapi.PostFilter, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("%w: dates <from|-> <to|->", ErrUsage)
		}
		f.DateFrom, f.DateTo = strings.TrimPrefix(args[0], "-"), strings.TrimPrefix(args[1], "-")
		return nil
	})
	cmds["page"] = filter("page <n>", false, func(f *adminapi.PostFilter, args []string) error {
		n, err := atoi(args)
		if err != nil {
			return err
		}
		f.Page = n
		return nil
	})

	cmds["delete"] = Command{Usage: "delete <id>", Run: func(ctx context.Context, args []string) error {
		id, err := oneID(args)
		if err != nil {
			return err
		}
		return p.Delete(ctx, id)
	}}
	cmds["duplicate"] = Command{Usage: "duplicate <id>", Run: func(ctx context.Context, args []string) error {
		id, err := oneID(args)
		if err != nil {
			return err
		}
		return p.Duplicate(ctx, id)
	}}
	cmds["toggle-status"] = Command{Usage: "toggle-status <id>", Run: func(ctx context.Context, args []string) error {
		id, err := oneID(args)
		if err != nil {
			return err
		}
		return p.ToggleStatus(ctx, id)
	}}
	cmds["feature"] = Command{Usage: "feature <id>", Run: func(ctx context.Context, args []string) error {
		id, err := oneID(args)
		if err != nil {
			return err
		}
		return p.ToggleFeatured(ctx, id)
	}}
	cmds["bulk-status"] = Command{Usage: "bulk-status <status>", Run: func(ctx context.Context, args []string) error {
		st, err := statusArg(args)
		if err != nil {
			return err
		}
		return p.BulkStatus(ctx, st)
	}}
	cmds["bulk-delete"] = Command{Usage: "bulk-delete", Run: func(ctx context.Context, _ []string) error {
		return p.BulkDelete(ctx)
	}}
	cmds["export"] = Command{Usage: "export [csv|json]", Run: func(ctx context.Context, args []string) error {
		format := "csv"
		if len(args) > 0 {
			format = args[0]
		}
		_, err := p.Export(ctx, format)
		return err
	}}
	cmds["import"] = Command{Usage: "import <file>", Run: func(ctx context.Context, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: import <file>", ErrUsage)
		}
		return p.Import(ctx, args[0])
	}}
	cmds["seo"] = Command{Usage: "seo <id>", Run: func(_ context.Context, args []string) error {
		id, err := oneID(args)
		if err != nil {
			return err
		}
		res, err := p.SEO(id)
		if err != nil {
			return err
		}
		p.env.notice(notify.LevelInfo, formatSEO(res))
		return nil
	}}

	return cmds
}

func formatSEO(res seo.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SEO score %d/100 (%d words)", res.Score, res.Words)
	for _, c := range res.Checks {
		if !c.Passed {
			fmt.Fprintf(&b, "; %s: %s", c.Name, c.Hint)
		}
	}
	return b.String()
}
