package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/daniilsolovey/trading-admin/internal/adminapi"
	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/listctl"
	"github.com/daniilsolovey/trading-admin/internal/notify"
)

// ContentPage manages CMS v2 content with revision history.
type ContentPage struct {
	list[string, domain.Content, adminapi.ContentFilter, domain.ContentStats]
	env Env

	// revisions holds the last history listed by Revisions.
	revisions []domain.Revision
}

func NewContentPage(env Env) *ContentPage {
	return &ContentPage{
		env: env,
		list: newList[string](env, "content",
			env.Client.ListContent,
			adminapi.ContentFilter{PerPage: env.PerPage},
			env.Client.ContentStats,
		),
	}
}

func (p *ContentPage) Name() string { return "cms" }

func (p *ContentPage) Create(ctx context.Context, in domain.ContentInput) error {
	return p.Mutate(ctx, listctl.Action[string]{
		Name:    "create content",
		Success: "Content created",
		Call: func(ctx context.Context) error {
			_, err := p.env.Client.CreateContent(ctx, in)
			return err
		},
	})
}

// Rename updates the title of an existing item, keeping its other fields.
func (p *ContentPage) Rename(ctx context.Context, id, title string) error {
	return p.Mutate(ctx, listctl.Action[string]{
		Name:    "update content",
		IDs:     []string{id},
		Success: "Content updated",
		Call: func(ctx context.Context) error {
			cur, err := p.env.Client.GetContent(ctx, id)
			if err != nil {
				return err
			}
			_, err = p.env.Client.UpdateContent(ctx, id, domain.ContentInput{
				ContentType:     cur.ContentType,
				Title:           title,
				Slug:            cur.Slug,
				Excerpt:         cur.Excerpt,
				Body:            cur.Body,
				MetaDescription: cur.MetaDescription,
				FeaturedImageID: cur.FeaturedImageID,
				Tags:            cur.Tags,
				ChangeSummary:   "Title changed",
			})
			return err
		},
	})
}

func (p *ContentPage) Delete(ctx context.Context, id string) error {
	return p.Mutate(ctx, listctl.Action[string]{
		Name:        "delete content",
		IDs:         []string{id},
		Destructive: true,
		Prompt:      "Delete content " + id + "?",
		Success:     "Content deleted",
		Call:        func(ctx context.Context) error { return p.env.Client.DeleteContent(ctx, id) },
	})
}

func (p *ContentPage) Transition(ctx context.Context, id string, status domain.Status) error {
	return p.Mutate(ctx, listctl.Action[string]{
		Name:    "change content status",
		IDs:     []string{id},
		Success: "Status changed to " + string(status),
		Call: func(ctx context.Context) error {
			_, err := p.env.Client.TransitionContent(ctx, id, status)
			return err
		},
	})
}

func (p *ContentPage) Revisions(ctx context.Context, id string) ([]domain.Revision, error) {
	revs, err := p.env.Client.ContentRevisions(ctx, id)
	if err != nil {
		p.env.log().Error("load revisions failed", "id", id, "error", err)
		p.env.notice(notify.LevelError, "Failed to load revisions")
		return nil, fmt.Errorf("load revisions: %w", err)
	}
	p.revisions = revs
	return revs, nil
}

// Restore makes revision n the current version. Restoring is confirmed since
// it overwrites the working copy.
func (p *ContentPage) Restore(ctx context.Context, id string, n int) error {
	return p.Mutate(ctx, listctl.Action[string]{
		Name:        "restore revision",
		IDs:         []string{id},
		Destructive: true,
		Prompt:      fmt.Sprintf("Restore revision %d of %s?", n, id),
		Success:     fmt.Sprintf("Revision %d restored", n),
		Call: func(ctx context.Context) error {
			_, err := p.env.Client.RestoreRevision(ctx, id, n)
			return err
		},
	})
}

func (p *ContentPage) Render(w io.Writer) {
	if st, ok := p.Stats(); ok {
		fmt.Fprintf(w, "total %d  published %d  draft %d  revisions %d\n",
			st.Total, st.ByStatus[domain.StatusPublished], st.ByStatus[domain.StatusDraft], st.Revisions)
	}

	sel := p.Selection()
	t := newTable(w, "", "ID", "Type", "Title", "Status", "Version", "Updated")
	for _, c := range p.Records() {
		t.Append([]string{
			mark(sel.Has(c.ID)), truncate(c.ID, 8), c.ContentType, truncate(c.Title, 40),
			string(c.Status), strconv.Itoa(c.Version), date(&c.UpdatedAt),
		})
	}
	t.Render()
	renderMeta(w, p.Meta(), sel.Count())

	if len(p.revisions) > 0 {
		rt := newTable(w, "Rev", "Title", "Status", "Summary", "Created")
		for _, r := range p.revisions {
			rt.Append([]string{strconv.Itoa(r.RevisionNumber), truncate(r.Title, 40), string(r.Status), r.ChangeSummary, date(&r.CreatedAt)})
		}
		rt.Render()
	}
}

func (p *ContentPage) Commands() map[string]Command {
	cmds := p.selectionCommands(parseString)

	cmds["search"] = Command{Usage: "search <text>", Run: func(_ context.Context, args []string) error {
		p.Update(func(f *adminapi.ContentFilter) {
			f.Search = strings.Join(args, " ")
			f.Page = 1
		})
		return nil
	}}
	cmds["type"] = Command{Usage: "type <content type|all>", Run: func(_ context.Context, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: type <content type|all>", ErrUsage)
		}
		ct := args[0]
		if ct == "all" {
			ct = ""
		}
		p.Update(func(f *adminapi.ContentFilter) {
			f.ContentType = ct
			f.Page = 1
		})
		return nil
	}}
	cmds["status"] = Command{Usage: "status <status|all>", Run: func(_ context.Context, args []string) error {
		var st domain.Status
		if len(args) != 1 || args[0] != "all" {
			var err error
			if st, err = statusArg(args); err != nil {
				return err
			}
		}
		p.Update(func(f *adminapi.ContentFilter) {
			f.Status = st
			f.Page = 1
		})
		return nil
	}}
	cmds["page"] = Command{Usage: "page <n>", Run: func(_ context.Context, args []string) error {
		n, err := atoi(args)
		if err != nil {
			return err
		}
		p.Update(func(f *adminapi.ContentFilter) { f.Page = n })
		return nil
	}}

	cmds["create"] = Command{Usage: "create <type> <title>", Run: func(ctx context.Context, args []string) error {
		if len(args) < 2 {
			return fmt.Errorf("%w: create <type> <title>", ErrUsage)
		}
		return p.Create(ctx, domain.ContentInput{ContentType: args[0], Title: strings.Join(args[1:], " ")})
	}}
	cmds["rename"] = Command{Usage: "rename <id> <title>", Run: func(ctx context.Context, args []string) error {
		if len(args) < 2 {
			return fmt.Errorf("%w: rename <id> <title>", ErrUsage)
		}
		return p.Rename(ctx, args[0], strings.Join(args[1:], " "))
	}}
	cmds["delete"] = Command{Usage: "delete <id>", Run: func(ctx context.Context, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: delete <id>", ErrUsage)
		}
		return p.Delete(ctx, args[0])
	}}
	cmds["transition"] = Command{Usage: "transition <id> <status>", Run: func(ctx context.Context, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("%w: transition <id> <status>", ErrUsage)
		}
		st, err := statusArg(args[1:])
		if err != nil {
			return err
		}
		return p.Transition(ctx, args[0], st)
	}}
	cmds["revisions"] = Command{Usage: "revisions <id>", Run: func(ctx context.Context, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: revisions <id>", ErrUsage)
		}
		_, err := p.Revisions(ctx, args[0])
		return err
	}}
	cmds["restore"] = Command{Usage: "restore <id> <revision>", Run: func(ctx context.Context, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("%w: restore <id> <revision>", ErrUsage)
		}
		n, err := atoi(args[1:])
		if err != nil {
			return err
		}
		return p.Restore(ctx, args[0], n)
	}}

	return cmds
}
