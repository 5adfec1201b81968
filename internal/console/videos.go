package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/daniilsolovey/trading-admin/internal/adminapi"
	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/listctl"
	"github.com/daniilsolovey/trading-admin/internal/notify"
)

// VideosPage manages the unified video library.
type VideosPage struct {
	list[int64, domain.Video, adminapi.VideoFilter, domain.VideoStats]
	env     Env
	options *domain.VideoOptions
}

func NewVideosPage(env Env) *VideosPage {
	return &VideosPage{
		env: env,
		list: newList[int64](env, "videos",
			env.Client.ListVideos,
			adminapi.VideoFilter{PerPage: env.PerPage},
			env.Client.VideoStats,
		),
	}
}

func (p *VideosPage) Name() string { return "videos" }

// Options loads the editor select values once and caches them.
func (p *VideosPage) Options(ctx context.Context) (domain.VideoOptions, error) {
	if p.options != nil {
		return *p.options, nil
	}
	opts, err := p.env.Client.VideoOptions(ctx)
	if err != nil {
		p.env.log().Error("load video options failed", "error", err)
		p.env.notice(notify.LevelError, "Failed to load video options")
		return opts, fmt.Errorf("load video options: %w", err)
	}
	p.options = &opts
	return opts, nil
}

func (p *VideosPage) Create(ctx context.Context, in domain.VideoInput) error {
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:    "create video",
		Success: "Video created",
		Call: func(ctx context.Context) error {
			_, err := p.env.Client.CreateVideo(ctx, in)
			return err
		},
	})
}

// Retitle changes the title of a video, keeping its other fields.
func (p *VideosPage) Retitle(ctx context.Context, id int64, title string) error {
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:    "update video",
		IDs:     []int64{id},
		Success: "Video updated",
		Call: func(ctx context.Context) error {
			v, err := p.env.Client.GetVideo(ctx, id)
			if err != nil {
				return err
			}
			_, err = p.env.Client.UpdateVideo(ctx, id, domain.VideoInput{
				Title:        title,
				Slug:         v.Slug,
				ContentType:  v.ContentType,
				VideoURL:     v.VideoURL,
				ThumbnailURL: v.ThumbnailURL,
				TraderID:     v.TraderID,
				RoomIDs:      v.RoomIDs,
				IsPublished:  v.IsPublished,
				IsFeatured:   v.IsFeatured,
			})
			return err
		},
	})
}

func (p *VideosPage) Delete(ctx context.Context, id int64) error {
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:        "delete video",
		IDs:         []int64{id},
		Destructive: true,
		Prompt:      fmt.Sprintf("Delete video %d?", id),
		Success:     "Video deleted",
		Call:        func(ctx context.Context) error { return p.env.Client.DeleteVideo(ctx, id) },
	})
}

func (p *VideosPage) BulkPublish(ctx context.Context, publish bool) error {
	ids := p.Selection().IDs()
	if len(ids) == 0 {
		return listctl.ErrEmptySelection
	}
	verb := "published"
	if !publish {
		verb = "unpublished"
	}
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:    "update videos",
		IDs:     ids,
		Success: fmt.Sprintf("%d videos %s", len(ids), verb),
		Call: func(ctx context.Context) error {
			_, err := p.env.Client.BulkPublishVideos(ctx, ids, publish)
			return err
		},
	})
}

// BulkDelete soft deletes the selection, or removes it permanently with force.
func (p *VideosPage) BulkDelete(ctx context.Context, force bool) error {
	ids := p.Selection().IDs()
	if len(ids) == 0 {
		return listctl.ErrEmptySelection
	}
	prompt := fmt.Sprintf("Delete %d videos?", len(ids))
	if force {
		prompt = fmt.Sprintf("Permanently delete %d videos? This cannot be undone.", len(ids))
	}
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:        "delete videos",
		IDs:         ids,
		Destructive: true,
		Prompt:      prompt,
		Success:     fmt.Sprintf("%d videos deleted", len(ids)),
		Call: func(ctx context.Context) error {
			_, err := p.env.Client.BulkDeleteVideos(ctx, ids, force)
			return err
		},
	})
}

func (p *VideosPage) Render(w io.Writer) {
	if st, ok := p.Stats(); ok {
		fmt.Fprintf(w, "total %d  published %d", st.Total, st.Published)
		for _, ct := range domain.VideoContentTypes {
			if n := st.ByContentType[ct]; n > 0 {
				fmt.Fprintf(w, "  %s %d", ct, n)
			}
		}
		fmt.Fprintln(w)
	}

	sel := p.Selection()
	t := newTable(w, "", "ID", "Title", "Type", "Published", "Featured", "Views", "Date")
	for _, v := range p.Records() {
		t.Append([]string{
			mark(sel.Has(v.ID)), i64(v.ID), truncate(v.Title, 44), string(v.ContentType),
			yesNo(v.IsPublished), yesNo(v.IsFeatured), i64(v.Views), date(v.PublishedAt),
		})
	}
	t.Render()
	renderMeta(w, p.Meta(), sel.Count())
}

func (p *VideosPage) Commands() map[string]Command {
	cmds := p.selectionCommands(parseInt64)

	cmds["search"] = Command{Usage: "search <text>", Run: func(_ context.Context, args []string) error {
		p.Update(func(f *adminapi.VideoFilter) {
			f.Search = strings.Join(args, " ")
			f.Page = 1
		})
		return nil
	}}
	cmds["type"] = Command{Usage: "type <content type|all>", Run: func(_ context.Context, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: type <content type|all>", ErrUsage)
		}
		ct := domain.VideoContentType(args[0])
		if args[0] == "all" {
			ct = ""
		}
		p.Update(func(f *adminapi.VideoFilter) {
			f.ContentType = ct
			f.Page = 1
		})
		return nil
	}}
	cmds["published"] = Command{Usage: "published <on|off|all>", Run: func(_ context.Context, args []string) error {
		var published *bool
		if len(args) != 1 || args[0] != "all" {
			v, err := boolArg(args)
			if err != nil {
				return err
			}
			published = &v
		}
		p.Update(func(f *adminapi.VideoFilter) {
			f.IsPublished = published
			f.Page = 1
		})
		return nil
	}}
	cmds["page"] = Command{Usage: "page <n>", Run: func(_ context.Context, args []string) error {
		n, err := atoi(args)
		if err != nil {
			return err
		}
		p.Update(func(f *adminapi.VideoFilter) { f.Page = n })
		return nil
	}}

	cmds["options"] = Command{Usage: "options", Run: func(ctx context.Context, _ []string) error {
		opts, err := p.Options(ctx)
		if err != nil {
			return err
		}
		labels := func(opts []domain.Option) string {
			out := make([]string, 0, len(opts))
			for _, o := range opts {
				out = append(out, o.Value)
			}
			return join(out)
		}
		p.env.notice(notify.LevelInfo, fmt.Sprintf("types: %s; rooms: %s; traders: %s",
			labels(opts.ContentTypes), labels(opts.Rooms), labels(opts.Traders)))
		return nil
	}}
	cmds["create"] = Command{Usage: "create <type> <url> <title>", Run: func(ctx context.Context, args []string) error {
		if len(args) < 3 {
			return fmt.Errorf("%w: create <type> <url> <title>", ErrUsage)
		}
		return p.Create(ctx, domain.VideoInput{
			ContentType: domain.VideoContentType(args[0]),
			VideoURL:    args[1],
			Title:       strings.Join(args[2:], " "),
		})
	}}
	cmds["retitle"] = Command{Usage: "retitle <id> <title>", Run: func(ctx context.Context, args []string) error {
		if len(args) < 2 {
			return fmt.Errorf("%w: retitle <id> <title>", ErrUsage)
		}
		id, err := oneID(args[:1])
		if err != nil {
			return err
		}
		return p.Retitle(ctx, id, strings.Join(args[1:], " "))
	}}
	cmds["delete"] = Command{Usage: "delete <id>", Run: func(ctx context.Context, args []string) error {
		id, err := oneID(args)
		if err != nil {
			return err
		}
		return p.Delete(ctx, id)
	}}
	cmds["bulk-publish"] = Command{Usage: "bulk-publish <on|off>", Run: func(ctx context.Context, args []string) error {
		publish, err := boolArg(args)
		if err != nil {
			return err
		}
		return p.BulkPublish(ctx, publish)
	}}
	cmds["bulk-delete"] = Command{Usage: "bulk-delete [force]", Run: func(ctx context.Context, args []string) error {
		force := len(args) == 1 && args[0] == "force"
		if len(args) > 0 && !force {
			return fmt.Errorf("%w: bulk-delete [force]", ErrUsage)
		}
		return p.BulkDelete(ctx, force)
	}}

	return cmds
}
