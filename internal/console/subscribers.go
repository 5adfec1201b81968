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

// SubscribersPage manages the email list. The backend has no bulk delete,
// so bulk removal issues one request per subscriber.
type SubscribersPage struct {
	list[int64, domain.Subscriber, adminapi.SubscriberFilter, domain.SubscriberStats]
	env Env
}

func NewSubscribersPage(env Env) *SubscribersPage {
	return &SubscribersPage{
		env: env,
		list: newList[int64](env, "subscribers",
			env.Client.ListSubscribers,
			adminapi.SubscriberFilter{PerPage: env.PerPage},
			env.Client.SubscriberStats,
		),
	}
}

func (p *SubscribersPage) Name() string { return "subscribers" }

func (p *SubscribersPage) Create(ctx context.Context, in domain.SubscriberInput) error {
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:    "add subscriber",
		Success: "Subscriber added",
		Call: func(ctx context.Context) error {
			_, err := p.env.Client.CreateSubscriber(ctx, in)
			return err
		},
	})
}

func (p *SubscribersPage) Delete(ctx context.Context, id int64) error {
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:        "delete subscriber",
		IDs:         []int64{id},
		Destructive: true,
		Prompt:      fmt.Sprintf("Delete subscriber %d?", id),
		Success:     "Subscriber deleted",
		Call:        func(ctx context.Context) error { return p.env.Client.DeleteSubscriber(ctx, id) },
	})
}

// BulkDelete deletes the selection one by one. The first failure stops the
// run; the list is reloaded anyway since earlier deletes already applied.
func (p *SubscribersPage) BulkDelete(ctx context.Context) error {
	ids := p.Selection().IDs()
	if len(ids) == 0 {
		return listctl.ErrEmptySelection
	}

	return p.Mutate(ctx, listctl.Action[int64]{
		Name:          "delete subscribers",
		IDs:           ids,
		Destructive:   true,
		Prompt:        fmt.Sprintf("Delete %d subscribers?", len(ids)),
		Success:       fmt.Sprintf("%d subscribers deleted", len(ids)),
		ReloadOnError: true,
		Call: func(ctx context.Context) error {
			for i, id := range ids {
				if err := p.env.Client.DeleteSubscriber(ctx, id); err != nil {
					return fmt.Errorf("subscriber %d (%d of %d deleted): %w", id, i, len(ids), err)
				}
			}
			return nil
		},
	})
}

// Export downloads the list matching the current filter.
func (p *SubscribersPage) Export(ctx context.Context) (string, error) {
	f := p.Filter()
	f.Page, f.PerPage = 0, 0

	blob, err := p.env.Client.ExportSubscribers(ctx, f)
	if err == nil {
		var path string
		if path, err = saveBlob(p.env.OutDir, blob); err == nil {
			p.env.notice(notify.LevelSuccess, "Exported to "+path)
			return path, nil
		}
	}

	p.env.log().Error("export subscribers failed", "error", err)
	p.env.notice(notify.LevelError, "Failed to export subscribers")
	return "", fmt.Errorf("export subscribers: %w", err)
}

func (p *SubscribersPage) Render(w io.Writer) {
	if st, ok := p.Stats(); ok {
		fmt.Fprintf(w, "total %d  subscribed %d  unsubscribed %d  bounced %d  complained %d\n",
			st.Total, st.Subscribed, st.Unsubscribed, st.Bounced, st.Complained)
	}

	sel := p.Selection()
	t := newTable(w, "", "ID", "Email", "Name", "Status", "Score", "Tags", "Joined")
	for _, s := range p.Records() {
		t.Append([]string{
			mark(sel.Has(s.ID)), i64(s.ID), s.Email, s.Name, string(s.Status),
			strconv.Itoa(s.Score), join(s.Tags), date(&s.CreatedAt),
		})
	}
	t.Render()
	renderMeta(w, p.Meta(), sel.Count())
}

func (p *SubscribersPage) Commands() map[string]Command {
	cmds := p.selectionCommands(parseInt64)

	cmds["search"] = Command{Usage: "search <text>", Run: func(_ context.Context, args []string) error {
		p.Update(func(f *adminapi.SubscriberFilter) {
			f.Search = strings.Join(args, " ")
			f.Page = 1
		})
		return nil
	}}
	cmds["status"] = Command{Usage: "status <status|all>", Run: func(_ context.Context, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%w: status <status|all>", ErrUsage)
		}
		st := domain.SubscriberStatus(args[0])
		if args[0] == "all" {
			st = ""
		} else if !st.Valid() {
			return fmt.Errorf("%w: unknown subscriber status %q", ErrUsage, args[0])
		}
		p.Update(func(f *adminapi.SubscriberFilter) {
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
		p.Update(func(f *adminapi.SubscriberFilter) { f.Page = n })
		return nil
	}}

	cmds["add"] = Command{Usage: "add <email> [name]", Run: func(ctx context.Context, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("%w: add <email> [name]", ErrUsage)
		}
		return p.Create(ctx, domain.SubscriberInput{Email: args[0], Name: strings.Join(args[1:], " ")})
	}}
	cmds["delete"] = Command{Usage: "delete <id>", Run: func(ctx context.Context, args []string) error {
		id, err := oneID(args)
		if err != nil {
			return err
		}
		return p.Delete(ctx, id)
	}}
	cmds["bulk-delete"] = Command{Usage: "bulk-delete", Run: func(ctx context.Context, _ []string) error {
		return p.BulkDelete(ctx)
	}}
	cmds["export"] = Command{Usage: "export", Run: func(ctx context.Context, _ []string) error {
		_, err := p.Export(ctx)
		return err
	}}

	return cmds
}
