package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/daniilsolovey/trading-admin/internal/adminapi"
	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/listctl"
	"github.com/daniilsolovey/trading-admin/internal/notify"
)

// Attachment is a local file uploaded with a new indicator. Label is the
// platform for files and the title for docs.
type Attachment struct {
	Label string
	Path  string
}

// ParseAttachment reads "label=path".
func ParseAttachment(s string) (Attachment, error) {
	label, path, ok := strings.Cut(s, "=")
	if !ok || label == "" || path == "" {
		return Attachment{}, fmt.Errorf("%w: expected label=path, got %q", ErrUsage, s)
	}
	return Attachment{Label: label, Path: path}, nil
}

type IndicatorsPage struct {
	list[int64, domain.Indicator, adminapi.IndicatorFilter, domain.IndicatorStats]
	env Env
}

func NewIndicatorsPage(env Env) *IndicatorsPage {
	return &IndicatorsPage{
		env: env,
		list: newList[int64](env, "indicators",
			env.Client.ListIndicators,
			adminapi.IndicatorFilter{PerPage: env.PerPage},
			env.Client.IndicatorStats,
		),
	}
}

func (p *IndicatorsPage) Name() string { return "indicators" }

// Create creates the indicator, then uploads every platform file and every
// doc. Upload failures leave the indicator in place: they are joined into
// the returned error next to the created indicator and reported as a
// warning.
func (p *IndicatorsPage) Create(ctx context.Context, in domain.IndicatorInput, files, docs []Attachment) (domain.Indicator, error) {
	var (
		created   domain.Indicator
		uploadErr error
	)

	err := p.Mutate(ctx, listctl.Action[int64]{
		Name:    "create indicator",
		Success: "Indicator created",
		Call: func(ctx context.Context) error {
			var err error
			if created, err = p.env.Client.CreateIndicator(ctx, in); err != nil {
				return err
			}

			var errs []error
			for _, f := range files {
				errs = append(errs, p.upload(f, func(r io.Reader) error {
					_, err := p.env.Client.UploadIndicatorFile(ctx, created.ID, f.Label, filepath.Base(f.Path), r)
					return err
				}))
			}
			for _, d := range docs {
				errs = append(errs, p.upload(d, func(r io.Reader) error {
					_, err := p.env.Client.UploadIndicatorDoc(ctx, created.ID, d.Label, filepath.Base(d.Path), r)
					return err
				}))
			}
			uploadErr = errors.Join(errs...)
			return nil
		},
	})
	if err != nil {
		return created, err
	}

	if uploadErr != nil {
		p.env.log().Warn("indicator created with failed uploads", "id", created.ID, "error", uploadErr)
		p.env.notice(notify.LevelWarning, "Indicator created, but some files failed to upload")
	}
	return created, uploadErr
}

func (p *IndicatorsPage) upload(a Attachment, send func(r io.Reader) error) error {
	f, err := os.Open(a.Path)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Label, err)
	}
	defer f.Close()

	if err := send(f); err != nil {
		return fmt.Errorf("upload %s (%s): %w", filepath.Base(a.Path), a.Label, err)
	}
	return nil
}

// Reprice updates the price of an indicator, keeping its other fields.
func (p *IndicatorsPage) Reprice(ctx context.Context, id int64, price float64) error {
	cur, ok := p.find(id)
	if !ok {
		return fmt.Errorf("indicator %d is not on the current page", id)
	}
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:    "update indicator",
		IDs:     []int64{id},
		Success: "Indicator updated",
		Call: func(ctx context.Context) error {
			_, err := p.env.Client.UpdateIndicator(ctx, id, domain.IndicatorInput{
				Name:        cur.Name,
				Slug:        cur.Slug,
				Description: cur.Description,
				Platforms:   cur.Platforms,
				Price:       price,
				IsActive:    cur.IsActive,
				IsFeatured:  cur.IsFeatured,
			})
			return err
		},
	})
}

func (p *IndicatorsPage) find(id int64) (domain.Indicator, bool) {
	for _, ind := range p.Records() {
		if ind.ID == id {
			return ind, true
		}
	}
	return domain.Indicator{}, false
}

func (p *IndicatorsPage) Delete(ctx context.Context, id int64) error {
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:        "delete indicator",
		IDs:         []int64{id},
		Destructive: true,
		Prompt:      fmt.Sprintf("Delete indicator %d and its files?", id),
		Success:     "Indicator deleted",
		Call:        func(ctx context.Context) error { return p.env.Client.DeleteIndicator(ctx, id) },
	})
}

// Toggle flips is_active or is_featured.
func (p *IndicatorsPage) Toggle(ctx context.Context, id int64, field string) error {
	return p.Mutate(ctx, listctl.Action[int64]{
		Name:    "toggle " + strings.TrimPrefix(field, "is_"),
		IDs:     []int64{id},
		Success: "Indicator updated",
		Call: func(ctx context.Context) error {
			_, err := p.env.Client.ToggleIndicator(ctx, id, field)
			return err
		},
	})
}

func (p *IndicatorsPage) Render(w io.Writer) {
	if st, ok := p.Stats(); ok {
		fmt.Fprintf(w, "total %d  active %d  featured %d\n", st.Total, st.Active, st.Featured)
	}

	sel := p.Selection()
	t := newTable(w, "", "ID", "Name", "Platforms", "Price", "Active", "Featured", "Files", "Docs")
	for _, ind := range p.Records() {
		t.Append([]string{
			mark(sel.Has(ind.ID)), i64(ind.ID), truncate(ind.Name, 36), join(ind.Platforms),
			strconv.FormatFloat(ind.Price, 'f', 2, 64), yesNo(ind.IsActive), yesNo(ind.IsFeatured),
			strconv.Itoa(ind.FileCount), strconv.Itoa(ind.DocCount),
		})
	}
	t.Render()
	renderMeta(w, p.Meta(), sel.Count())
}

func (p *IndicatorsPage) Commands() map[string]Command {
	cmds := p.selectionCommands(parseInt64)

	cmds["search"] = Command{Usage: "search <text>", Run: func(_ context.Context, args []string) error {
		p.Update(func(f *adminapi.IndicatorFilter) {
			f.Search = strings.Join(args, " ")
			f.Page = 1
		})
		return nil
	}}
	cmds["active"] = Command{Usage: "active <on|off|all>", Run: func(_ context.Context, args []string) error {
		var active *bool
		if len(args) != 1 || args[0] != "all" {
			v, err := boolArg(args)
			if err != nil {
				return err
			}
			active = &v
		}
		p.Update(func(f *adminapi.IndicatorFilter) {
			f.IsActive = active
			f.Page = 1
		})
		return nil
	}}
	cmds["page"] = Command{Usage: "page <n>", Run: func(_ context.Context, args []string) error {
		n, err := atoi(args)
		if err != nil {
			return err
		}
		p.Update(func(f *adminapi.IndicatorFilter) { f.Page = n })
		return nil
	}}

	const createUsage = "create <price> <name> [file:platform=path]... [doc:title=path]..."
	cmds["create"] = Command{Usage: createUsage, Run: func(ctx context.Context, args []string) error {
		if len(args) < 2 {
			return fmt.Errorf("%w: %s", ErrUsage, createUsage)
		}
		price, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("%w: bad price %q", ErrUsage, args[0])
		}

		var (
			name        []string
			files, docs []Attachment
		)
		for _, a := range args[1:] {
			switch {
			case strings.HasPrefix(a, "file:"):
				att, err := ParseAttachment(strings.TrimPrefix(a, "file:"))
				if err != nil {
					return err
				}
				files = append(files, att)
			case strings.HasPrefix(a, "doc:"):
				att, err := ParseAttachment(strings.TrimPrefix(a, "doc:"))
				if err != nil {
					return err
				}
				docs = append(docs, att)
			default:
				name = append(name, a)
			}
		}

		platforms := make([]string, 0, len(files))
		for _, f := range files {
			platforms = append(platforms, f.Label)
		}
		_, err = p.Create(ctx, domain.IndicatorInput{
			Name:      strings.Join(name, " "),
			Price:     price,
			Platforms: platforms,
			IsActive:  true,
		}, files, docs)
		return err
	}}
	cmds["price"] = Command{Usage: "price <id> <price>", Run: func(ctx context.Context, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("%w: price <id> <price>", ErrUsage)
		}
		id, err := oneID(args[:1])
		if err != nil {
			return err
		}
		price, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("%w: bad price %q", ErrUsage, args[1])
		}
		return p.Reprice(ctx, id, price)
	}}
	cmds["delete"] = Command{Usage: "delete <id>", Run: func(ctx context.Context, args []string) error {
		id, err := oneID(args)
		if err != nil {
			return err
		}
		return p.Delete(ctx, id)
	}}
	cmds["toggle"] = Command{Usage: "toggle <id> <active|featured>", Run: func(ctx context.Context, args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("%w: toggle <id> <active|featured>", ErrUsage)
		}
		id, err := oneID(args[:1])
		if err != nil {
			return err
		}
		field := adminapi.ToggleActive
		switch args[1] {
		case "active":
		case "featured":
			field = adminapi.ToggleFeatured
		default:
			return fmt.Errorf("%w: toggle <id> <active|featured>", ErrUsage)
		}
		return p.Toggle(ctx, id, field)
	}}

	return cmds
}
