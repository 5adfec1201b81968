// Package console implements the admin pages driven from the terminal. Every
// command mutates page state the way the matching UI control would.
package console

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/daniilsolovey/trading-admin/internal/adminapi"
	"github.com/daniilsolovey/trading-admin/internal/domain"
	"github.com/daniilsolovey/trading-admin/internal/listctl"
	"github.com/daniilsolovey/trading-admin/internal/notify"
)

var ErrUsage = errors.New("invalid arguments")

// Env carries the dependencies shared by every page.
type Env struct {
	Client    *adminapi.Client
	Notify    *notify.Store
	Confirmer listctl.Confirmer
	Logger    *slog.Logger
	Debounce  time.Duration
	PerPage   int

	// LiveURL enables the posts live channel when set.
	LiveURL      string
	Token        string
	PollInterval time.Duration

	// OutDir receives exported files.
	OutDir string
}

func (e Env) log() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e Env) notifier() listctl.Notifier {
	if e.Notify == nil {
		return nil
	}
	return e.Notify
}

// notice publishes to the notification store when one is configured.
func (e Env) notice(level notify.Level, msg string) {
	if e.Notify == nil {
		return
	}
	switch level {
	case notify.LevelSuccess:
		e.Notify.Success(msg)
	case notify.LevelWarning:
		e.Notify.Warning(msg)
	case notify.LevelError:
		e.Notify.Error(msg)
	default:
		e.Notify.Info(msg)
	}
}

func (e Env) options(resource string, stats listctl.Refresher) listctl.Options {
	return listctl.Options{
		Resource:  resource,
		Debounce:  e.Debounce,
		Notifier:  e.notifier(),
		Confirmer: e.Confirmer,
		Stats:     stats,
		Logger:    e.Logger,
	}
}

// Command is one verb of a page.
type Command struct {
	Usage string
	Run   func(ctx context.Context, args []string) error
}

type Page interface {
	Name() string
	Mount(ctx context.Context) error
	Close()
	Render(w io.Writer)
	Commands() map[string]Command
}

// list pairs a controller with the stats panel it refreshes.
type list[K cmp.Ordered, T listctl.Record[K], F any, S any] struct {
	*listctl.Controller[K, T, F]
	stats *listctl.StatsHolder[S]
}

func newList[K cmp.Ordered, T listctl.Record[K], F any, S any](
	env Env,
	resource string,
	fetch listctl.Fetcher[T, F],
	initial F,
	fetchStats func(ctx context.Context) (S, error),
) list[K, T, F, S] {
	stats := listctl.NewStats(resource+" stats", fetchStats, env.notifier(), env.Logger)
	ctl := listctl.New[K, T, F](fetch, initial, env.options(resource, stats))
	return list[K, T, F, S]{Controller: ctl, stats: stats}
}

func (l list[K, T, F, S]) Stats() (S, bool) { return l.stats.Value() }

// selectionCommands are shared by every list page.
func (l list[K, T, F, S]) selectionCommands(parse func(string) (K, error)) map[string]Command {
	return map[string]Command{
		"select": {Usage: "select <id>...", Run: func(_ context.Context, args []string) error {
			keys, err := parseKeys(args, parse)
			if err != nil {
				return err
			}
			for _, k := range keys {
				l.Selection().Toggle(k)
			}
			return nil
		}},
		"select-all": {Usage: "select-all", Run: func(context.Context, []string) error {
			l.ToggleAll()
			return nil
		}},
		"clear": {Usage: "clear", Run: func(context.Context, []string) error {
			l.Selection().Clear()
			return nil
		}},
		"reload": {Usage: "reload", Run: func(ctx context.Context, _ []string) error {
			return l.Reload(ctx)
		}},
	}
}

func parseKeys[K any](args []string, parse func(string) (K, error)) ([]K, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: at least one id is required", ErrUsage)
	}
	keys := make([]K, 0, len(args))
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			if part == "" {
				continue
			}
			k, err := parse(part)
			if err != nil {
				return nil, fmt.Errorf("%w: bad id %q", ErrUsage, part)
			}
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func parseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

func parseString(s string) (string, error) { return s, nil }

func oneID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: exactly one id is required", ErrUsage)
	}
	id, err := parseInt64(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: bad id %q", ErrUsage, args[0])
	}
	return id, nil
}

func atoi(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: one number is required", ErrUsage)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: bad number %q", ErrUsage, args[0])
	}
	return n, nil
}

// saveBlob writes an export into dir and returns its path.
func saveBlob(dir string, b adminapi.Blob) (string, error) {
	if dir == "" {
		dir = "."
	}
	name := filepath.Base(b.Filename)
	if name == "." || name == string(filepath.Separator) {
		name = "export"
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b.Data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func boolArg(args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("%w: expected on|off", ErrUsage)
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected on|off, got %q", ErrUsage, args[0])
}

func statusArg(args []string) (domain.Status, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: one status is required", ErrUsage)
	}
	st := domain.Status(args[0])
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrUsage, args[0])
	}
	return st, nil
}
