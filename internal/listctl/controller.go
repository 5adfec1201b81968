package listctl

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

// Record is anything listed by a Controller.
type Record[K cmp.Ordered] interface {
	Key() K
}

// Fetcher loads one page for the given filter.
type Fetcher[T, F any] func(ctx context.Context, filter F) (domain.ListResponse[T], error)

type Options struct {
	// Resource is used in notifications, e.g. "Failed to load posts".
	Resource  string
	Debounce  time.Duration
	Notifier  Notifier
	Confirmer Confirmer
	Stats     Refresher
	Logger    *slog.Logger
}

// Action is a row or bulk mutation.
type Action[K cmp.Ordered] struct {
	// Name completes "Failed to <Name>".
	Name        string
	IDs         []K
	Destructive bool
	Prompt      string
	Success     string
	Call        func(ctx context.Context) error

	// ReloadOnError refetches list and stats even when Call fails, for
	// actions that may have partially applied. The selection is kept.
	ReloadOnError bool
}

// Controller owns filter state, the loaded page, selection and the debounced
// reload of one admin list.
type Controller[K cmp.Ordered, T Record[K], F any] struct {
	fetch     Fetcher[T, F]
	resource  string
	notify    Notifier
	confirmer Confirmer
	stats     Refresher
	log       *slog.Logger
	debounce  *Debouncer
	selection *Selection[K]

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	filter    F
	records   []T
	meta      domain.PaginationMeta
	seq       uint64
	loading   bool
	fetches   int
	onSettled func()
	onChange  func()
}

func New[K cmp.Ordered, T Record[K], F any](fetch Fetcher[T, F], initial F, opts Options) *Controller[K, T, F] {
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Confirmer == nil {
		opts.Confirmer = AlwaysConfirm
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Resource == "" {
		opts.Resource = "records"
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller[K, T, F]{
		fetch:     fetch,
		resource:  opts.Resource,
		notify:    opts.Notifier,
		confirmer: opts.Confirmer,
		stats:     opts.Stats,
		log:       opts.Logger.With("resource", opts.Resource),
		selection: NewSelection[K](),
		ctx:       ctx,
		cancel:    cancel,
		filter:    initial,
	}
	c.debounce = NewDebouncer(opts.Debounce, func() {
		if err := c.Reload(c.ctx); err != nil && !errors.Is(err, ErrStaleResponse) {
			c.log.Debug("debounced reload failed", "error", err)
		}
	})

	return c
}

// Mount arms the debounced effect and performs the initial load of list and
// stats. Arming does not fire the effect, so the list is fetched once. Filter
// updates made while the initial load is in flight schedule a reload of
// their own, and the initial response is then discarded as stale.
func (c *Controller[K, T, F]) Mount(ctx context.Context) error {
	c.debounce.Start()
	return c.reloadAll(ctx)
}

// Update applies fn to the filter and schedules a debounced reload. Before
// Mount only the filter changes; the initial load picks it up.
func (c *Controller[K, T, F]) Update(fn func(f *F)) {
	c.mu.Lock()
	fn(&c.filter)
	c.mu.Unlock()

	c.debounce.Trigger()
}

// Flush runs a pending debounced reload now.
func (c *Controller[K, T, F]) Flush() bool {
	return c.debounce.Flush()
}

func (c *Controller[K, T, F]) Pending() bool {
	return c.debounce.Pending()
}

// Reload fetches the page for the current filter. A response that is not
// the latest issued is discarded with ErrStaleResponse. On failure the
// previous records are kept.
func (c *Controller[K, T, F]) Reload(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	token := c.seq
	filter := c.filter
	c.loading = true
	c.fetches++
	c.mu.Unlock()

	resp, err := c.fetch(ctx, filter)

	c.mu.Lock()
	if token != c.seq {
		c.mu.Unlock()
		c.log.Debug("discarding stale list response", "token", token)
		return ErrStaleResponse
	}
	c.loading = false

	if err != nil {
		c.mu.Unlock()
		c.log.Error("list fetch failed", "error", err)
		c.notify.Error("Failed to load " + c.resource)
		return fmt.Errorf("load %s: %w", c.resource, err)
	}

	c.records = resp.Data
	c.meta = resp.Meta
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange()
	}
	return nil
}

// Mutate runs a row or bulk action. Destructive actions are confirmed first.
// On success list and stats are refetched, the selection is cleared and the
// settled hook runs. Reload failures after a successful call are reported
// by the reload itself and do not fail the action.
func (c *Controller[K, T, F]) Mutate(ctx context.Context, a Action[K]) error {
	if a.Destructive {
		prompt := a.Prompt
		if prompt == "" {
			prompt = fmt.Sprintf("%s (%d selected)?", a.Name, len(a.IDs))
		}
		ok, err := c.confirmer.Confirm(ctx, prompt)
		if err != nil {
			return fmt.Errorf("confirm %s: %w", a.Name, err)
		}
		if !ok {
			return ErrCancelled
		}
	}

	if err := a.Call(ctx); err != nil {
		c.log.Error("action failed", "action", a.Name, "ids", len(a.IDs), "error", err)
		c.notify.Error("Failed to " + a.Name)
		if a.ReloadOnError {
			_ = c.reloadAll(ctx)
		}
		return fmt.Errorf("%s: %w", a.Name, err)
	}

	if err := c.reloadAll(ctx); err != nil {
		c.log.Warn("reload after action failed", "action", a.Name, "error", err)
	}

	c.selection.Clear()

	c.mu.Lock()
	settled := c.onSettled
	c.mu.Unlock()
	if settled != nil {
		settled()
	}

	msg := a.Success
	if msg == "" {
		msg = "Done: " + a.Name
	}
	c.notify.Success(msg)

	return nil
}

// reloadAll refetches list and stats concurrently.
func (c *Controller[K, T, F]) reloadAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return skipStale(c.Reload(ctx)) })
	if c.stats != nil {
		g.Go(func() error { return skipStale(c.stats.Refresh(ctx)) })
	}
	return g.Wait()
}

func skipStale(err error) error {
	if errors.Is(err, ErrStaleResponse) {
		return nil
	}
	return err
}

// Patch applies fn to the loaded record with the given key in place.
func (c *Controller[K, T, F]) Patch(key K, fn func(*T)) bool {
	c.mu.Lock()
	idx := -1
	for i := range c.records {
		if c.records[i].Key() == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	fn(&c.records[idx])
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange()
	}
	return true
}

// SelectAll selects every record on the loaded page.
func (c *Controller[K, T, F]) SelectAll() {
	c.selection.SelectAll(c.Keys())
}

func (c *Controller[K, T, F]) ToggleAll() {
	c.selection.ToggleAll(c.Keys())
}

func (c *Controller[K, T, F]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, len(c.records))
	for i, r := range c.records {
		keys[i] = r.Key()
	}
	return keys
}

func (c *Controller[K, T, F]) Selection() *Selection[K] { return c.selection }

// Filter returns a copy of the current filter.
func (c *Controller[K, T, F]) Filter() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Controller[K, T, F]) Records() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.records))
	copy(out, c.records)
	return out
}

func (c *Controller[K, T, F]) Meta() domain.PaginationMeta {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.meta
}

func (c *Controller[K, T, F]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Fetches reports how many list fetches were issued.
func (c *Controller[K, T, F]) Fetches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}

// OnSettled registers the hook run after a successful action, typically to
// close an open modal.
func (c *Controller[K, T, F]) OnSettled(fn func()) {
	c.mu.Lock()
	c.onSettled = fn
	c.mu.Unlock()
}

// OnChange registers a hook run whenever the loaded records change.
func (c *Controller[K, T, F]) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Context is cancelled by Close.
func (c *Controller[K, T, F]) Context() context.Context { return c.ctx }

// Close stops the debounced effect and abandons in-flight fetches.
func (c *Controller[K, T, F]) Close() {
	c.debounce.Stop()
	c.cancel()
}
