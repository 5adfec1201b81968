package listctl

import (
	"sync"
	"time"
)

const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces triggers into a single call of fn made after delay has
// elapsed with no further triggers. Triggers are ignored until Start is
// called: the initial run is suppressed because the caller loads explicitly
// on mount.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	started bool
	stopped bool
}

func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Start consumes the initial run without calling fn and arms the debouncer.
func (d *Debouncer) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.stopped {
		d.started = true
	}
}

// Trigger (re)schedules fn. Any pending call is cancelled.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started || d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

// Flush runs a pending call immediately. It reports whether one was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.timer == nil || d.stopped {
		d.mu.Unlock()
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	d.mu.Unlock()

	d.fn()
	return true
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels any pending call and disables the debouncer for good.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
