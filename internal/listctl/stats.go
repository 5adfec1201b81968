package listctl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Refresher reloads a secondary aggregate such as a stats panel.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// StatsHolder keeps the last successfully fetched stats value.
type StatsHolder[S any] struct {
	name   string
	fetch  func(ctx context.Context) (S, error)
	notify Notifier
	log    *slog.Logger

	mu     sync.RWMutex
	value  S
	loaded bool
	calls  int
	seq    uint64
}

func NewStats[S any](name string, fetch func(ctx context.Context) (S, error), notify Notifier, logger *slog.Logger) *StatsHolder[S] {
	if notify == nil {
		notify = nopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHolder[S]{name: name, fetch: fetch, notify: notify, log: logger}
}

// Refresh fetches the stats. Only the latest issued request may store its
// result; an older one that finishes later returns ErrStaleResponse.
func (s *StatsHolder[S]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.calls++
	s.seq++
	token := s.seq
	s.mu.Unlock()

	v, err := s.fetch(ctx)

	s.mu.Lock()
	if token != s.seq {
		s.mu.Unlock()
		s.log.Debug("discarding stale stats response", "resource", s.name, "token", token)
		return ErrStaleResponse
	}
	if err == nil {
		s.value = v
		s.loaded = true
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error("stats fetch failed", "resource", s.name, "error", err)
		s.notify.Error("Failed to load " + s.name)
		return fmt.Errorf("load %s: %w", s.name, err)
	}
	return nil
}

// Value returns the last loaded value and whether one was ever loaded.
func (s *StatsHolder[S]) Value() (S, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.loaded
}

// Refreshes reports how many times Refresh was called.
func (s *StatsHolder[S]) Refreshes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls
}
