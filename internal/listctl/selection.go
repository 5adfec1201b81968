package listctl

import (
	"cmp"
	"maps"
	"slices"
	"sync"
)

// Selection is a set of record keys chosen on the current page. It is
// independent of server state.
type Selection[K cmp.Ordered] struct {
	mu   sync.RWMutex
	keys map[K]struct{}
}

func NewSelection[K cmp.Ordered]() *Selection[K] {
	return &Selection[K]{keys: make(map[K]struct{})}
}

// Toggle flips key and reports whether it is selected afterwards.
func (s *Selection[K]) Toggle(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[key]; ok {
		delete(s.keys, key)
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

func (s *Selection[K]) Select(keys ...K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		s.keys[k] = struct{}{}
	}
}

func (s *Selection[K]) Deselect(keys ...K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.keys, k)
	}
}

// SelectAll replaces the selection with the given page keys.
func (s *Selection[K]) SelectAll(page []K) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.keys)
	for _, k := range page {
		s.keys[k] = struct{}{}
	}
}

// ToggleAll clears the selection when every page key is already selected,
// otherwise selects the whole page.
func (s *Selection[K]) ToggleAll(page []K) {
	s.mu.Lock()
	all := len(page) > 0 && len(s.keys) == len(page)
	if all {
		for _, k := range page {
			if _, ok := s.keys[k]; !ok {
				all = false
				break
			}
		}
	}
	s.mu.Unlock()

	if all {
		s.Clear()
		return
	}
	s.SelectAll(page)
}

func (s *Selection[K]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.keys)
}

func (s *Selection[K]) Has(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[key]
	return ok
}

func (s *Selection[K]) HasSelection() bool {
	return s.Count() > 0
}

func (s *Selection[K]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// IDs returns the selected keys in ascending order.
func (s *Selection[K]) IDs() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.keys))
}
