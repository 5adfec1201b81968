package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

const DefaultTTL = 5 * time.Second

type Notification struct {
	ID        string
	Level     Level
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Event is delivered to subscribers on publish and on removal.
type Event struct {
	Notification Notification
	Removed      bool
}

// Store holds active notifications and expires them after their TTL.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	items  []Notification
	timers map[string]*time.Timer
	subs   map[int]func(Event)
	nextID int
	closed bool
}

// New creates a store using ttl for the level helpers. Zero means DefaultTTL.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:    ttl,
		now:    time.Now,
		timers: make(map[string]*time.Timer),
		subs:   make(map[int]func(Event)),
	}
}

// Publish adds a notification and returns its id. A non-positive ttl keeps
// it until dismissed.
func (s *Store) Publish(level Level, message string, ttl time.Duration) string {
	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: s.now(),
	}
	if ttl > 0 {
		n.ExpiresAt = n.CreatedAt.Add(ttl)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ""
	}
	s.items = append(s.items, n)
	if ttl > 0 {
		id := n.ID
		s.timers[id] = time.AfterFunc(ttl, func() { s.Dismiss(id) })
	}
	subs := s.subscribers()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(Event{Notification: n})
	}
	return n.ID
}

func (s *Store) Info(message string) string    { return s.Publish(LevelInfo, message, s.ttl) }
func (s *Store) Success(message string) string { return s.Publish(LevelSuccess, message, s.ttl) }
func (s *Store) Warning(message string) string { return s.Publish(LevelWarning, message, s.ttl) }
func (s *Store) Error(message string) string   { return s.Publish(LevelError, message, s.ttl) }

// Dismiss removes a notification. It reports whether id was active.
func (s *Store) Dismiss(id string) bool {
	s.mu.Lock()
	idx := slices.IndexFunc(s.items, func(n Notification) bool { return n.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	n := s.items[idx]
	s.items = slices.Delete(s.items, idx, idx+1)
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	subs := s.subscribers()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(Event{Notification: n, Removed: true})
	}
	return true
}

// Active returns notifications in publish order.
func (s *Store) Active() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Subscribe registers fn for every publish and removal. The returned func
// unsubscribes.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close stops every pending expiry timer and drops all notifications.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.items = nil
	s.closed = true
}

func (s *Store) subscribers() []func(Event) {
	out := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
