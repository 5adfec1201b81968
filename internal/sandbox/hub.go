package sandbox

import (
	"sync"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

const subscriberBuffer = 32

// Hub fans live events out to connected clients. Slow clients miss events
// rather than block publishers.
type Hub struct {
	mu   sync.Mutex
	subs map[chan domain.LiveEvent]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan domain.LiveEvent]struct{})}
}

// Subscribe returns an event stream and a func that closes it.
func (h *Hub) Subscribe() (<-chan domain.LiveEvent, func()) {
	ch := make(chan domain.LiveEvent, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *Hub) Publish(ev domain.LiveEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
