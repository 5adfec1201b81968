package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishExpires(t *testing.T) {
	s := New(time.Minute)
	defer s.Close()

	id := s.Publish(LevelError, "Failed to load posts", 20*time.Millisecond)
	require.NotEmpty(t, id)

	active := s.Active()
	require.Len(t, active, 1)
	assert.Equal(t, LevelError, active[0].Level)
	assert.Equal(t, "Failed to load posts", active[0].Message)

	assert.Eventually(t, func() bool { return len(s.Active()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestDismiss(t *testing.T) {
	s := New(time.Minute)
	defer s.Close()

	a := s.Success("Post deleted")
	b := s.Warning("2 docs failed to upload")

	assert.True(t, s.Dismiss(a))
	assert.False(t, s.Dismiss(a))

	active := s.Active()
	require.Len(t, active, 1)
	assert.Equal(t, b, active[0].ID)
}

func TestStickyNotification(t *testing.T) {
	s := New(time.Minute)
	defer s.Close()

	s.Publish(LevelInfo, "connected", 0)
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, s.Active(), 1)
}

func TestSubscribe(t *testing.T) {
	s := New(10 * time.Millisecond)
	defer s.Close()

	var mu sync.Mutex
	var events []Event
	unsubscribe := s.Subscribe(func(e Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	s.Info("reloaded")
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(events) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.False(t, events[0].Removed)
	assert.True(t, events[1].Removed)
	assert.Equal(t, events[0].Notification.ID, events[1].Notification.ID)
	mu.Unlock()

	unsubscribe()
	s.Info("ignored")

	mu.Lock()
	assert.Len(t, events, 2)
	mu.Unlock()
}

func TestCloseStopsTimers(t *testing.T) {
	s := New(time.Minute)
	s.Error("Failed to delete post")
	s.Close()

	assert.Empty(t, s.Active())
	assert.Empty(t, s.Publish(LevelInfo, "after close", time.Second))
}
