package listctl

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSelection(t *testing.T) {
	s := NewSelection[int64]()
	assert.False(t, s.HasSelection())

	assert.True(t, s.Toggle(5))
	assert.True(t, s.Toggle(1))
	assert.False(t, s.Toggle(5))
	assert.Equal(t, []int64{1}, s.IDs())

	s.Select(9, 3, 3)
	assert.Equal(t, []int64{1, 3, 9}, s.IDs())
	assert.Equal(t, 3, s.Count())

	s.Deselect(1, 100)
	assert.Equal(t, []int64{3, 9}, s.IDs())
	assert.True(t, s.Has(9))

	s.SelectAll([]int64{20, 21})
	assert.Equal(t, []int64{20, 21}, s.IDs())

	s.ToggleAll([]int64{20, 21})
	assert.False(t, s.HasSelection())

	s.Select(20)
	s.ToggleAll([]int64{20, 21})
	assert.Equal(t, 2, s.Count())

	page := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	s.SelectAll(page)
	s.Deselect(4)
	assert.True(t, s.HasSelection())
	assert.Equal(t, len(page)-1, s.Count())

	s.Clear()
	assert.Empty(t, s.IDs())
	assert.False(t, s.HasSelection())
}

func TestSelectionStringKeys(t *testing.T) {
	s := NewSelection[string]()
	s.Select("b", "a")
	assert.Equal(t, []string{"a", "b"}, s.IDs())
}

func TestDebouncerStop(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(10*time.Millisecond, func() { calls.Add(1) })
	d.Start()
	d.Trigger()
	d.Stop()
	d.Trigger()

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, calls.Load())
	assert.False(t, d.Pending())
}

func TestDebouncerDefaultDelay(t *testing.T) {
	d := NewDebouncer(0, func() {})
	assert.Equal(t, DefaultDebounce, d.delay)
}
