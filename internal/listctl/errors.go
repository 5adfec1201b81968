package listctl

import "errors"

var (
	// ErrCancelled is returned when a destructive action is declined.
	ErrCancelled = errors.New("action cancelled")

	// ErrStaleResponse is returned by Reload when a newer fetch was issued
	// before this one completed. Its result is discarded.
	ErrStaleResponse = errors.New("stale response discarded")

	// ErrEmptySelection is returned by bulk actions with nothing selected.
	ErrEmptySelection = errors.New("nothing selected")
)
