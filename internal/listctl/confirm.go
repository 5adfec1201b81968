package listctl

import "context"

// Confirmer asks the operator before a destructive action runs.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt. Used by non-interactive commands.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// Notifier receives the user-visible outcome of loads and mutations.
type Notifier interface {
	Success(message string) string
	Error(message string) string
}

type nopNotifier struct{}

func (nopNotifier) Success(string) string { return "" }
func (nopNotifier) Error(string) string   { return "" }
