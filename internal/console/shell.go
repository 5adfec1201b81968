package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/daniilsolovey/trading-admin/internal/listctl"
	"github.com/daniilsolovey/trading-admin/internal/notify"
)

var ErrUnknownCommand = errors.New("unknown command")

// Shell dispatches command lines to the active page. Pages are mounted the
// first time they are opened and closed with the shell.
type Shell struct {
	env   Env
	out   *lockedWriter
	pages map[string]Page
	order []string

	current Page
	mounted map[string]bool
}

// NewShell registers pages in order; the first one is active.
func NewShell(env Env, out io.Writer, pages ...Page) *Shell {
	s := &Shell{
		env:     env,
		out:     &lockedWriter{w: out},
		pages:   make(map[string]Page, len(pages)),
		mounted: make(map[string]bool, len(pages)),
	}
	for _, p := range pages {
		s.pages[p.Name()] = p
		s.order = append(s.order, p.Name())
	}
	if len(pages) > 0 {
		s.current = pages[0]
	}
	return s
}

// DefaultPages builds every admin page over env.
func DefaultPages(env Env) []Page {
	return []Page{
		NewPostsPage(env),
		NewContentPage(env),
		NewSubscribersPage(env),
		NewVideosPage(env),
		NewIndicatorsPage(env),
		NewRoomsPage(env),
	}
}

func (s *Shell) Current() Page { return s.current }

// Open switches to the named page, mounting it on first use.
func (s *Shell) Open(ctx context.Context, name string) error {
	p, ok := s.pages[name]
	if !ok {
		return fmt.Errorf("%w: no page %q", ErrUsage, name)
	}
	s.current = p
	if s.mounted[name] {
		return nil
	}

	s.mounted[name] = true
	if err := p.Mount(ctx); err != nil {
		return fmt.Errorf("mount %s: %w", name, err)
	}
	return nil
}

// Exec runs one command line.
func (s *Shell) Exec(ctx context.Context, line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	name, args := args[0], args[1:]

	switch name {
	case "help":
		s.help()
		return nil
	case "pages":
		for _, n := range s.order {
			fmt.Fprintf(s.out, "%s%s\n", mark(s.current != nil && s.current.Name() == n), n)
		}
		return nil
	case "open":
		if len(args) != 1 {
			return fmt.Errorf("%w: open <page>", ErrUsage)
		}
		return s.Open(ctx, args[0])
	case "upload":
		if len(args) != 1 {
			return fmt.Errorf("%w: upload <file>", ErrUsage)
		}
		m, err := UploadMedia(ctx, s.env, args[0])
		if err == nil {
			fmt.Fprintf(s.out, "%s %s %d bytes\n", m.URL, m.MimeType, m.Size)
		}
		return err
	}

	if s.current == nil {
		return fmt.Errorf("%w: no page open", ErrUnknownCommand)
	}
	if !s.mounted[s.current.Name()] {
		if err := s.Open(ctx, s.current.Name()); err != nil {
			return err
		}
	}

	if name == "list" {
		if f, ok := s.current.(interface{ Flush() bool }); ok {
			f.Flush()
		}
		s.out.render(s.current)
		return nil
	}

	cmd, ok := s.current.Commands()[name]
	if !ok {
		return fmt.Errorf("%w: %q on %s, try help", ErrUnknownCommand, name, s.current.Name())
	}
	return cmd.Run(ctx, args)
}

// Run reads commands until EOF, quit or ctx cancellation. Command errors are
// printed and do not stop the loop.
func (s *Shell) Run(ctx context.Context, in *bufio.Reader) error {
	for ctx.Err() == nil {
		if s.current != nil {
			fmt.Fprintf(s.out, "%s> ", s.current.Name())
		}

		line, err := in.ReadString('\n')
		if line = strings.TrimSpace(line); line == "quit" || line == "exit" {
			return nil
		}
		if line != "" {
			if cerr := s.Exec(ctx, line); cerr != nil && !errors.Is(cerr, listctl.ErrCancelled) {
				fmt.Fprintf(s.out, "error: %v\n", cerr)
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("read command: %w", err)
		}
	}
	return ctx.Err()
}

// Close tears down every mounted page.
func (s *Shell) Close() {
	for name, p := range s.pages {
		if s.mounted[name] {
			p.Close()
		}
	}
}

func (s *Shell) help() {
	fmt.Fprintln(s.out, "help | pages | open <page> | list | upload <file> | quit")
	if s.current == nil {
		return
	}
	cmds := s.current.Commands()
	for _, name := range slices.Sorted(maps.Keys(cmds)) {
		fmt.Fprintf(s.out, "  %s\n", cmds[name].Usage)
	}
}

// Notifications prints every published notification to the shell output
// and returns the unsubscribe func.
func (s *Shell) Notifications(store *notify.Store) func() {
	return store.Subscribe(func(ev notify.Event) {
		if ev.Removed {
			return
		}
		fmt.Fprintf(s.out, "[%s] %s\n", ev.Notification.Level, ev.Notification.Message)
	})
}

// PromptConfirmer asks on out and reads y/N from in.
func PromptConfirmer(in *bufio.Reader, out io.Writer) listctl.ConfirmFunc {
	return func(ctx context.Context, prompt string) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		answer, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

// lockedWriter serialises page output with notifications published from
// other goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func (l *lockedWriter) render(p Page) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p.Render(l.w)
}
