package main

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/namsral/flag"

	"github.com/daniilsolovey/trading-admin/config"
	"github.com/daniilsolovey/trading-admin/internal/adminapi"
	"github.com/daniilsolovey/trading-admin/internal/console"
	"github.com/daniilsolovey/trading-admin/internal/listctl"
	"github.com/daniilsolovey/trading-admin/internal/notify"
)

var (
	flConfig = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug  = flag.Bool("debug", false, "enable debug logging")
	flPage   = flag.String("page", "posts", "page to open: posts, cms, subscribers, videos, indicators, rooms")
	flYes    = flag.Bool("yes", false, "confirm destructive actions without asking")
	flURL    = flag.String("url", "", "admin API base URL, overrides [Console] BaseURL (URL)")
	flToken  = flag.String("token", "", "admin API token, overrides [Console] Token (TOKEN)")
	flOut    = flag.String("out", ".", "directory for exported files")
	lg       *slog.Logger
)

// Commands given after the flags run once, separated by ";", then the
// console exits. Without them an interactive shell reads stdin.
//
//	console -page posts 'status draft; search NVDA; list'
func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	cfg, err := config.Load(*flConfig)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			exitOnError(err)
		}
		lg.Debug("config file not found, using defaults", "path", *flConfig)
		cfg = config.Default()
	}
	if *flURL != "" {
		cfg.Console.BaseURL = *flURL
	}
	if *flToken != "" {
		cfg.Console.Token = *flToken
	}

	client, err := adminapi.New(cfg.Console.BaseURL, cfg.Console.Token, cfg.Console.Timeout, lg)
	exitOnError(err)

	in := bufio.NewReader(os.Stdin)
	var confirmer listctl.Confirmer = console.PromptConfirmer(in, os.Stdout)
	if *flYes {
		confirmer = listctl.AlwaysConfirm
	}

	store := notify.New(notify.DefaultTTL)
	defer store.Close()

	env := console.Env{
		Client:       client,
		Notify:       store,
		Confirmer:    confirmer,
		Logger:       lg,
		Debounce:     cfg.Console.Debounce,
		PerPage:      cfg.Console.PerPage,
		LiveURL:      cfg.Live.URL,
		Token:        cfg.Console.Token,
		PollInterval: cfg.Live.PollInterval,
		OutDir:       *flOut,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	oneShot := len(flag.Args()) > 0
	if oneShot {
		// live updates and polling are pointless for a single run
		env.LiveURL, env.PollInterval = "", 0
	}

	shell := console.NewShell(env, os.Stdout, console.DefaultPages(env)...)
	defer shell.Close()
	unsubscribe := shell.Notifications(store)
	defer unsubscribe()

	if err := shell.Open(ctx, *flPage); err != nil {
		lg.Error("open page failed", "page", *flPage, "error", err)
	}

	if oneShot {
		for _, line := range strings.Split(strings.Join(flag.Args(), " "), ";") {
			if err := shell.Exec(ctx, line); err != nil {
				lg.Error("command failed", "command", strings.TrimSpace(line), "error", err)
				shell.Close()
				os.Exit(1)
			}
		}
		return
	}

	if err := shell.Run(ctx, in); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("console stopped", "error", err)
	}
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelWarn
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("console init failed", "error", err)
		os.Exit(1)
	}
}
