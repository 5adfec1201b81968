package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/trading-admin/config"
	"github.com/daniilsolovey/trading-admin/internal/app"
	"github.com/daniilsolovey/trading-admin/internal/db"
)

var (
	flConfig  = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug   = flag.Bool("debug", false, "enable debug mode")
	flMigrate = flag.String("migrate", "", "apply goose migrations from this directory before start")
	flDBURL   = flag.String("database-url", "", "database connection URL, overrides [Database] (DATABASE_URL)")
	cfg       config.Config
	lg        *slog.Logger
)

// @title Trading Admin Sandbox API
// @version 1.0
// @description Admin backend for posts, CMS content, subscribers, videos, indicators and trading rooms
// @host localhost:3000
// @BasePath /

func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	var err error
	cfg, err = config.Load(*flConfig)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			exitOnError(err)
		}
		lg.Warn("config file not found, using defaults", "path", *flConfig)
		cfg = config.Default()
	}

	if *flDBURL != "" {
		opt, err := config.ParseDatabaseURL(*flDBURL, cfg.Database.PoolSize, "")
		exitOnError(err)
		cfg.Database = *opt
		cfg.App.Storage = config.StoragePostgres
	}

	ctx := context.Background()

	var dbConn *pg.DB
	if cfg.App.Storage == config.StoragePostgres {
		dbConn = pg.Connect(&cfg.Database)
		if err := dbConn.Ping(ctx); err != nil {
			dbConn.Close()
			exitOnError(err)
		}

		if *flMigrate != "" {
			exitOnError(db.Migrate(ctx, &cfg.Database, *flMigrate))
			lg.Info("migrations applied", "dir", *flMigrate)
		}
	}

	service := app.New(cfg, dbConn, lg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx)
		if err != nil {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = service.GracefulShutdown(shutdownCtx)
	if err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
