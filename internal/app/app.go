package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/trading-admin/config"
	"github.com/daniilsolovey/trading-admin/internal/db"
	"github.com/daniilsolovey/trading-admin/internal/rest"
	"github.com/daniilsolovey/trading-admin/internal/rpc"
	"github.com/daniilsolovey/trading-admin/internal/sandbox"
	"github.com/daniilsolovey/trading-admin/internal/sandbox/memory"
)

type App struct {
	Logger  *slog.Logger
	Echo    *echo.Echo
	Manager *sandbox.Manager
	Config  config.Config

	repo *db.Repository
}

// New wires the sandbox backend. With postgres storage dbConn must be
// connected; posts, subscribers and videos then live in the database while
// the remaining resources stay in memory.
func New(cfg config.Config, dbConn *pg.DB, logger *slog.Logger) *App {
	mem := memory.New()
	mem.Seed(time.Now().UTC())
	store := mem.Sandbox()

	a := &App{
		Logger: logger,
		Config: cfg,
	}

	if cfg.App.Storage == config.StoragePostgres && dbConn != nil {
		if cfg.App.LogQueries {
			dbConn.AddQueryHook(db.NewQueryHook(logger))
			logger.Info("SQL query logging enabled")
		}

		a.repo = db.New(dbConn)
		store.Posts = a.repo
		store.Subscribers = a.repo
		store.Videos = a.repo
	}

	a.Manager = sandbox.NewManager(store, sandbox.NewHub(), logger)
	handler := rest.NewHandler(a.Manager, logger)
	a.Echo = handler.RegisterRoutes(cfg.App.Token, rpc.New(logger, a.Manager))

	return a
}

func (a *App) Run(ctx context.Context) error {
	addr := net.JoinHostPort(a.Config.App.Host, strconv.Itoa(a.Config.App.Port))
	a.Logger.InfoContext(ctx, "sandbox listening", "addr", addr, "storage", a.Config.App.Storage, "auth", a.Config.App.Token != "")

	err := a.Echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	if a.repo != nil {
		if cerr := a.repo.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close database: %w", cerr))
		}
	}
	return err
}
