package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"path/filepath"
	"strconv"

	"github.com/go-pg/pg/v10"
	"github.com/jackc/pgx"
	"github.com/jackc/pgx/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies the goose migrations in dir to the database described by opts.
func Migrate(ctx context.Context, opts *pg.Options, dir string) error {
	host, port, err := net.SplitHostPort(opts.Addr)
	if err != nil {
		return fmt.Errorf("split db addr %q: %w", opts.Addr, err)
	}
	p, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return fmt.Errorf("parse db port %q: %w", port, err)
	}

	sqldb := stdlib.OpenDB(pgx.ConnConfig{
		Host:     host,
		Port:     uint16(p),
		Database: opts.Database,
		User:     opts.User,
		Password: opts.Password,
	})
	defer sqldb.Close()

	return up(ctx, sqldb, dir)
}

func up(ctx context.Context, sqldb *sql.DB, dir string) error {
	if err := sqldb.PingContext(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migration files found in %s", dir)
	}

	if err := goose.UpContext(ctx, sqldb, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
