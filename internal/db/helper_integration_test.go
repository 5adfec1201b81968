//go:build integration

package db

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/go-pg/pg/v10"
)

var (
	testDB   *pg.DB
	testRepo *Repository
)

func TestMain(m *testing.M) {
	database, err := SetupTestDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to prepare test database. Make sure PostgreSQL is running:")
		fmt.Fprintln(os.Stderr, "  docker-compose -f docker-compose.test.yml up -d")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	testDB = database
	testRepo = New(testDB)

	code := m.Run()

	if err := testDB.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close database connection: %v\n", err)
	}

	os.Exit(code)
}

func withTx(t *testing.T) (*pg.Tx, context.Context, *Repository) {
	t.Helper()
	ctx := context.Background()

	tx, err := testDB.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("failed to rollback transaction: %v", err)
		}
	})

	repo := New(tx)
	return tx, ctx, repo
}
