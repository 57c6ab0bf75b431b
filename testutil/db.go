// Package testutil holds database helpers for the repo integration tests.
// Everything here keys off TEST_DATABASE_URL: when it is unset the helpers
// skip the calling test, so the suite stays green on machines without
// Postgres.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
)

const dsnEnv = "TEST_DATABASE_URL"

// NewPool connects a *pgxpool.Pool to the test database and verifies it
// answers a ping. The pool closes itself when the test and its subtests
// are done. Skips the test when TEST_DATABASE_URL is unset.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), dsn(t))
	if err != nil {
		t.Fatalf("connect test pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("ping test pool: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB is NewPool's database/sql twin, for code that speaks *sql.DB
// instead of pgx pools (goose, mainly). Same skip and cleanup behavior.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", dsn(t))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("ping test db: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// MustOpenSQLDB opens and pings a *sql.DB for dsn, panicking on failure.
// It exists for TestMain, which runs migrations before any *testing.T
// exists. The caller closes the returned handle.
func MustOpenSQLDB(dsn string) *sql.DB {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		panic("testutil: open test db: " + err.Error())
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		panic("testutil: ping test db: " + err.Error())
	}
	return db
}

func dsn(t *testing.T) string {
	t.Helper()
	v := os.Getenv(dsnEnv)
	if v == "" {
		t.Skipf("%s not set; skipping integration test", dsnEnv)
	}
	return v
}
