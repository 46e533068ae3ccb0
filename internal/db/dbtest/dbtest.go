// Package dbtest provides a shared test database. The schema is created once
// per test binary and every test runs inside a transaction that is rolled back
// when the test ends.
package dbtest

import (
	"os"
	"sync"
	"testing"

	"ttt/internal/config"
	"ttt/internal/db"

	"gorm.io/gorm"
)

// URLEnv selects a different engine for tests, e.g. a disposable Postgres
// database. The default is an in-memory SQLite database.
const URLEnv = "TTT_TEST_DATABASE_URL"

var (
	once     sync.Once
	engine   *gorm.DB
	setupErr error
)

func open() {
	cfg := config.Default()
	cfg.DatabaseURL = ":memory:"
	if raw := os.Getenv(URLEnv); raw != "" {
		cfg.DatabaseURL = raw
	}
	cfg.DBLogLevel = "silent"
	if raw := os.Getenv("DB_LOG_LEVEL"); raw != "" {
		cfg.DBLogLevel = raw
	}
	engine, setupErr = db.OpenConfig(cfg)
	if setupErr != nil {
		return
	}
	setupErr = db.Migrate(engine)
}

// Engine returns the shared connection, creating the schema on first use.
func Engine(t testing.TB) *gorm.DB {
	t.Helper()
	once.Do(open)
	if setupErr != nil {
		t.Fatalf("test database setup failed: %v", setupErr)
	}
	return engine
}

// Tx begins a transaction on the shared engine and rolls it back on cleanup.
// Tests using Tx must not run in parallel; the in-memory engine has a single
// connection.
func Tx(t testing.TB) *gorm.DB {
	t.Helper()
	tx := Engine(t).Begin()
	if tx.Error != nil {
		t.Fatalf("begin test transaction: %v", tx.Error)
	}
	t.Cleanup(func() {
		tx.Rollback()
	})
	return tx
}

// Run executes the tests and drops the schema afterwards if it was created.
// Use it from TestMain.
func Run(m *testing.M) int {
	code := m.Run()
	if engine != nil {
		if err := db.Drop(engine); err != nil && code == 0 {
			code = 1
		}
		if sqlDB, err := engine.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return code
}
