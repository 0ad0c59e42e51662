package storage

import (
	"testing"
	"time"
)

// OpenTest creates a migrated in-memory database for tests.
func OpenTest(tb testing.TB) *DB {
	tb.Helper()

	config := DefaultConfig(":memory:")
	// A single connection keeps every statement on the same in-memory
	// database.
	config.MaxOpenConns = 1
	config.MaxIdleConns = 1
	config.ConnMaxLifetime = time.Hour
	config.AutoMigrate = true

	db, err := Open(config)
	if err != nil {
		tb.Fatalf("Failed to open test database: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })
	return db
}
