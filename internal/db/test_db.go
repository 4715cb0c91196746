package db

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB opens a migrated in-memory SQLite database that lives until the
// test ends. The pool is pinned to one connection since every new connection
// to ":memory:" would see an empty database.
func SetupTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	conn, err := Open(sqlite.Open("file::memory:?_foreign_keys=on"))
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to get test database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := MigrateDB(conn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { CleanupTestDB(conn) })
	return conn
}

// CleanupTestDB closes the test database.
func CleanupTestDB(conn *gorm.DB) {
	sqlDB, err := conn.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}

// TruncateAllTables removes all rows, children first.
func TruncateAllTables(conn *gorm.DB) error {
	tables := []string{"haircut_photos", "ratings", "barbers", "shops", "users"}
	for _, table := range tables {
		if err := conn.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return err
		}
	}
	return nil
}
