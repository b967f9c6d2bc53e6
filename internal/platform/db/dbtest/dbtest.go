// Package dbtest provides an in-memory SQLite store for repository tests.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"company_backend/internal/platform/db"
)

// Open returns a migrated in-memory SQLite database with foreign keys enforced.
// Every call yields an independent database, so tests may run in parallel.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(db.Config{Driver: db.DriverSQLite, SQLitePath: ":memory:", Migrate: true})
	require.NoError(t, err, "failed to initialize test database")

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}
