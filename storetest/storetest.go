// Package storetest opens migrated in-memory databases for tests.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"episolve/cms"
	"episolve/database"
	"episolve/models"
)

// Open returns a fresh migrated database. The pool is pinned to one
// connection so every query sees the same in-memory database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.RunMigrations(db, zap.NewNop()))
	return db
}

// Client returns a cms store over a fresh database.
func Client(t testing.TB) *cms.Store {
	t.Helper()

	store, err := cms.NewStore(Open(t), models.Collections())
	require.NoError(t, err)
	return store
}
