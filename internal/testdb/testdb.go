// Package testdb provides the throwaway databases and configuration the
// package tests run against.
package testdb

import (
	"fmt"
	"testing"
	"time"

	"docman/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// New returns a migrated in-memory sqlite database private to the calling
// test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// keep one connection alive so the shared in-memory database survives
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db), "migrate")
	return db
}

func Config() *config.Config {
	return &config.Config{
		Port:    "0",
		GinMode: "test",
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
		},
		JWT: config.JWTConfig{
			Secret:     []byte("test-secret"),
			Expiration: time.Hour,
		},
		AdminRoleID:            2,
		DefaultRoleID:          1,
		BlacklistCacheSize:     64,
		BlacklistPurgeSchedule: "@hourly",
		LogLevel:               "error",
	}
}
