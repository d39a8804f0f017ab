package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/strokesheet/internal/data/db"
	"github.com/yungbote/strokesheet/internal/platform/logger"
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.NewNop()
}

// DB opens a migrated database for tests: TEST_POSTGRES_DSN when set,
// otherwise a throwaway sqlite file. The test is skipped when no driver is
// usable (for example a sqlite build without cgo).
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	var dialector gorm.Dialector
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(filepath.Join(tb.TempDir(), "test.db"))
	}
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Skipf("database unavailable: %v", err)
	}
	if err := db.AutoMigrateAll(gdb); err != nil {
		tb.Skipf("database unavailable: %v", err)
	}
	return gdb
}

// Tx wraps the test in a transaction that is rolled back on cleanup.
func Tx(tb testing.TB, gdb *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := gdb.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() { tx.Rollback() })
	return tx
}
