package testutil

import (
	"fmt"
	"testing"

	"infinite-experiment/crewcenter/internal/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the full schema.
// The pool is limited to one connection so GORM and sqlx see the same data.
func NewTestDB(t testing.TB) (*gorm.DB, *sqlx.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc: db.NowUTC,
		Logger:  logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sx, err := db.SqlxFromGorm(gdb, "sqlite3")
	if err != nil {
		t.Fatalf("sqlx: %v", err)
	}

	return gdb, sx
}
