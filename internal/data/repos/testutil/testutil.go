package testutil

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/escuelanichiboku/nichiboku-backend/internal/data/db"
	"github.com/escuelanichiboku/nichiboku-backend/internal/pkg/logger"
)

var (
	dbOnce sync.Once
	shared *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns the shared test database: Postgres when
// TEST_POSTGRES_DSN is set, an in-memory SQLite otherwise. Tests that
// use it should isolate their writes with Tx.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dbOnce.Do(func() {
		shared, dbErr = open(os.Getenv("TEST_POSTGRES_DSN"), "nichiboku_test")
	})
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return shared
}

// FreshDB returns a database private to the calling test, for tests
// that commit real transactions (service-level flows, concurrency
// harnesses) and therefore cannot run inside a rollback Tx.
func FreshDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	d, err := open("", uuid.NewString())
	if err != nil {
		tb.Fatalf("failed to init fresh test db: %v", err)
	}
	return d
}

func open(pgDSN, name string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	}

	var (
		d   *gorm.DB
		err error
	)
	if pgDSN != "" {
		d, err = gorm.Open(postgres.Open(pgDSN), cfg)
	} else {
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=10000", name)
		d, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, err
	}
	if pgDSN == "" {
		// A single connection keeps the in-memory database alive and
		// serializes writers the way the production store does.
		sqlDB, err := d.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrateAll(d); err != nil {
		return nil, err
	}
	return d, nil
}

func Tx(tb testing.TB, d *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := d.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
