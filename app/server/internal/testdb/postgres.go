//go:build postgres

package testdb

import (
	"fmt"
	"library-articles/app/server/inits"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgres opens a migrated database in a fresh schema of the server named
// by TEST_PG_CONN, with a real connection pool. The schema is dropped on
// cleanup. The test is skipped when TEST_PG_CONN is unset.
//
//	TEST_PG_CONN="host=localhost user=postgres password=postgres dbname=library_test" go test -tags postgres ./...
func NewPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	conn := os.Getenv("TEST_PG_CONN")
	if conn == "" {
		t.Skip("TEST_PG_CONN not set")
	}
	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := gorm.Open(postgres.Open(conn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open admin db: %v", err)
	}
	if err = admin.Exec(fmt.Sprintf("CREATE SCHEMA %s", schema)).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	adminDB, _ := admin.DB()
	t.Cleanup(func() {
		admin.Exec(fmt.Sprintf("DROP SCHEMA %s CASCADE", schema))
		adminDB.Close()
	})

	cfg, err := pgx.ParseConfig(conn)
	if err != nil {
		t.Fatalf("parse conn: %v", err)
	}
	cfg.RuntimeParams["search_path"] = schema
	sqlDB := stdlib.OpenDB(*cfg)
	sqlDB.SetMaxOpenConns(20)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// registered after the schema cleanup, so it runs first
	t.Cleanup(func() { sqlDB.Close() })

	if err = inits.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
