// ABOUTME: Database schema migrations
// ABOUTME: Applies the embedded goose migrations to a SQLite handle
package db

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/lifehub/db/migrations"
	"github.com/pressly/goose/v3"
)

// InitSchema applies all pending migrations.
func InitSchema(db *sql.DB) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
