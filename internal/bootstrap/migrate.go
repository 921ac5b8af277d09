package bootstrap

import (
	"fmt"

	"github.com/archplans/plan-portal/migrations"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// Migrate applies the embedded migrations to the database at dsn.
func Migrate(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("DB_DSN is not set")
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	if err := goose.Up(sqlDB, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
