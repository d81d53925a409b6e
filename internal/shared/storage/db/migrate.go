package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/profile/*.sql migrations/analytics/*.sql
var migrationFiles embed.FS

// MigrateProfileStore applies the profile-store migrations. No-op on nil.
func MigrateProfileStore(ctx context.Context, database *sql.DB) error {
	return runMigrations(ctx, database, "migrations/profile")
}

// MigrateAnalyticsStore applies the analytics-store migrations. No-op on nil.
func MigrateAnalyticsStore(ctx context.Context, database *sql.DB) error {
	return runMigrations(ctx, database, "migrations/analytics")
}

func runMigrations(ctx context.Context, database *sql.DB, dir string) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	return goose.UpContext(ctx, database, dir)
}
