package main

// Run database migrations for both stores:
//   go run ./cmd/migrate

import (
	"context"
	"database/sql"
	"log"
	"os"

	"careerpath-backend/internal/shared/config"
	"careerpath-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	failed := false
	failed = migrateStore(ctx, "profile", cfg.ProfileDatabaseURL, db.MigrateProfileStore) || failed
	failed = migrateStore(ctx, "analytics", cfg.AnalyticsDatabaseURL, db.MigrateAnalyticsStore) || failed
	if failed {
		os.Exit(1)
	}
}

func migrateStore(ctx context.Context, name, url string, migrate func(context.Context, *sql.DB) error) bool {
	if url == "" {
		log.Printf("%s store: no database URL configured, skipping", name)
		return false
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, url, opts)
	if err != nil {
		log.Printf("%s store: failed to connect: %v", name, err)
		return true
	}
	defer sqlDB.Close()

	if err := migrate(ctx, sqlDB); err != nil {
		log.Printf("%s store: failed to run migrations: %v", name, err)
		return true
	}
	log.Printf("%s store: migrations applied", name)
	return false
}
