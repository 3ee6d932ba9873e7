package main

import (
	"context"
	"os"

	"mutfago/internal/catalog"
	"mutfago/internal/config"
	"mutfago/internal/db"
	applog "mutfago/internal/log"
)

// seed_catalog applies the versioned catalogue seed migrations. Safe to run
// repeatedly; applied steps are skipped.
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		applog.Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}
	applog.SetLevel(cfg.LogLevel)

	database, err := db.Configure(cfg.Database)
	if err != nil {
		applog.Error(ctx, "database initialization failed", "error", err)
		os.Exit(1)
	}

	if err := catalog.Seed(ctx, database); err != nil {
		applog.Error(ctx, "catalog seed failed", "error", err)
		os.Exit(1)
	}

	applog.Info(ctx, "catalog seed complete")
}
