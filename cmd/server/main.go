package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mutfago/internal/config"
	"mutfago/internal/db"
	"mutfago/internal/db/mock"
	"mutfago/internal/jobs"
	applog "mutfago/internal/log"
	"mutfago/internal/server"

	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		applog.Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}
	applog.SetLevel(cfg.LogLevel)

	var database *gorm.DB
	if cfg.Database.URL == "" {
		applog.Info(ctx, "DATABASE_URL not set, using in-memory mock database")
		database, err = mock.New(ctx)
	} else {
		database, err = db.Configure(cfg.Database)
	}
	if err != nil {
		applog.Error(ctx, "database initialization failed", "error", err)
		os.Exit(1)
	}

	authSecret := cfg.Auth.Secret
	if authSecret == "" {
		// Only reachable in mock-database mode; config.Load refuses an empty
		// secret when a real database is configured.
		applog.Warn(ctx, "AUTH_SECRET not set, generating a throwaway secret; api tokens will not survive a restart")
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			applog.Error(ctx, "failed to generate dev auth secret", "error", err)
			os.Exit(1)
		}
		authSecret = hex.EncodeToString(buf)
	}

	scheduler := jobs.NewScheduler(database)
	if err := scheduler.Start(ctx); err != nil {
		applog.Error(ctx, "background jobs failed to start", "error", err)
		os.Exit(1)
	}

	srv, err := server.New(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Session.Lifetime,
			CookieName:   cfg.Session.CookieName,
			CookieDomain: cfg.Session.CookieDomain,
			CookieSecure: cfg.Session.CookieSecure,
		},
		Database:   database,
		AuthSecret: authSecret,
		UploadsDir: cfg.Uploads.Dir,
	})
	if err != nil {
		applog.Error(ctx, "server initialization failed", "error", err)
		os.Exit(1)
	}

	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	<-sigCh

	applog.Info(ctx, "shutting down")
	scheduler.Stop()
	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
