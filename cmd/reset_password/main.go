package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"mutfago/internal/config"
	"mutfago/internal/db"
	applog "mutfago/internal/log"
	"mutfago/models"
)

// reset_password sets a new password for an existing account:
//
//	reset_password <email> <newpassword>
func main() {
	ctx := context.Background()

	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: reset_password <email> <newpassword>")
		os.Exit(1)
	}
	email := strings.ToLower(strings.TrimSpace(os.Args[1]))
	password := os.Args[2]
	if email == "" || len(password) < 6 {
		fmt.Fprintln(os.Stderr, "email is required and password must be at least 6 characters")
		os.Exit(1)
	}

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

	var user models.User
	if err := database.WithContext(ctx).Where("lower(email) = ?", email).First(&user).Error; err != nil {
		applog.Error(ctx, "user not found", "email", email, "error", err)
		os.Exit(1)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		applog.Error(ctx, "failed to hash password", "error", err)
		os.Exit(1)
	}

	if err := database.WithContext(ctx).Model(&user).Update("password_hash", string(hashed)).Error; err != nil {
		applog.Error(ctx, "failed to update password", "error", err)
		os.Exit(1)
	}

	applog.Info(ctx, "password updated", "email", email)
}
