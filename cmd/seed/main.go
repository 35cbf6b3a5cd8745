// Command seed creates the initial admin account. It is the only path that
// mints the admin role; the public registration endpoint always assigns the
// ordinary user role.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/service"
	"github.com/taskhive/task-system/internal/infrastructure/db/mongo"
	"github.com/taskhive/task-system/internal/pkg/config"
	"github.com/taskhive/task-system/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	username := envOr("ADMIN_USERNAME", "admin")
	email := service.NormalizeEmail(envOr("ADMIN_EMAIL", "admin@taskmanager.local"))
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal().Msg("ADMIN_PASSWORD must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	repo := mongo.NewUserRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}

	if existing, err := repo.FindByEmail(ctx, email); err == nil {
		log.Info().
			Str("email", existing.Email).
			Str("role", existing.Role).
			Msg("admin user already exists, nothing to do")
		return
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		log.Fatal().Err(err).Msg("admin lookup failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("password hashing failed")
	}

	now := time.Now().UTC()
	admin, err := repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("admin creation failed")
	}

	log.Info().
		Str("user_id", admin.ID).
		Str("username", admin.Username).
		Str("email", admin.Email).
		Msg("admin user created")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
