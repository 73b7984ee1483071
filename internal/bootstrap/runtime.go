// Package bootstrap wires up the process-level runtime: database, Redis
// and the optional development admin account.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"playlsd/internal/cache"
	"playlsd/internal/config"
	"playlsd/internal/database"
	"playlsd/internal/repository"
	"playlsd/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SkipRedis leaves the Redis client unset. Tooling that only needs
	// the database (seeder, migrations) uses this.
	SkipRedis bool
}

// InitRuntime connects to DB and Redis and ensures a development admin
// account when configured. Schema migration happens inside Connect.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	var r *redis.Client
	if !opts.SkipRedis {
		// Init Redis (may result in nil client if unreachable)
		cache.InitRedis(cfg.RedisURL)
		r = cache.GetClient()
	}

	if err := ensureDevAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development admin: %w", err)
	}

	return db, r, nil
}

// ensureDevAdmin guarantees a working admin login in fresh development
// environments. It never runs outside the development profile.
func ensureDevAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapAdmin {
		return nil
	}

	username := strings.TrimSpace(cfg.DevAdminUsername)
	if username == "" {
		username = "playlsd_admin"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.DevAdminEmail))
	if email == "" {
		email = "admin@playlsd.local"
	}
	password := cfg.DevAdminPassword
	if password == "" {
		return fmt.Errorf("DEV_ADMIN_PASSWORD must be set when DEV_BOOTSTRAP_ADMIN is enabled")
	}

	users := service.NewUserService(repository.NewUserRepository(db))
	admin, err := users.EnsureAdmin(context.Background(), username, email, password)
	if err != nil {
		return err
	}

	log.Printf("development admin bootstrap ensured for user ID %d (%s)", admin.ID, email)
	return nil
}
