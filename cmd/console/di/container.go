package di

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-crud-console/cmd/console/infrastructure"
	"user-crud-console/internal/adapter/cache"
	"user-crud-console/internal/adapter/console"
	"user-crud-console/internal/adapter/db/gormrepo"
	"user-crud-console/internal/adapter/repository/cached"
	"user-crud-console/internal/config"
	"user-crud-console/internal/usecase/user"
	redisclient "user-crud-console/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client // nil unless the listing cache is enabled
	UserUC      user.Service
	Session     *console.Session
}

// NewContainer connects to the database (and Redis when caching is enabled)
// and builds the session on top of the given console streams.
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger, in io.Reader, out io.Writer) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	c := &Container{
		Config: cfg,
		Logger: l,
		DB:     db,
	}

	var repo user.Repository = gormrepo.NewUserRepo(db, l)

	if cfg.Cache.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb

		listCache := cache.NewRedisUserListCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		repo = cached.NewCachedUserRepository(repo, listCache, l)
	}

	c.UserUC = user.New(repo, l)
	c.Session = console.NewSession(c.UserUC, console.New(in, out), l)

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
