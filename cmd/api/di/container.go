package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"account-item-service/cmd/api/infrastructure"
	"account-item-service/internal/adapter/cache"
	"account-item-service/internal/adapter/db/postgres"
	ginhandler "account-item-service/internal/adapter/gin/handler"
	"account-item-service/internal/adapter/gin/middleware"
	"account-item-service/internal/adapter/repository/cached"
	"account-item-service/internal/config"
	"account-item-service/internal/usecase/account"
	"account-item-service/internal/usecase/item"
	redisclient "account-item-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	DB             *gorm.DB
	RedisClient    *redisclient.Client
	AccountUC      account.Usecase
	ItemUC         item.Usecase
	AccountHandler *ginhandler.AccountHandler
	ItemHandler    *ginhandler.ItemHandler
	RateLimitCfg   middleware.RateLimiterConfig
}

// NewContainer creates and initializes all application dependencies.
// Any unreachable backing store is a fatal wiring error; the process must
// not come up serving degraded traffic.
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	itemCache := cache.NewRedisItemCache(
		rdb.Client,
		time.Duration(cfg.Redis.CacheTTL)*time.Second,
		l,
	)

	accountRepo := postgres.NewAccountRepoPG(db, l)
	itemRepo := cached.NewCachedItemRepository(postgres.NewItemRepoPG(db, l), itemCache, l)

	accountUC := account.New(accountRepo, l)
	itemUC := item.New(itemRepo, l)

	return &Container{
		Config:         cfg,
		Logger:         l,
		DB:             db,
		RedisClient:    rdb,
		AccountUC:      accountUC,
		ItemUC:         itemUC,
		AccountHandler: ginhandler.NewAccountHandler(accountUC, l),
		ItemHandler:    ginhandler.NewItemHandler(itemUC, l),
		RateLimitCfg: middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
			Enabled:           cfg.RateLimit.Enabled,
		},
	}, nil
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
