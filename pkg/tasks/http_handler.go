package tasks

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/opsboard/taskboard/pkg/postgres"
	"github.com/opsboard/taskboard/pkg/tasks/config"
	"github.com/opsboard/taskboard/pkg/tasks/internal/cache"
	"github.com/opsboard/taskboard/pkg/tasks/internal/database"
	"go.uber.org/zap"
)

type HttpHandler struct {
	cfg     config.Config
	db      database.Database
	lookups cache.LookupCache
	logger  *zap.Logger
}

func InitializeHttpHandler(cfg config.Config, logger *zap.Logger) (*HttpHandler, error) {
	psqlCfg := postgres.Config{
		Host:    cfg.Postgres.Host,
		Port:    cfg.Postgres.Port,
		User:    cfg.Postgres.Username,
		Passwd:  cfg.Postgres.Password,
		DB:      cfg.Postgres.DB,
		SSLMode: cfg.Postgres.SSLMode,
	}
	orm, err := postgres.NewClient(&psqlCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("new postgres client: %w", err)
	}
	logger.Info("Connected to the postgres database", zap.String("database", cfg.Postgres.DB))

	db := database.NewDatabase(orm)
	if err := db.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	logger.Info("Initialized database", zap.String("database", cfg.Postgres.DB))

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(rdb.Context()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	ttl := time.Duration(cfg.LookupCacheTTLSec) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &HttpHandler{
		cfg:     cfg,
		db:      db,
		lookups: cache.NewLookupRedisCache(rdb, ttl),
		logger:  logger,
	}, nil
}
