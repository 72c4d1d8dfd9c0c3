package cache

import (
	"github.com/redis/go-redis/v9"
	"github.com/taskflow-io/taskflow/internal/config"
)

// New builds the redis client used for login attempt accounting.
func New(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
}
