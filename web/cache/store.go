package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/mhsanaei/rolepanel/config"
	"github.com/mhsanaei/rolepanel/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/redis/go-redis/v9"
)

// NewSessionStore returns a Redis-backed store when cfg names an address and
// an in-process store otherwise. The returned close func releases the Redis
// client and is never nil.
func NewSessionStore(cfg config.RedisConfig, secret []byte) (sessions.Store, func() error, error) {
	if cfg.Addr == "" {
		logger.Info("Using in-memory session store")
		return memstore.NewStore(secret), func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	logger.Info("Using redis session store at", cfg.Addr)
	return NewRedisStore(client, secret), client.Close, nil
}
