package redisx

import (
	"context"

	"github.com/go-redis/redis/v8"

	"frontdesk/pkg/config"
)

// New builds the redis client backing the room-event channel.
func New(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
