package cache

import (
	"context"
	"fmt"
	"time"

	"hospital-duty-scheduler/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient connects the client backing token revocation and the
// scheduling-run lock. The connection is verified up front; a scheduler
// without redis cannot serialize runs, so failing at startup is the right
// call.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis at %s:%s: %w", cfg.Host, cfg.Port, err)
	}

	logrus.Infof("Connected to Redis at %s:%s", cfg.Host, cfg.Port)

	return client, nil
}
