package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"voc_backend/internals/configs"
)

var Redis *redis.Client

// ConnectRedis opens the client used by the collaboration pair lock.
func ConnectRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := Redis.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("failed to connect to redis: %v", err)
	}
	logrus.Info("redis connected")
}
