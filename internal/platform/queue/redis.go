package queue

import (
	"club_tracker/internal/platform/config"
	"club_tracker/internal/platform/logger"
	"context"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	if _, err := RDB.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("Could not connect to Redis", "error", err)
	}
	logger.Info("Connected to Redis")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		logger.Info("Redis connection closed")
	}
}
