package redis

import (
	"context"
	"errors"
	"movie_review/configs"
	"movie_review/pkg/logger"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	clientMux   sync.RWMutex
	redisClient *redis.Client
)

var ErrNotConnected = errors.New("redis: not connected")

func ConnectRedis() {
	time.Sleep(time.Duration(configs.GetConfigs().WaitForRedisConnectionSec) * time.Second)
	if configs.GetConfigs().RedisUrl == "" {
		logger.L().Info("redis url not set, list cache disabled")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     configs.GetConfigs().RedisUrl,
		Password: configs.GetConfigs().RedisPassword,
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		logger.L().Warn("redis ping failed, list cache disabled", zap.Error(err))
		_ = client.Close()
		return
	}
	logger.L().Info("redis connected", zap.String("pong", pong))

	clientMux.Lock()
	redisClient = client
	clientMux.Unlock()
}

func getClient() (*redis.Client, error) {
	clientMux.RLock()
	defer clientMux.RUnlock()
	if redisClient == nil {
		return nil, ErrNotConnected
	}
	return redisClient, nil
}

func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

func GetRedis(ctx context.Context, key string) (string, error) {
	client, err := getClient()
	if err != nil {
		return "", err
	}
	return client.Get(ctx, key).Result()
}

func SetRedis(ctx context.Context, key string, value interface{}, duration time.Duration) error {
	client, err := getClient()
	if err != nil {
		return err
	}
	return client.Set(ctx, key, value, duration).Err()
}

// DeleteByPrefix removes every key starting with prefix.
func DeleteByPrefix(ctx context.Context, prefix string) error {
	client, err := getClient()
	if err != nil {
		return err
	}
	iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return client.Del(ctx, keys...).Err()
}

func CloseRedis() error {
	clientMux.Lock()
	defer clientMux.Unlock()
	if redisClient == nil {
		return nil
	}
	err := redisClient.Close()
	redisClient = nil
	return err
}
