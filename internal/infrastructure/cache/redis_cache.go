package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"acnemap/internal/domain/entity"
	"acnemap/internal/domain/port"
)

const keyPrefix = "scan:"

// RedisCache кэш результатов сканирования в Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// RedisOptions параметры подключения
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisCache создаёт клиент Redis
func NewRedisCache(opts RedisOptions, log *zap.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    opts.TTL,
		log:    log,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get возвращает результат из кэша, nil при промахе
func (c *RedisCache) Get(ctx context.Context, key string) (*entity.ScanResult, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var result entity.ScanResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.log.Error("failed to unmarshal scan result", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return &result, nil
}

// Set сохраняет результат с TTL
func (c *RedisCache) Set(ctx context.Context, key string, result *entity.ScanResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ port.ScanCache = (*RedisCache)(nil)
