package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const keyRedisLookups = "counter:lookups"

type RedisStorage struct {
	db *redis.Client
}

// Increment lookups counter in redis
func (s *RedisStorage) Increment() (int64, error) {
	total, err := s.db.Incr(context.Background(), keyRedisLookups).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementing counter: %w", err)
	}
	return total, nil
}

// Total returns lookups counter from redis
func (s *RedisStorage) Total() (int64, error) {
	total, err := s.db.Get(context.Background(), keyRedisLookups).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("fetching counter: %w", err)
	}
	return total, nil
}

// NewRedisStorage creates RedisStorage with given url
func NewRedisStorage(url string) (*RedisStorage, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStorage{db: rdb}, nil
}
