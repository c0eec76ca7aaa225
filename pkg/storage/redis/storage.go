// Package redis adapts a Redis client to fiber.Storage so the rate limiter
// can share its counters across instances.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Storage struct {
	client *redis.Client
}

// New connects to Redis and verifies connectivity with a short ping.
func New(addr, password string, db int) (*Storage, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Storage{client: client}, nil
}

func (s *Storage) Get(key string) ([]byte, error) {
	val, err := s.client.Get(context.Background(), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return val, nil
}

func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	return s.client.Set(context.Background(), key, val, exp).Err()
}

func (s *Storage) Delete(key string) error {
	return s.client.Del(context.Background(), key).Err()
}

func (s *Storage) Reset() error {
	return s.client.FlushDB(context.Background()).Err()
}

func (s *Storage) Close() error {
	return s.client.Close()
}
