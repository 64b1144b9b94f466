// Package cache implements the memoization primitives behind the client: a
// raw response body store keyed by endpoint, and a get-or-compute map for
// normalized results.
package cache

import (
	"context"
	"errors"
	"fmt"

	redis "github.com/go-redis/redis/v8"
)

// Store caches raw response bodies by endpoint. Entries never expire or get
// evicted: recorded activity data is immutable on the server, so a cached
// body stays valid.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Memory is the default Store, a plain in-process map with no size bound. It
// is not safe for concurrent use.
type Memory struct {
	entries map[string]string
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := m.entries[key]
	return value, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.entries[key] = value
	return nil
}

// Redis is an opt-in Store backed by a Redis instance, for sharing fetched
// bodies across client instances or process restarts.
type Redis struct {
	conn *redis.Client
}

func NewRedis(ctx context.Context, addr string) (*Redis, error) {
	opt, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &Redis{conn: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.conn.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.conn.Set(ctx, key, value, 0).Err()
}
