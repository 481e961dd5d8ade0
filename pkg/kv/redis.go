package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/ownshop-backend/pkg/redis"
)

// RedisClient is the subset of the redis wrapper the KV layer needs.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	DeviceKey(deviceID, key string) string
}

// Redis stores device keys under os:device:<deviceID>:<key>. A positive TTL
// lets abandoned devices expire.
type Redis struct {
	client RedisClient
	ttl    time.Duration
}

func NewRedis(client RedisClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Scope(deviceID string) Store {
	return &redisScope{parent: r, deviceID: deviceID}
}

type redisScope struct {
	parent   *Redis
	deviceID string
}

func (s *redisScope) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.parent.client.Get(ctx, s.parent.client.DeviceKey(s.deviceID, key))
	if redis.IsNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *redisScope) Set(ctx context.Context, key, value string) error {
	if err := s.parent.client.Set(ctx, s.parent.client.DeviceKey(s.deviceID, key), value, s.parent.ttl); err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

func (s *redisScope) Del(ctx context.Context, key string) error {
	if err := s.parent.client.Del(ctx, s.parent.client.DeviceKey(s.deviceID, key)); err != nil {
		return fmt.Errorf("kv del %s: %w", key, err)
	}
	return nil
}
