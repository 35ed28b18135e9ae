// Package cache holds the key-value stores used for tracker snapshots
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/pkg/config"
)

// Store is implemented by MemoryStore and RedisStore
type Store interface {
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// Cache drivers accepted by CACHE_DRIVER
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// New picks a store from config
func New(cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Cache.Driver {
	case DriverRedis:
		client, err := NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		if logger != nil {
			logger.Info("✅ Connected to Redis", zap.String("addr", cfg.GetRedisAddr()))
		}
		return NewRedisStore(client, cfg.Cache.Prefix), nil
	case DriverMemory, "":
		if logger != nil {
			logger.Info("📦 Using in-memory cache")
		}
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}

// SetJSON encodes v and stores it under key
func SetJSON(ctx context.Context, s Store, key string, v any, expiration time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data, expiration)
}

// GetJSON decodes the value under key into v. It reports false when the key
// is missing or expired.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}
