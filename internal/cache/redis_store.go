package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by go-redis v9, adapted from the generic
// key-value adapter idiom: dial with bounded timeouts, verify with a
// Ping before handing the client back, and surface connection failure to
// the caller so it can decide whether to fall back to an in-memory Store.
type RedisStore struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// NewRedisStore dials addr/db and pings it before returning. On failure
// the caller should fall back to NewMemoryStore rather than retry forever
// — this cache is opportunistic, not a durability guarantee.
func NewRedisStore(addr, password string, db int, logger *slog.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     20,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("cache: redis ping failed (%s): %w", addr, err)
	}

	logger.Info("cache backend connected", "backend", "redis", "addr", addr, "db", db)
	return &RedisStore{rdb: rdb, logger: logger}, nil
}

func (s *RedisStore) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	val, err := s.rdb.Get(ctx, string(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: redis get: %w", err)
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value []byte) error {
	if err := s.rdb.Set(ctx, string(key), value, 0).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

// FlushAll drops the active database. This is scoped to the DB the store
// was configured with, not the whole Redis instance.
func (s *RedisStore) FlushAll(ctx context.Context) error {
	if err := s.rdb.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("cache: redis flush: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
