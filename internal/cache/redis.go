package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/baharkarakas/ethscan-backend/internal/metrics"
)

type RedisConfig struct {
	Addr     []string
	Password string
	DB       int

	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RedisStore is a string key/value store with per-key expiry.
type RedisStore struct {
	c redis.UniversalClient
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if len(cfg.Addr) == 0 {
		return nil, errors.New("redis addr is empty")
	}
	ensureConfig(&cfg)

	c := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:                 cfg.Addr,
		Password:              cfg.Password,
		DB:                    cfg.DB,
		PoolSize:              cfg.PoolSize,
		DialTimeout:           cfg.DialTimeout,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ContextTimeoutEnabled: true,
	})
	s := &RedisStore{c: c}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := s.Ping(pingCtx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	slog.Info("redis connected", "addr", cfg.Addr[0], "db", cfg.DB, "pool_size", cfg.PoolSize)
	return s, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(c redis.UniversalClient) *RedisStore {
	return &RedisStore{c: c}
}

// Get returns found=false with a nil error when the key is absent or expired.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	begin := time.Now()
	v, err := s.c.Get(ctx, key).Result()
	observe("get", begin)
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	begin := time.Now()
	err := s.c.Set(ctx, key, value, ttl).Err()
	observe("set", begin)
	return err
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.c.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.c.Close()
}

func observe(command string, begin time.Time) {
	metrics.RedisLatency.WithLabelValues(command).Observe(time.Since(begin).Seconds())
}

func ensureConfig(cfg *RedisConfig) {
	if cfg.PoolSize == 0 {
		cfg.PoolSize = 10
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 3 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 3 * time.Second
	}
}
