package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agency/backend/internal/domain/sidebar"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultSidebarTTL    = 5 * time.Minute
	sidebarKeyPrefix     = "sidebar:options:"
	defaultConnectTimout = 5 * time.Second
)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisSidebarCache implements sidebar.OptionCache using Redis
type RedisSidebarCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisSidebarCacheOption is a functional option for configuring the cache
type RedisSidebarCacheOption func(*RedisSidebarCache)

// WithRedisTTL sets how long an agency's options stay cached
func WithRedisTTL(ttl time.Duration) RedisSidebarCacheOption {
	return func(c *RedisSidebarCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithRedisLogger sets the logger for the cache
func WithRedisLogger(logger *zap.Logger) RedisSidebarCacheOption {
	return func(c *RedisSidebarCache) {
		c.logger = logger
	}
}

// NewRedisSidebarCache connects to Redis and pings it before returning
func NewRedisSidebarCache(cfg RedisConfig, opts ...RedisSidebarCacheOption) (*RedisSidebarCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := NewRedisSidebarCacheWithClient(client, opts...)
	c.ownsClient = true
	return c, nil
}

// NewRedisSidebarCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client.
func NewRedisSidebarCacheWithClient(client *redis.Client, opts ...RedisSidebarCacheOption) *RedisSidebarCache {
	c := &RedisSidebarCache{
		client: client,
		ttl:    defaultSidebarTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func sidebarKey(agencyID uuid.UUID) string {
	return sidebarKeyPrefix + agencyID.String()
}

// Get returns the cached options of an agency
func (c *RedisSidebarCache) Get(ctx context.Context, agencyID uuid.UUID) ([]sidebar.MenuOption, bool, error) {
	key := sidebarKey(agencyID)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("Cache miss for sidebar options", zap.String("agency_id", agencyID.String()))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get sidebar options from cache: %w", err)
	}

	var options []sidebar.MenuOption
	if err := json.Unmarshal(data, &options); err != nil {
		c.logger.Warn("Dropping corrupted sidebar cache entry",
			zap.String("agency_id", agencyID.String()),
			zap.Error(err))
		_ = c.client.Del(ctx, key)
		return nil, false, nil
	}
	return options, true, nil
}

// Set stores the options of an agency with the configured TTL
func (c *RedisSidebarCache) Set(ctx context.Context, agencyID uuid.UUID, options []sidebar.MenuOption) error {
	data, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("failed to marshal sidebar options: %w", err)
	}
	if err := c.client.Set(ctx, sidebarKey(agencyID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache sidebar options: %w", err)
	}
	return nil
}

// Invalidate removes the cached options of an agency
func (c *RedisSidebarCache) Invalidate(ctx context.Context, agencyID uuid.UUID) error {
	if err := c.client.Del(ctx, sidebarKey(agencyID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate sidebar cache: %w", err)
	}
	return nil
}

// Close closes the client if the cache created it
func (c *RedisSidebarCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

var _ sidebar.OptionCache = (*RedisSidebarCache)(nil)
