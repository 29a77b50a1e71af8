package cache

import (
	"fmt"
	"time"

	"github.com/agency/backend/internal/domain/sidebar"
	"github.com/agency/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SidebarCache is an option cache that owns resources released by Close
type SidebarCache interface {
	sidebar.OptionCache
	Close() error
}

// SidebarCacheFactory creates sidebar caches based on configuration
type SidebarCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SidebarCacheFactoryOption is a functional option for configuring the factory
type SidebarCacheFactoryOption func(*SidebarCacheFactory)

// WithLogger sets the logger for the factory and the caches it creates
func WithLogger(logger *zap.Logger) SidebarCacheFactoryOption {
	return func(f *SidebarCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// the in-memory cache. Default is true.
func WithInMemoryFallback(allow bool) SidebarCacheFactoryOption {
	return func(f *SidebarCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSidebarCacheFactory creates a new factory
func NewSidebarCacheFactory(redisCfg config.RedisConfig, ttl time.Duration, opts ...SidebarCacheFactoryOption) *SidebarCacheFactory {
	f := &SidebarCacheFactory{
		redisConfig:           redisCfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCache creates a Redis-backed cache
func (f *SidebarCacheFactory) CreateRedisCache() (*RedisSidebarCache, error) {
	c, err := NewRedisSidebarCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, WithRedisTTL(f.ttl), WithRedisLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis sidebar cache: %w", err)
	}
	return c, nil
}

// CreateInMemoryCache creates a process-local cache
func (f *SidebarCacheFactory) CreateInMemoryCache() *InMemorySidebarCache {
	return NewInMemorySidebarCache(WithTTL(f.ttl), WithInMemoryLogger(f.logger))
}

// CreateCache uses Redis when a host is configured and reachable, and the
// in-memory cache otherwise
func (f *SidebarCacheFactory) CreateCache() (SidebarCache, error) {
	if f.redisConfig.Host == "" {
		f.logger.Info("no Redis host configured, using in-memory sidebar cache")
		return f.CreateInMemoryCache(), nil
	}

	c, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis sidebar cache", zap.String("addr", f.redisConfig.Addr()))
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for sidebar cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory sidebar cache. "+
		"Instances will not share invalidations.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
