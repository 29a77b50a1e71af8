package cache

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agency/backend/internal/domain/sidebar"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// InMemorySidebarCache implements sidebar.OptionCache in process memory.
// State is not shared across instances, so a write on one instance leaves
// the others stale until their entries expire.
type InMemorySidebarCache struct {
	entries sync.Map // map[uuid.UUID]*cacheEntry
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

type cacheEntry struct {
	options   []sidebar.MenuOption
	expiresAt time.Time
}

// InMemorySidebarCacheOption is a functional option for configuring the cache
type InMemorySidebarCacheOption func(*InMemorySidebarCache)

// WithTTL sets how long an agency's options stay cached
func WithTTL(ttl time.Duration) InMemorySidebarCacheOption {
	return func(c *InMemorySidebarCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemorySidebarCacheOption {
	return func(c *InMemorySidebarCache) {
		c.logger = logger
	}
}

// withClock replaces time.Now in tests
func withClock(now func() time.Time) InMemorySidebarCacheOption {
	return func(c *InMemorySidebarCache) {
		c.now = now
	}
}

// NewInMemorySidebarCache creates the cache and starts its cleanup goroutine.
// Call Close to stop it.
func NewInMemorySidebarCache(opts ...InMemorySidebarCacheOption) *InMemorySidebarCache {
	c := &InMemorySidebarCache{
		ttl:    defaultSidebarTTL,
		now:    time.Now,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.cleanupExpired()

	return c
}

// Get returns a copy of the cached options of an agency
func (c *InMemorySidebarCache) Get(_ context.Context, agencyID uuid.UUID) ([]sidebar.MenuOption, bool, error) {
	if value, ok := c.entries.Load(agencyID); ok {
		entry := value.(*cacheEntry)
		if c.now().Before(entry.expiresAt) {
			atomic.AddInt64(&c.hits, 1)
			return slices.Clone(entry.options), true, nil
		}
		c.entries.Delete(agencyID)
	}
	atomic.AddInt64(&c.misses, 1)
	return nil, false, nil
}

// Set stores a copy of the options
func (c *InMemorySidebarCache) Set(_ context.Context, agencyID uuid.UUID, options []sidebar.MenuOption) error {
	c.entries.Store(agencyID, &cacheEntry{
		options:   slices.Clone(options),
		expiresAt: c.now().Add(c.ttl),
	})
	return nil
}

// Invalidate removes the cached options of an agency
func (c *InMemorySidebarCache) Invalidate(_ context.Context, agencyID uuid.UUID) error {
	c.entries.Delete(agencyID)
	return nil
}

// Stats returns hit and miss counters
func (c *InMemorySidebarCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (c *InMemorySidebarCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

func (c *InMemorySidebarCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.doCleanup()
		}
	}
}

func (c *InMemorySidebarCache) doCleanup() {
	now := c.now()
	removed := 0
	c.entries.Range(func(key, value any) bool {
		if !now.Before(value.(*cacheEntry).expiresAt) {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	if removed > 0 {
		c.logger.Debug("Cleaned up expired sidebar cache entries", zap.Int("removed", removed))
	}
}

var _ sidebar.OptionCache = (*InMemorySidebarCache)(nil)
