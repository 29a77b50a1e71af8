//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newRedisCache(t *testing.T, ttl time.Duration) *RedisSidebarCache {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	c, err := NewRedisSidebarCache(RedisConfig{Host: host, Port: port.Int()}, WithRedisTTL(ttl))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisSidebarCache_RoundTrip(t *testing.T) {
	c := newRedisCache(t, time.Minute)
	ctx := context.Background()
	agencyID := uuid.New()

	_, found, err := c.Get(ctx, agencyID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, agencyID, testOptions()))
	got, found, err := c.Get(ctx, agencyID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, testOptions(), got)

	require.NoError(t, c.Invalidate(ctx, agencyID))
	_, found, err = c.Get(ctx, agencyID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisSidebarCache_CorruptedEntryIsAMiss(t *testing.T) {
	c := newRedisCache(t, time.Minute)
	ctx := context.Background()
	agencyID := uuid.New()

	require.NoError(t, c.client.Set(ctx, sidebarKey(agencyID), "not json", time.Minute).Err())

	_, found, err := c.Get(ctx, agencyID)
	require.NoError(t, err)
	assert.False(t, found)

	exists, err := c.client.Exists(ctx, sidebarKey(agencyID)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}
