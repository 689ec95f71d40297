package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"ingredient-scanner/internal/infrastructure/config"
	"ingredient-scanner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func cacheConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func TestManagerSetAndGet(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "key", "value"))

	value, err := m.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", value)
}

func TestManagerMiss(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	defer m.Close()

	_, err := m.Get(context.Background(), "missing")
	assert.Error(t, err)
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.SetWithTTL(ctx, "key", "value", 10*time.Millisecond))

	time.Sleep(20 * time.Millisecond)

	_, err := m.Get(ctx, "key")
	assert.Error(t, err)
}

func TestManagerDelete(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "key", "value"))

	m.Delete(ctx, "key")

	_, err := m.Get(ctx, "key")
	assert.Error(t, err)
}

func TestManagerLRUEviction(t *testing.T) {
	m := NewManager(cacheConfig(2, time.Minute))
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "b", "2"))

	// 提升 a 的訪問次數，讓 b 成為 LRU 淘汰對象
	_, err := m.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "c", "3"))

	_, err = m.Get(ctx, "b")
	assert.Error(t, err)

	value, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", value)
}

func TestManagerDisabled(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Enabled: false}}
	m := NewManager(cfg)
	assert.Nil(t, m)

	// nil 管理器的所有操作都要安全
	ctx := context.Background()
	_, err := m.Get(ctx, "key")
	assert.Error(t, err)
	assert.NoError(t, m.Set(ctx, "key", "value"))
	m.Delete(ctx, "key")
	assert.NoError(t, m.Close())

	stats := m.GetStats()
	assert.Equal(t, false, stats["enabled"])
}

func TestManagerCloseStopsCleanup(t *testing.T) {
	cfg := cacheConfig(10, time.Minute)
	cfg.Cache.CleanupInterval = 10 * time.Millisecond

	m := NewManager(cfg)
	require.NotNil(t, m)

	// 重複關閉必須安全
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	// 關閉後寫入一筆立刻過期的條目；清理協程已停止，
	// 等過數個清理週期後條目仍應留在原地
	ctx := context.Background()
	require.NoError(t, m.SetWithTTL(ctx, "stale", "value", time.Nanosecond))

	time.Sleep(50 * time.Millisecond)

	stats := m.GetStats()
	assert.Equal(t, 1, stats["size"])
	assert.Equal(t, int64(0), stats["evictions"])
}

func TestManagerStats(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "key", "value"))

	_, _ = m.Get(ctx, "key")
	_, _ = m.Get(ctx, "missing")

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 1, stats["size"])
}
