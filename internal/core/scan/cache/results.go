package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"ingredient-scanner/internal/infrastructure/config"
	"ingredient-scanner/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// ResultCache Redis 分析結果快取。鍵由呼叫端提供（正規化成分原文的
// 雜湊），同一份成分列表重複掃描時可直接重用引擎輸出。
type ResultCache struct {
	client *redis.Client
	config *config.RedisConfig
}

// NewResultCache 創建結果快取
func NewResultCache(cfg *config.RedisConfig) (*ResultCache, error) {
	if !cfg.Enabled {
		return &ResultCache{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ResultCache{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取快取的分析結果
func (c *ResultCache) Get(ctx context.Context, key string) (*common.AnalysisResult, error) {
	if c == nil || !c.config.Enabled || c.client == nil {
		return nil, fmt.Errorf("result cache is disabled")
	}

	data, err := c.client.Get(ctx, c.cacheKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("redis", key)
			return nil, fmt.Errorf("cache miss")
		}
		return nil, fmt.Errorf("failed to get cached result: %w", err)
	}

	var result common.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}

	common.LogCacheHit("redis", key)
	return &result, nil
}

// Set 快取分析結果
func (c *ResultCache) Set(ctx context.Context, key string, result *common.AnalysisResult) error {
	if c == nil || !c.config.Enabled || c.client == nil {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := c.client.Set(ctx, c.cacheKey(key), data, c.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cached result: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連線
func (c *ResultCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// cacheKey 生成快取鍵
func (c *ResultCache) cacheKey(key string) string {
	return fmt.Sprintf("scan:result:%s", key)
}
