package storage

import (
	"context"
	"errors"
	"fmt"

	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/infrastructure/config"
	"pantry-planner/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// RedisStore Redis 庫存儲存：list 保存順序，string 保存品項 JSON
type RedisStore struct {
	client   *redis.Client
	orderKey string
	prefix   string
}

// NewRedisStore 連線 Redis 並測試
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "pantry"
	}

	common.LogInfo("Redis 庫存儲存已連線", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))

	return &RedisStore{
		client:   client,
		orderKey: prefix + ":inventory:order",
		prefix:   prefix + ":inventory:item:",
	}, nil
}

func (s *RedisStore) itemKey(id string) string {
	return s.prefix + id
}

// List 依 order list 讀取所有品項
func (s *RedisStore) List(ctx context.Context) ([]inventory.Item, error) {
	ids, err := s.client.LRange(ctx, s.orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory order: %w", err)
	}
	if len(ids) == 0 {
		return []inventory.Item{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.itemKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory items: %w", err)
	}

	items := make([]inventory.Item, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// order list 與資料不一致時略過
			common.LogWarn("庫存品項遺失", zap.String("item_id", ids[i]))
			continue
		}
		var item inventory.Item
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal inventory item %s: %w", ids[i], err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Insert 寫入品項並附加到順序清單
func (s *RedisStore) Insert(ctx context.Context, item inventory.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory item: %w", err)
	}

	key := s.itemKey(item.ID)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check inventory item: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if exists == 0 {
		pipe.RPush(ctx, s.orderKey, item.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store inventory item: %w", err)
	}
	return nil
}

// Delete 刪除品項與順序
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.itemKey(id))
	pipe.LRem(ctx, s.orderKey, 0, id)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if del.Val() == 0 {
		return inventory.ErrItemNotFound
	}
	return nil
}

// Ping 檢查連線
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
