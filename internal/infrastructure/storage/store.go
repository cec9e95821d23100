// Package storage 提供庫存的儲存後端
package storage

import (
	"context"
	"fmt"

	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/infrastructure/config"
)

var (
	_ inventory.Store = (*MemoryStore)(nil)
	_ inventory.Store = (*BadgerStore)(nil)
	_ inventory.Store = (*RedisStore)(nil)
)

// NewStore 依設定建立儲存後端
func NewStore(ctx context.Context, cfg config.StorageConfig) (inventory.Store, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "badger", "":
		return NewBadgerStore(cfg.Badger)
	case "redis":
		return NewRedisStore(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
