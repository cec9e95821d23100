package storage

import (
	"context"
	"sync"

	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// MemoryStore 記憶體庫存儲存，重啟後資料消失
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]inventory.Item
	order []string
	stats storeStats
}

// storeStats 儲存統計
type storeStats struct {
	inserts int64
	deletes int64
	misses  int64
}

// NewMemoryStore 創建記憶體儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]inventory.Item),
	}
}

// List 依插入順序回傳副本
func (s *MemoryStore) List(ctx context.Context) ([]inventory.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]inventory.Item, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.items[id])
	}
	return items, nil
}

// Insert 新增品項；相同 ID 視為覆寫且保留原順序
func (s *MemoryStore) Insert(ctx context.Context, item inventory.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[item.ID]; !exists {
		s.order = append(s.order, item.ID)
	}
	s.items[item.ID] = item
	s.stats.inserts++
	return nil
}

// Delete 刪除品項
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		s.stats.misses++
		return inventory.ErrItemNotFound
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	s.stats.deletes++
	return nil
}

// Ping 記憶體儲存永遠可用
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close 清空資料
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	common.LogInfo("記憶體庫存已關閉",
		zap.Int("剩餘品項", len(s.items)),
		zap.Int64("新增次數", s.stats.inserts),
		zap.Int64("刪除次數", s.stats.deletes),
		zap.Int64("未命中次數", s.stats.misses),
	)
	s.items = make(map[string]inventory.Item)
	s.order = nil
	return nil
}
