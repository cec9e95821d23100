package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pantry-planner/internal/infrastructure/metrics"
	"pantry-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 庫存服務
type Service struct {
	store Store
	clock Clock
}

// NewService 創建庫存服務
func NewService(store Store, clock Clock) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{
		store: store,
		clock: clock,
	}
}

// BuildItem 以名稱與數量推導出完整的庫存品項
func BuildItem(input NewItem, id string, createdAt time.Time) Item {
	category := InferCategory(input.Name)
	location := InferLocation(input.Name)
	guidance := InferStorageGuidance(input.Name, category)

	opened := false
	estimated := EstimateExpiration(createdAt, category, opened)

	item := Item{
		ID:                      id,
		Name:                    input.Name,
		Quantity:                input.Quantity,
		CreatedAt:               createdAt,
		Location:                location,
		Category:                category,
		StorageGuidance:         guidance,
		IsStaple:                false,
		Opened:                  opened,
		ExpirationDateEstimated: &estimated,
	}
	item.ExpiredFlag = item.IsExpired(createdAt)
	return item
}

// AddItems 建立並儲存新品項，回傳順序與輸入一致
func (s *Service) AddItems(ctx context.Context, inputs []NewItem) ([]Item, error) {
	// 整批驗證通過才寫入
	for i, input := range inputs {
		if strings.TrimSpace(input.Name) == "" {
			return nil, common.NewValidationError(fmt.Sprintf("items[%d].name is required", i))
		}
		if input.Quantity < 0 {
			return nil, common.NewValidationError(fmt.Sprintf("items[%d].quantity must be >= 0", i))
		}
	}

	createdAt := s.clock.Now()
	created := make([]Item, 0, len(inputs))

	for _, input := range inputs {
		item := BuildItem(input, common.GenerateUUID(), createdAt)
		if err := s.store.Insert(ctx, item); err != nil {
			common.LogError("庫存品項寫入失敗",
				zap.String("item_id", item.ID),
				zap.String("name", item.Name),
				zap.Error(err),
			)
			return created, fmt.Errorf("insert item %q: %w", item.Name, err)
		}

		metrics.InventoryItemsAdded.WithLabelValues(item.Category).Inc()
		common.LogDebug("庫存品項已建立",
			zap.String("item_id", item.ID),
			zap.String("name", item.Name),
			zap.String("category", item.Category),
			zap.String("location", item.Location),
		)
		created = append(created, item)
	}

	common.LogInfo("庫存品項新增完成", zap.Int("count", len(created)))
	return created, nil
}

// ListItems 回傳庫存快照，並依目前時間刷新 ExpiredFlag
func (s *Service) ListItems(ctx context.Context) ([]Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}

	now := s.clock.Now()
	for i := range items {
		items[i].ExpiredFlag = items[i].IsExpired(now)
	}
	return items, nil
}

// Snapshot 回傳原樣的庫存快照（不刷新快取欄位）
func (s *Service) Snapshot(ctx context.Context) ([]Item, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

// DeleteItem 刪除品項，不存在時回傳 ErrItemNotFound
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	common.LogInfo("庫存品項已刪除", zap.String("item_id", id))
	return nil
}
