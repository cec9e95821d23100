package mealplan

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/core/recipe"
	"pantry-planner/internal/infrastructure/metrics"
	"pantry-planner/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	// DefaultPoolSize 向來源請求的候選數量
	DefaultPoolSize = 15
	// DefaultVisibleLimit 回傳給呼叫端的最大數量
	DefaultVisibleLimit = 5
)

// InventorySource 提供單次請求使用的庫存快照
type InventorySource interface {
	Snapshot(ctx context.Context) ([]inventory.Item, error)
}

// ScoredCandidate 候選食譜及其分數
type ScoredCandidate struct {
	Recipe recipe.Candidate
	Score  int
}

// Result 菜單產生結果
type Result struct {
	VisibleCandidates []recipe.Candidate
	CandidatePoolSize int
	// Scores 與 VisibleCandidates 一一對應，僅供除錯與日誌
	Scores []ScoredCandidate
}

// Options 排序參數
type Options struct {
	PoolSize     int
	VisibleLimit int
}

// Service 菜單排序服務，不保留跨請求狀態
type Service struct {
	inventory InventorySource
	provider  recipe.Provider
	clock     inventory.Clock
	opts      Options
}

// NewService 創建菜單排序服務
func NewService(source InventorySource, provider recipe.Provider, clock inventory.Clock, opts Options) *Service {
	if clock == nil {
		clock = inventory.SystemClock{}
	}
	if opts.PoolSize <= 0 {
		opts.PoolSize = DefaultPoolSize
	}
	if opts.VisibleLimit <= 0 {
		opts.VisibleLimit = DefaultVisibleLimit
	}
	return &Service{
		inventory: source,
		provider:  provider,
		clock:     clock,
		opts:      opts,
	}
}

// Generate 取得快照與候選食譜，過濾、計分、排序後截斷。
// 食譜來源的錯誤原樣回傳，不重試。
func (s *Service) Generate(ctx context.Context, preferences recipe.Preferences) (*Result, error) {
	now := s.clock.Now()

	items, err := s.inventory.Snapshot(ctx)
	if err != nil {
		metrics.MealplanGenerations.WithLabelValues("storage_error").Inc()
		return nil, fmt.Errorf("list inventory: %w", err)
	}

	pool, err := s.provider.Search(ctx, preferences, s.opts.PoolSize)
	if err != nil {
		metrics.MealplanGenerations.WithLabelValues("provider_error").Inc()
		common.LogError("食譜來源失敗",
			zap.String("provider", s.provider.Name()),
			zap.Error(err),
		)
		return nil, err
	}

	ranked, ineligible := Rank(pool, items, now, s.opts.VisibleLimit)

	result := &Result{
		VisibleCandidates: make([]recipe.Candidate, len(ranked)),
		CandidatePoolSize: len(pool),
		Scores:            ranked,
	}
	for i, sc := range ranked {
		result.VisibleCandidates[i] = sc.Recipe
	}

	metrics.MealplanGenerations.WithLabelValues("success").Inc()
	metrics.MealplanCandidatePoolSize.Observe(float64(len(pool)))
	metrics.MealplanIneligibleRecipes.Observe(float64(ineligible))
	metrics.MealplanVisibleCandidates.Observe(float64(len(ranked)))

	common.LogInfo("菜單產生完成",
		zap.String("provider", s.provider.Name()),
		zap.Int("inventory_size", len(items)),
		zap.Int("candidate_pool_size", len(pool)),
		zap.Int("ineligible", ineligible),
		zap.Int("visible", len(ranked)),
	)

	return result, nil
}

// Rank 過濾、計分並穩定排序，回傳前 limit 筆與被排除的數量
func Rank(pool []recipe.Candidate, items []inventory.Item, now time.Time, limit int) ([]ScoredCandidate, int) {
	eligible := FilterIneligible(pool, items, now)

	scored := make([]ScoredCandidate, len(eligible))
	for i, r := range eligible {
		scored[i] = ScoredCandidate{Recipe: r, Score: WasteScore(r, items, now)}
	}

	// 同分保持來源順序
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit >= 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, len(pool) - len(eligible)
}
