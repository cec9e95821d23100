package recipe

import (
	"context"
	"errors"
	"fmt"

	"pantry-planner/internal/infrastructure/config"
)

// ErrProviderUnavailable 食譜來源無法提供候選食譜
var ErrProviderUnavailable = errors.New("recipe provider unavailable")

// Provider 定義食譜來源介面
type Provider interface {
	// Search 取得最多 limit 筆候選食譜
	Search(ctx context.Context, preferences Preferences, limit int) ([]Candidate, error)

	// Name 來源名稱（用於日誌與指標）
	Name() string
}

// NewProvider 依設定選擇食譜來源
func NewProvider(cfg config.ProviderConfig) (Provider, error) {
	switch cfg.Kind {
	case "stub", "":
		return NewStubProvider(), nil
	case "remote":
		return NewRemoteProvider(cfg.Remote), nil
	default:
		return nil, fmt.Errorf("unknown recipe provider %q", cfg.Kind)
	}
}
