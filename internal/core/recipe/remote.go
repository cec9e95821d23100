package recipe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"pantry-planner/internal/infrastructure/config"
	"pantry-planner/internal/infrastructure/metrics"
	"pantry-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	remoteProviderName = "remote"
	searchPath         = "/recipes/search"

	// 連續失敗達此次數即斷路
	breakerTripFailures = 5
)

// searchResponse 外部食譜 API 響應
type searchResponse struct {
	Recipes []Candidate `json:"recipes"`
}

// RemoteProvider 透過 HTTP 呼叫外部食譜 API，並以斷路器保護
type RemoteProvider struct {
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[[]Candidate]
}

// NewRemoteProvider 創建外部食譜來源
func NewRemoteProvider(cfg config.RemoteProviderConfig) *RemoteProvider {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "pantry-planner")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	breakerName := "recipe-provider"
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]Candidate](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			common.LogWarn("食譜來源斷路器狀態變更",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	common.LogInfo("外部食譜來源已初始化",
		zap.String("base_url", cfg.BaseURL),
		zap.String("api_key", config.MaskAPIKey(cfg.APIKey)),
		zap.Duration("timeout", cfg.Timeout),
	)

	return &RemoteProvider{
		client: client,
		cb:     cb,
	}
}

// Name 實現 Provider
func (p *RemoteProvider) Name() string {
	return remoteProviderName
}

// Search 呼叫外部 API；任何失敗皆以 ErrProviderUnavailable 回報
func (p *RemoteProvider) Search(ctx context.Context, preferences Preferences, limit int) ([]Candidate, error) {
	start := time.Now()
	recipes, err := p.cb.Execute(func() ([]Candidate, error) {
		return p.fetch(ctx, preferences, limit)
	})
	common.LogProviderCall(p.Name(), limit, len(recipes), time.Since(start), err)

	if err != nil {
		outcome := "failure"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "rejected"
		}
		metrics.ProviderRequests.WithLabelValues(p.Name(), outcome).Inc()
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	metrics.ProviderRequests.WithLabelValues(p.Name(), "success").Inc()
	return recipes, nil
}

// fetch 單次 HTTP 請求
func (p *RemoteProvider) fetch(ctx context.Context, preferences Preferences, limit int) ([]Candidate, error) {
	req := p.client.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(limit))

	// 偏好以 pref.<key> 查詢參數傳遞，鍵排序確保請求一致
	keys := make([]string, 0, len(preferences))
	for k := range preferences {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		req.SetQueryParam("pref."+k, fmt.Sprint(preferences[k]))
	}

	resp, err := req.Get(searchPath)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to recipe API: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("recipe API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var result searchResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse recipe API response: %w", err)
	}

	recipes := result.Recipes
	if limit >= 0 && len(recipes) > limit {
		recipes = recipes[:limit]
	}
	return recipes, nil
}

// stateToFloat 斷路器狀態轉換為指標數值
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
