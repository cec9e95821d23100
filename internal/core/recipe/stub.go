package recipe

import (
	"context"
	"fmt"
)

const stubRecipeCount = 20

// StubProvider 固定回傳的假資料來源，結果可重現
type StubProvider struct{}

// NewStubProvider 創建假資料來源
func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

// Name 實現 Provider
func (p *StubProvider) Name() string {
	return "stub"
}

// Search 忽略偏好，回傳前 limit 筆
func (p *StubProvider) Search(ctx context.Context, preferences Preferences, limit int) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recipes := make([]Candidate, 0, stubRecipeCount)
	for i := 1; i <= stubRecipeCount; i++ {
		recipes = append(recipes, Candidate{
			ID:       fmt.Sprintf("stub-%d", i),
			Title:    fmt.Sprintf("Stub Recipe %d", i),
			Servings: 2 + (i % 4),
			Ingredients: []Ingredient{
				{Name: "oat milk", Amount: 1, Unit: "cup"},
				{Name: "pasta", Amount: 200, Unit: "g"},
			},
			Instructions: []string{
				"Combine ingredients.",
				"Cook until done.",
			},
		})
	}

	if limit < 0 {
		limit = 0
	}
	if limit < len(recipes) {
		recipes = recipes[:limit]
	}
	return recipes, nil
}
