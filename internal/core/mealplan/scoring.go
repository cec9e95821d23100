package mealplan

import (
	"time"

	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/core/recipe"
)

// UrgencyPoints 依距離到期天數給分
func UrgencyPoints(days int) int {
	switch {
	case days <= 1:
		return 5
	case days <= 3:
		return 3
	case days <= 7:
		return 1
	default:
		return 0
	}
}

// WasteScore 食譜使用越快到期的庫存分數越高。
// 未對應、已過期或無到期日的食材不計分。
func WasteScore(r recipe.Candidate, items []inventory.Item, now time.Time) int {
	total := 0
	for _, ing := range r.Ingredients {
		item := MatchInventory(ing.Name, items)
		if item == nil {
			continue
		}

		eff := item.EffectiveExpiration()
		if eff == nil || inventory.IsExpired(eff, now) {
			continue
		}

		days := inventory.DaysUntil(*eff, now)
		if days < 0 {
			days = 0
		}
		total += UrgencyPoints(days)
	}
	return total
}

// usesExpired 任一食材對應到已過期品項
func usesExpired(r recipe.Candidate, items []inventory.Item, now time.Time) bool {
	for _, ing := range r.Ingredients {
		item := MatchInventory(ing.Name, items)
		if item == nil {
			continue
		}
		if inventory.IsExpired(item.EffectiveExpiration(), now) {
			return true
		}
	}
	return false
}

// FilterIneligible 移除使用過期庫存的食譜，保留原順序
func FilterIneligible(recipes []recipe.Candidate, items []inventory.Item, now time.Time) []recipe.Candidate {
	eligible := make([]recipe.Candidate, 0, len(recipes))
	for _, r := range recipes {
		if !usesExpired(r, items, now) {
			eligible = append(eligible, r)
		}
	}
	return eligible
}
