package mealplan

import (
	"strings"
	"unicode"

	"pantry-planner/internal/core/inventory"
)

// tokens 小寫後以空白與逗號切分
func tokens(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func overlaps(a, b map[string]struct{}) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for t := range a {
		if _, ok := b[t]; ok {
			return true
		}
	}
	return false
}

// MatchInventory 將食材名稱對應到庫存品項。
// 先找任一詞彙重疊的品項，再退回子字串比對；皆以快照順序取第一筆。
func MatchInventory(ingredientName string, items []inventory.Item) *inventory.Item {
	ingredientTokens := tokens(ingredientName)
	for i := range items {
		if overlaps(ingredientTokens, tokens(items[i].Name)) {
			return &items[i]
		}
	}

	ingredientLower := strings.ToLower(ingredientName)
	for i := range items {
		nameLower := strings.ToLower(items[i].Name)
		if strings.Contains(nameLower, ingredientLower) || strings.Contains(ingredientLower, nameLower) {
			return &items[i]
		}
	}

	return nil
}
