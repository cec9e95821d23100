package inventory

import "strings"

// keywordRule 分類標籤與其觸發關鍵字
type keywordRule struct {
	label    string
	keywords []string
}

var locationRules = []keywordRule{
	{label: LocationFridge, keywords: []string{"milk", "oat milk", "eggs", "egg"}},
	{label: LocationPantry, keywords: []string{"pasta", "rice", "tomato sauce", "sauce"}},
	{label: LocationFreezer, keywords: []string{"frozen", "frozen peas", "peas"}},
}

var categoryRules = []keywordRule{
	{label: CategoryDairyAlt, keywords: []string{"oat milk"}},
	{label: CategoryDairy, keywords: []string{"milk"}},
	{label: CategoryGrain, keywords: []string{"pasta", "rice"}},
	{label: CategoryProduce, keywords: []string{"peas"}},
	{label: CategoryProtein, keywords: []string{"eggs", "egg"}},
	{label: CategoryCondiment, keywords: []string{"tomato sauce", "sauce"}},
	{label: CategoryFrozen, keywords: []string{"frozen", "frozen peas"}},
}

// 儲存建議
const (
	guidanceFridge    = "Refrigerate after opening and keep chilled."
	guidanceFreezer   = "Keep frozen until ready to use."
	guidancePantry    = "Store in a cool, dry pantry."
	guidanceCondiment = "Store in a cool, dry place; refrigerate after opening if required."
	guidanceDefault   = "Store appropriately according to package instructions."
)

// matchLabel 回傳最長命中關鍵字的標籤；長度相同時以宣告順序為準
func matchLabel(name string, rules []keywordRule) string {
	lowered := strings.ToLower(name)
	best, bestLen := "unknown", 0
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if len(kw) > bestLen && strings.Contains(lowered, kw) {
				best, bestLen = rule.label, len(kw)
			}
		}
	}
	return best
}

// InferLocation 依名稱推斷儲存位置
func InferLocation(name string) Location {
	return matchLabel(name, locationRules)
}

// InferCategory 依名稱推斷分類
func InferCategory(name string) Category {
	return matchLabel(name, categoryRules)
}

// InferStorageGuidance 依名稱推斷的位置與給定分類產生儲存建議
func InferStorageGuidance(name string, category Category) string {
	switch InferLocation(name) {
	case LocationFridge:
		return guidanceFridge
	case LocationFreezer:
		return guidanceFreezer
	case LocationPantry:
		switch category {
		case CategoryGrain:
			return guidancePantry
		case CategoryCondiment:
			return guidanceCondiment
		}
		return guidancePantry
	}
	return guidanceDefault
}
