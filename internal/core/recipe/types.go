package recipe

// Ingredient 食譜食材
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Candidate 候選食譜，每次請求由來源重新取得，不持久化
type Candidate struct {
	ID           string       `json:"recipe_id"`
	Title        string       `json:"title"`
	Servings     int          `json:"servings"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
}

// Preferences 使用者偏好（目前僅傳遞，不影響排序）
type Preferences map[string]any
