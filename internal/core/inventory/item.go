package inventory

import "time"

// Location 儲存位置
type Location = string

// Category 食材分類
type Category = string

// 儲存位置
const (
	LocationFridge  Location = "fridge"
	LocationPantry  Location = "pantry"
	LocationFreezer Location = "freezer"
	LocationUnknown Location = "unknown"
)

// 食材分類
const (
	CategoryDairy     Category = "dairy"
	CategoryDairyAlt  Category = "dairy_alt"
	CategoryProtein   Category = "protein"
	CategoryGrain     Category = "grain"
	CategoryCondiment Category = "condiment"
	CategoryProduce   Category = "produce"
	CategoryFrozen    Category = "frozen"
	CategoryUnknown   Category = "unknown"
)

// Item 庫存品項
//
// ExpiredFlag 是建立時計算的快取值；需要即時結果時以 IsExpired 重新判斷。
type Item struct {
	ID                         string     `json:"item_id"`
	Name                       string     `json:"name"`
	Quantity                   float64    `json:"quantity"`
	CreatedAt                  time.Time  `json:"created_at"`
	Location                   Location   `json:"location"`
	Category                   Category   `json:"category"`
	StorageGuidance            string     `json:"storage_guidance"`
	IsStaple                   bool       `json:"is_staple"`
	Opened                     bool       `json:"opened"`
	ExpirationDateEstimated    *time.Time `json:"expiration_date_estimated"`
	ExpirationDateUserOverride *time.Time `json:"expiration_date_user_override"`
	ExpiredFlag                bool       `json:"expired_flag"`
}

// EffectiveExpiration 使用者覆寫日期優先，否則為估計日期
func (i Item) EffectiveExpiration() *time.Time {
	return EffectiveExpiration(i.ExpirationDateEstimated, i.ExpirationDateUserOverride)
}

// IsExpired 依 now 重新判斷是否過期
func (i Item) IsExpired(now time.Time) bool {
	return IsExpired(i.EffectiveExpiration(), now)
}

// NewItem 新增品項的使用者輸入
type NewItem struct {
	Name     string
	Quantity float64
}
