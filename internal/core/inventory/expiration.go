package inventory

import (
	"strings"
	"time"
)

// shelfLife 保存天數（未開封 / 已開封）
type shelfLife struct {
	unopened int
	opened   int
}

var shelfLifeTable = map[Category]shelfLife{
	CategoryDairy:     {unopened: 7, opened: 3},
	CategoryDairyAlt:  {unopened: 7, opened: 3},
	CategoryProtein:   {unopened: 5, opened: 2},
	CategoryGrain:     {unopened: 365, opened: 180},
	CategoryCondiment: {unopened: 365, opened: 120},
	CategoryProduce:   {unopened: 7, opened: 3},
	CategoryFrozen:    {unopened: 365, opened: 365},
}

var defaultShelfLife = shelfLife{unopened: 30, opened: 14}

// ShelfLifeDays 回傳分類對應的保存天數，分類不分大小寫
func ShelfLifeDays(category Category, opened bool) int {
	life, ok := shelfLifeTable[strings.ToLower(category)]
	if !ok {
		life = defaultShelfLife
	}
	if opened {
		return life.opened
	}
	return life.unopened
}

// DateOf 截斷為當地午夜
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EstimateExpiration 建立日期加上保存天數
func EstimateExpiration(createdAt time.Time, category Category, opened bool) time.Time {
	return DateOf(createdAt).AddDate(0, 0, ShelfLifeDays(category, opened))
}

// EffectiveExpiration 覆寫日期優先，其次估計日期，兩者皆無時回傳 nil
func EffectiveExpiration(estimated, override *time.Time) *time.Time {
	if override != nil {
		return override
	}
	return estimated
}

// IsExpired 有效日期嚴格早於 now 的日期才算過期
func IsExpired(effective *time.Time, now time.Time) bool {
	if effective == nil {
		return false
	}
	return DateOf(*effective).Before(dateIn(now, effective.Location()))
}

// DaysUntil now 到 effective 的日曆天數，可能為負
func DaysUntil(effective time.Time, now time.Time) int {
	from := dateIn(now, effective.Location())
	to := DateOf(effective)
	// 以 UTC 日期相減避免夏令時間造成的 23/25 小時
	fromUTC := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toUTC := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toUTC.Sub(fromUTC).Hours() / 24)
}

func dateIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(t.In(loc))
}
