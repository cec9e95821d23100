package inventory

import "time"

// Clock 提供「現在」時間，測試時可注入固定值
type Clock interface {
	Now() time.Time
}

// SystemClock 系統時鐘（UTC）
type SystemClock struct{}

// Now 實現 Clock
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock 固定時間
type FixedClock struct {
	T time.Time
}

// Now 實現 Clock
func (c FixedClock) Now() time.Time {
	return c.T
}
