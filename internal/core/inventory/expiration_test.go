package inventory

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestShelfLifeDays(t *testing.T) {
	tests := []struct {
		category Category
		opened   bool
		want     int
	}{
		{CategoryDairy, false, 7},
		{CategoryDairy, true, 3},
		{CategoryDairyAlt, false, 7},
		{CategoryProtein, false, 5},
		{CategoryProtein, true, 2},
		{CategoryGrain, false, 365},
		{CategoryGrain, true, 180},
		{CategoryCondiment, true, 120},
		{CategoryFrozen, true, 365},
		{"DAIRY", false, 7},
		{CategoryUnknown, false, 30},
		{"spices", true, 14},
	}

	for _, tt := range tests {
		if got := ShelfLifeDays(tt.category, tt.opened); got != tt.want {
			t.Errorf("ShelfLifeDays(%q, %v) = %d, want %d", tt.category, tt.opened, got, tt.want)
		}
	}
}

func TestEstimateExpiration(t *testing.T) {
	createdAt := time.Date(2025, time.January, 10, 18, 45, 0, 0, time.UTC)

	got := EstimateExpiration(createdAt, CategoryDairyAlt, false)
	if want := date(2025, time.January, 17); !got.Equal(want) {
		t.Errorf("EstimateExpiration() = %v, want %v", got, want)
	}

	got = EstimateExpiration(createdAt, CategoryGrain, false)
	if want := date(2026, time.January, 10); !got.Equal(want) {
		t.Errorf("EstimateExpiration(grain) = %v, want %v", got, want)
	}
}

func TestEffectiveExpiration(t *testing.T) {
	estimated := date(2025, time.January, 17)
	override := date(2025, time.January, 12)

	if got := EffectiveExpiration(&estimated, &override); got != &override {
		t.Errorf("override should win, got %v", got)
	}
	if got := EffectiveExpiration(&estimated, nil); got != &estimated {
		t.Errorf("estimated should be used without override, got %v", got)
	}
	if got := EffectiveExpiration(nil, nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, time.January, 10, 23, 59, 0, 0, time.UTC)
	yesterday := date(2025, time.January, 9)
	today := date(2025, time.January, 10)
	tomorrow := date(2025, time.January, 11)

	if !IsExpired(&yesterday, now) {
		t.Error("yesterday should be expired")
	}
	if IsExpired(&today, now) {
		t.Error("an item expiring today is not yet expired")
	}
	if IsExpired(&tomorrow, now) {
		t.Error("tomorrow should not be expired")
	}
	if IsExpired(nil, now) {
		t.Error("missing date should never be expired")
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, time.March, 8, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		effective time.Time
		want      int
	}{
		{date(2025, time.March, 8), 0},
		{date(2025, time.March, 9), 1},
		{date(2025, time.March, 15), 7},
		{date(2025, time.March, 1), -7},
	}

	for _, tt := range tests {
		if got := DaysUntil(tt.effective, now); got != tt.want {
			t.Errorf("DaysUntil(%v) = %d, want %d", tt.effective, got, tt.want)
		}
	}
}

func TestItemIsExpiredUsesOverride(t *testing.T) {
	now := date(2025, time.January, 10)
	estimated := date(2025, time.January, 17)
	override := date(2025, time.January, 9)

	item := Item{ExpirationDateEstimated: &estimated}
	if item.IsExpired(now) {
		t.Fatal("item should not be expired with estimated date only")
	}

	item.ExpirationDateUserOverride = &override
	if !item.IsExpired(now) {
		t.Fatal("override in the past should make the item expired")
	}
}
