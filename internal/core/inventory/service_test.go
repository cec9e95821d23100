package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/infrastructure/storage"
	"pantry-planner/internal/pkg/common"
)

func newTestService(t *testing.T, now time.Time) (*inventory.Service, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return inventory.NewService(store, inventory.FixedClock{T: now}), store
}

func TestAddItems(t *testing.T) {
	now := time.Date(2025, time.January, 10, 9, 30, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	items, err := svc.AddItems(ctx, []inventory.NewItem{
		{Name: "pasta", Quantity: 2},
		{Name: "oat milk", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("AddItems() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	pasta, milk := items[0], items[1]
	if pasta.Name != "pasta" || milk.Name != "oat milk" {
		t.Fatalf("items not returned in input order: %q, %q", pasta.Name, milk.Name)
	}
	if pasta.ID == "" || milk.ID == "" || pasta.ID == milk.ID {
		t.Fatalf("expected distinct ids, got %q and %q", pasta.ID, milk.ID)
	}
	if !pasta.CreatedAt.Equal(now) || !milk.CreatedAt.Equal(now) {
		t.Errorf("created_at should come from the clock")
	}

	if milk.Category != inventory.CategoryDairyAlt || milk.Location != inventory.LocationFridge {
		t.Errorf("oat milk classified as %s/%s", milk.Category, milk.Location)
	}
	wantExp := time.Date(2025, time.January, 17, 0, 0, 0, 0, time.UTC)
	if milk.ExpirationDateEstimated == nil || !milk.ExpirationDateEstimated.Equal(wantExp) {
		t.Errorf("oat milk expiration = %v, want %v", milk.ExpirationDateEstimated, wantExp)
	}
	if milk.ExpirationDateUserOverride != nil {
		t.Error("new items have no override")
	}
	if milk.Opened || milk.IsStaple || milk.ExpiredFlag {
		t.Error("new items are unopened, not staples and not expired")
	}

	listed, err := svc.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems() error = %v", err)
	}
	if len(listed) != 2 || listed[0].ID != pasta.ID || listed[1].ID != milk.ID {
		t.Fatalf("ListItems() returned unexpected items: %+v", listed)
	}
}

func TestAddItemsValidation(t *testing.T) {
	svc, store := newTestService(t, time.Now())
	ctx := context.Background()

	tests := []struct {
		name  string
		input inventory.NewItem
	}{
		{"empty name", inventory.NewItem{Name: "  ", Quantity: 1}},
		{"negative quantity", inventory.NewItem{Name: "rice", Quantity: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItems(ctx, []inventory.NewItem{tt.input})
			if !common.IsValidationError(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	items, _ := store.List(ctx)
	if len(items) != 0 {
		t.Errorf("invalid input should not be stored, got %d items", len(items))
	}
}

func TestAddItemsZeroQuantity(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	items, err := svc.AddItems(context.Background(), []inventory.NewItem{{Name: "rice", Quantity: 0}})
	if err != nil {
		t.Fatalf("zero quantity should be accepted: %v", err)
	}
	if items[0].Quantity != 0 {
		t.Errorf("quantity = %v, want 0", items[0].Quantity)
	}
}

func TestListItemsRefreshesExpiredFlag(t *testing.T) {
	created := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	store := storage.NewMemoryStore()
	ctx := context.Background()

	item := inventory.BuildItem(inventory.NewItem{Name: "milk", Quantity: 1}, "item-1", created)
	if item.ExpiredFlag {
		t.Fatal("fresh item flagged as expired")
	}
	if err := store.Insert(ctx, item); err != nil {
		t.Fatal(err)
	}

	// 七天後到期，第九天讀取時應視為過期
	later := inventory.NewService(store, inventory.FixedClock{T: created.AddDate(0, 0, 9)})
	listed, err := later.ListItems(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !listed[0].ExpiredFlag {
		t.Error("ListItems should recompute the expired flag")
	}

	snapshot, err := later.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snapshot[0].ExpiredFlag {
		t.Error("Snapshot returns the stored flag unchanged")
	}
}

func TestDeleteItem(t *testing.T) {
	svc, _ := newTestService(t, time.Now())
	ctx := context.Background()

	items, err := svc.AddItems(ctx, []inventory.NewItem{{Name: "eggs", Quantity: 12}, {Name: "rice", Quantity: 1}})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteItem(ctx, items[0].ID); err != nil {
		t.Fatalf("DeleteItem() error = %v", err)
	}

	listed, _ := svc.ListItems(ctx)
	if len(listed) != 1 || listed[0].ID != items[1].ID {
		t.Fatalf("unexpected inventory after delete: %+v", listed)
	}

	if err := svc.DeleteItem(ctx, items[0].ID); !errors.Is(err, inventory.ErrItemNotFound) {
		t.Errorf("second delete error = %v, want ErrItemNotFound", err)
	}
}

func TestAddItemsValidatesWholeBatch(t *testing.T) {
	svc, store := newTestService(t, time.Now())
	ctx := context.Background()

	_, err := svc.AddItems(ctx, []inventory.NewItem{
		{Name: "rice", Quantity: 1},
		{Name: "", Quantity: 1},
	})
	if !common.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	items, _ := store.List(ctx)
	if len(items) != 0 {
		t.Errorf("no item should be stored when the batch is invalid, got %d", len(items))
	}
}
