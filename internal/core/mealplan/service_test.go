package mealplan_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/core/mealplan"
	"pantry-planner/internal/core/recipe"
	"pantry-planner/internal/infrastructure/storage"
)

var now = time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC)

type failingProvider struct {
	err   error
	calls int
}

func (p *failingProvider) Name() string { return "failing" }

func (p *failingProvider) Search(ctx context.Context, preferences recipe.Preferences, limit int) ([]recipe.Candidate, error) {
	p.calls++
	return nil, p.err
}

type recordingProvider struct {
	recipes []recipe.Candidate
	limit   int
	prefs   recipe.Preferences
}

func (p *recordingProvider) Name() string { return "recording" }

func (p *recordingProvider) Search(ctx context.Context, preferences recipe.Preferences, limit int) ([]recipe.Candidate, error) {
	p.limit = limit
	p.prefs = preferences
	if len(p.recipes) > limit {
		return p.recipes[:limit], nil
	}
	return p.recipes, nil
}

type brokenSource struct{}

func (brokenSource) Snapshot(ctx context.Context) ([]inventory.Item, error) {
	return nil, errors.New("disk on fire")
}

// seedInventory 新增品項並可選擇覆寫 oat milk 的到期日
func seedInventory(t *testing.T, oatMilkOverride *time.Time) *inventory.Service {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := inventory.NewService(store, inventory.FixedClock{T: now})

	items, err := svc.AddItems(ctx, []inventory.NewItem{
		{Name: "pasta", Quantity: 2},
		{Name: "oat milk", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("seed inventory: %v", err)
	}

	if oatMilkOverride != nil {
		milk := items[1]
		milk.ExpirationDateUserOverride = oatMilkOverride
		if err := store.Insert(ctx, milk); err != nil {
			t.Fatalf("override oat milk: %v", err)
		}
	}
	return svc
}

func newGenerator(source mealplan.InventorySource, provider recipe.Provider) *mealplan.Service {
	return mealplan.NewService(source, provider, inventory.FixedClock{T: now}, mealplan.Options{})
}

func TestGenerateWithStubProvider(t *testing.T) {
	svc := newGenerator(seedInventory(t, nil), recipe.NewStubProvider())

	result, err := svc.Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.CandidatePoolSize != mealplan.DefaultPoolSize {
		t.Errorf("candidate_pool_size = %d, want %d", result.CandidatePoolSize, mealplan.DefaultPoolSize)
	}
	if len(result.VisibleCandidates) != mealplan.DefaultVisibleLimit {
		t.Fatalf("visible = %d, want %d", len(result.VisibleCandidates), mealplan.DefaultVisibleLimit)
	}

	// 全部同分時保持來源順序
	for i, c := range result.VisibleCandidates {
		if want := fmt.Sprintf("stub-%d", i+1); c.ID != want {
			t.Errorf("visible[%d] = %s, want %s", i, c.ID, want)
		}
	}
	// oat milk 七天後到期 → 1 分
	for _, sc := range result.Scores {
		if sc.Score != 1 {
			t.Errorf("score for %s = %d, want 1", sc.Recipe.ID, sc.Score)
		}
	}
}

func TestGenerateExpiringItemBoostsScore(t *testing.T) {
	today := inventory.DateOf(now)
	svc := newGenerator(seedInventory(t, &today), recipe.NewStubProvider())

	result, err := svc.Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(result.VisibleCandidates) != 5 {
		t.Fatalf("visible = %d, want 5", len(result.VisibleCandidates))
	}
	for _, sc := range result.Scores {
		if sc.Score != 5 {
			t.Errorf("score for %s = %d, want 5", sc.Recipe.ID, sc.Score)
		}
	}
}

func TestGenerateExpiredItemExcludesRecipes(t *testing.T) {
	yesterday := inventory.DateOf(now).AddDate(0, 0, -1)
	svc := newGenerator(seedInventory(t, &yesterday), recipe.NewStubProvider())

	result, err := svc.Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(result.VisibleCandidates) != 0 {
		t.Errorf("every stub recipe uses oat milk, got %d visible", len(result.VisibleCandidates))
	}
	if result.CandidatePoolSize != 15 {
		t.Errorf("pool size counts candidates before filtering, got %d", result.CandidatePoolSize)
	}
}

func TestGenerateEmptyInventory(t *testing.T) {
	source := inventory.NewService(storage.NewMemoryStore(), inventory.FixedClock{T: now})
	svc := newGenerator(source, recipe.NewStubProvider())

	result, err := svc.Generate(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.VisibleCandidates) != 5 || result.VisibleCandidates[0].ID != "stub-1" {
		t.Errorf("unexpected result for empty inventory: %+v", result.VisibleCandidates)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	svc := newGenerator(seedInventory(t, nil), recipe.NewStubProvider())
	ctx := context.Background()

	first, err := svc.Generate(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Generate(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}

	if first.CandidatePoolSize != second.CandidatePoolSize || len(first.VisibleCandidates) != len(second.VisibleCandidates) {
		t.Fatal("repeated calls should produce the same result")
	}
	for i := range first.VisibleCandidates {
		if first.VisibleCandidates[i].ID != second.VisibleCandidates[i].ID {
			t.Errorf("position %d differs: %s vs %s", i, first.VisibleCandidates[i].ID, second.VisibleCandidates[i].ID)
		}
	}
}

func TestGenerateSmallPool(t *testing.T) {
	provider := &recordingProvider{recipes: []recipe.Candidate{
		{ID: "only-1"}, {ID: "only-2"},
	}}
	svc := newGenerator(seedInventory(t, nil), provider)

	prefs := recipe.Preferences{"cuisine": "italian"}
	result, err := svc.Generate(context.Background(), prefs)
	if err != nil {
		t.Fatal(err)
	}
	if provider.limit != mealplan.DefaultPoolSize {
		t.Errorf("provider asked for %d, want %d", provider.limit, mealplan.DefaultPoolSize)
	}
	if provider.prefs["cuisine"] != "italian" {
		t.Error("preferences should be passed through to the provider")
	}
	if result.CandidatePoolSize != 2 || len(result.VisibleCandidates) != 2 {
		t.Errorf("pool = %d visible = %d, want 2 and 2", result.CandidatePoolSize, len(result.VisibleCandidates))
	}
}

func TestGenerateProviderFailurePropagates(t *testing.T) {
	providerErr := errors.Join(recipe.ErrProviderUnavailable, errors.New("connection refused"))
	provider := &failingProvider{err: providerErr}
	svc := newGenerator(seedInventory(t, nil), provider)

	result, err := svc.Generate(context.Background(), nil)
	if result != nil {
		t.Error("no partial result on provider failure")
	}
	if err != providerErr {
		t.Errorf("provider error should be returned unmodified, got %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want exactly 1", provider.calls)
	}
}

func TestGenerateStoreFailure(t *testing.T) {
	provider := &failingProvider{}
	svc := newGenerator(brokenSource{}, provider)

	if _, err := svc.Generate(context.Background(), nil); err == nil {
		t.Fatal("expected an error when the inventory cannot be read")
	}
	if provider.calls != 0 {
		t.Error("provider should not be called when the snapshot fails")
	}
}
