package profile

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"eatbot/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client)
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	p, err := store.Get(context.Background(), types.ID("nobody"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil profile for unknown user, got %+v", p)
	}
}

func TestStoreUpsertCreates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id := types.ID("U1")

	purpose := PurposeWorker
	if err := store.Upsert(ctx, id, "小明", Patch{DiningPurpose: &purpose}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	p, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p == nil {
		t.Fatal("expected profile after upsert")
	}
	if p.DisplayName != "小明" {
		t.Errorf("DisplayName = %q, want 小明", p.DisplayName)
	}
	if p.DiningPurpose != PurposeWorker {
		t.Errorf("DiningPurpose = %q, want %q", p.DiningPurpose, PurposeWorker)
	}
	if p.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set on first contact")
	}
}

func TestStoreUpsertMergePreservesFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id := types.ID("U2")

	purpose := PurposeBusiness
	pref := "拉麵"
	if err := store.Upsert(ctx, id, "小華", Patch{DiningPurpose: &purpose, FoodPreference: &pref}); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	loc := &types.Point{Lat: 25.033964, Lng: 121.564468}
	if err := store.Upsert(ctx, id, "", Patch{Location: loc}); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	p, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.DiningPurpose != PurposeBusiness {
		t.Errorf("DiningPurpose lost on merge: %q", p.DiningPurpose)
	}
	if p.FoodPreference != "拉麵" {
		t.Errorf("FoodPreference lost on merge: %q", p.FoodPreference)
	}
	if p.Location == nil || p.Location.Lat != loc.Lat {
		t.Errorf("Location not merged: %+v", p.Location)
	}
	if p.DisplayName != "小華" {
		t.Errorf("empty display name should not overwrite, got %q", p.DisplayName)
	}
	if !p.UpdatedAt.After(p.CreatedAt) && !p.UpdatedAt.Equal(p.CreatedAt) {
		t.Errorf("UpdatedAt %v before CreatedAt %v", p.UpdatedAt, p.CreatedAt)
	}
}

func TestPatchApply(t *testing.T) {
	now := time.Now()
	p := Profile{DiningPurpose: PurposeWorker, FoodPreference: "牛肉麵"}

	awaiting := true
	p.Apply(Patch{AwaitingFoodPreference: &awaiting}, now)

	if !p.AwaitingFoodPreference {
		t.Error("AwaitingFoodPreference not applied")
	}
	if p.FoodPreference != "牛肉麵" {
		t.Errorf("unrelated field changed: %q", p.FoodPreference)
	}
	if !p.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want %v", p.UpdatedAt, now)
	}
}
